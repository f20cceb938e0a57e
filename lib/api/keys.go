package api

import (
	"context"
	"net/http"

	"github.com/gravitational/trace"
)

// KeyInfo describes the API key a request was authenticated with. Project
// is set only for project-scoped keys.
type KeyInfo struct {
	Username    string   `json:"username"`
	Description string   `json:"description,omitempty"`
	Project     *Project `json:"project,omitempty"`
	// ExpiresAt is epoch milliseconds, 0 meaning the key never expires
	ExpiresAt int64    `json:"expiresAt"`
	Scopes    []string `json:"scopes,omitempty"`
}

// KeysClient groups API-key introspection endpoints.
type KeysClient struct {
	client *Client
}

// Keys returns the API-key endpoint client.
func (c *Client) Keys() *KeysClient {
	return &KeysClient{client: c}
}

// Current returns metadata about the key the client is bound to. The login
// command uses it to verify a key and to learn its scope and expiry.
func (k *KeysClient) Current(ctx context.Context) (KeyInfo, error) {
	resp, err := k.client.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "api-keys/current",
	})
	if err != nil {
		return KeyInfo{}, trace.Wrap(err)
	}

	var info KeyInfo
	if err := DecodeJSON(resp, &info); err != nil {
		return KeyInfo{}, trace.Wrap(err)
	}
	return info, nil
}

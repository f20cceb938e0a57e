package api

import (
	"context"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gravitational/trace"

	"github.com/phraselab/phraselab-cli/lib/auth"
)

const (
	// apiPrefix is prepended to every request path
	apiPrefix = "v2"

	apiMaxConns    = 100
	apiHTTPTimeout = 30 * time.Second
)

// ClientConfig binds a Client to one instance and one credential.
type ClientConfig struct {
	// BaseURL is the instance URL, e.g. https://app.phraselab.com
	BaseURL string

	// APIKey is sent in the x-api-key header on every request
	APIKey string

	// ProjectID scopes project-level endpoints; auth.NoProject disables
	// the scoping
	ProjectID int64

	// UserAgent identifies the tool and version to the server
	UserAgent string
}

// Client executes abstract requests against one Phraselab instance. It
// performs exactly one attempt per call: no retries and no deadline beyond
// the transport timeout.
type Client struct {
	http      *resty.Client
	projectID int64
}

// NewClient returns a Client bound to the given instance and key.
func NewClient(conf ClientConfig) (*Client, error) {
	if conf.BaseURL == "" {
		return nil, trace.BadParameter("API base URL is not set")
	}
	if conf.APIKey == "" {
		return nil, trace.BadParameter("API key is not set")
	}
	userAgent := conf.UserAgent
	if userAgent == "" {
		userAgent = "phraselab-cli"
	}

	client := resty.NewWithClient(&http.Client{
		Timeout: apiHTTPTimeout,
		Transport: &http.Transport{
			MaxConnsPerHost:     apiMaxConns,
			MaxIdleConnsPerHost: apiMaxConns,
		},
	})
	client.SetBaseURL(strings.TrimRight(conf.BaseURL, "/") + "/" + apiPrefix)
	client.SetHeader("x-api-key", conf.APIKey)
	client.SetHeader("User-Agent", userAgent)
	// Response bodies stay raw: the consumers own draining and decoding
	client.SetDoNotParseResponse(true)

	return &Client{http: client, projectID: conf.ProjectID}, nil
}

// Response is a successful raw response awaiting one of the consumers.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// Close drains the remaining body before closing it so the underlying
// connection can be reused. Safe to call more than once.
func (r *Response) Close() error {
	if r.Body == nil {
		return nil
	}
	body := r.Body
	r.Body = nil
	_, _ = io.Copy(io.Discard, body)
	return trace.Wrap(body.Close())
}

// Do builds and issues one HTTP request from the descriptor. Transport
// failures propagate wrapped; a non-2xx response is returned as a
// *StatusError with its body already consumed. On success the caller must
// finish the Response with one of the consumers.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	r := c.http.R().SetContext(ctx)

	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	for key, value := range req.Header {
		r.SetHeader(key, value)
	}

	switch body := req.Body.(type) {
	case nil:
	case jsonBody:
		r.SetHeader("Content-Type", "application/json")
		r.SetBody(body.value)
	case multipartBody:
		if len(body.fields) > 0 {
			r.SetMultipartFormData(body.fields)
		}
		for _, file := range body.files {
			r.SetFileReader(file.Param, file.Name, file.Content)
		}
	default:
		return nil, trace.BadParameter("unsupported request body type %T", req.Body)
	}

	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	raw := &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.RawBody(),
	}
	if raw.StatusCode < http.StatusOK || raw.StatusCode >= http.StatusMultipleChoices {
		return nil, trace.Wrap(newStatusError(raw, req.Method, resp.Request.URL))
	}

	return raw, nil
}

// projectPath resolves a project-scoped endpoint path.
func (c *Client) projectPath(parts ...string) (string, error) {
	if c.projectID == auth.NoProject {
		return "", trace.BadParameter("no project selected: pass --project or log in with a project API key")
	}
	elems := append([]string{"projects", strconv.FormatInt(c.projectID, 10)}, parts...)
	return path.Join(elems...), nil
}

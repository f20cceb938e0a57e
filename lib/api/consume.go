package api

import (
	"io"

	"github.com/gravitational/trace"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeJSON parses the response body into out. A body that does not decode
// is a trace.BadParameter error, distinct from any HTTP status failure.
func DecodeJSON(resp *Response, out interface{}) error {
	defer resp.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return trace.BadParameter("malformed response body: %v", err)
	}
	return nil
}

// ReadAll returns the response body as an opaque blob.
func ReadAll(resp *Response) ([]byte, error) {
	defer resp.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return payload, nil
}

// Discard consumes and throws away the body. Leaving a body stream open
// would keep its connection from being reused, so even unwanted payloads
// are read to completion.
func Discard(resp *Response) error {
	return trace.Wrap(resp.Close())
}

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gravitational/trace"
	"github.com/tidwall/gjson"
)

// errorBodyLimit caps how much of an error body is kept around.
const errorBodyLimit = 64 * 1024

// StatusError is any non-2xx response. It carries the status, headers and
// raw body so callers can pattern-match specific statuses (e.g. treat 404
// as "already absent") without this package guessing at the body schema.
type StatusError struct {
	Status int
	Header http.Header
	Body   []byte
	Method string
	URL    string
}

func newStatusError(resp *Response, method, url string) *StatusError {
	// The body must be consumed even on the error path, otherwise the
	// transport cannot reclaim the connection
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	_ = resp.Close()
	return &StatusError{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   body,
		Method: method,
		URL:    url,
	}
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%v %v: server returned %v %v", e.Method, e.URL, e.Status, http.StatusText(e.Status))
	if remote := remoteMessage(e.Body); remote != "" {
		msg = msg + ": " + remote
	}
	return msg
}

// remoteMessage pulls a human-readable message out of a JSON error body
// without committing to a particular error schema.
func remoteMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"message", "error", "code"} {
		if value := gjson.GetBytes(body, path); value.Type == gjson.String && value.Str != "" {
			return value.Str
		}
	}
	return ""
}

// AsStatusError extracts a StatusError from anywhere in err's chain.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	if errors.As(trace.Unwrap(err), &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// StatusCode returns the HTTP status carried by err, 0 when err is not a
// status failure.
func StatusCode(err error) int {
	statusErr, ok := AsStatusError(err)
	if !ok {
		return 0
	}
	return statusErr.Status
}

// IsStatus reports whether err is a StatusError with the given status code.
func IsStatus(err error, status int) bool {
	return StatusCode(err) == status
}

package api

import (
	"io"
	"net/url"
)

// Request describes one API call: method, path relative to the API root,
// optional query values, optional body, optional extra headers. Endpoint
// clients declare requests and never build URLs or auth headers themselves.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header map[string]string
	Body   Body
}

// Body is the closed set of request body shapes. A nil Body means no body
// and no content-type. The executor dispatches on the concrete type.
type Body interface {
	isBody()
}

type jsonBody struct {
	value interface{}
}

func (jsonBody) isBody() {}

// JSON wraps a value to be sent json-encoded with an application/json
// content-type.
func JSON(value interface{}) Body {
	return jsonBody{value: value}
}

// File is one form file of a multipart body.
type File struct {
	// Param is the form field name
	Param string
	// Name is the file name reported to the server
	Name string
	// Content is read once while the request is sent
	Content io.Reader
}

type multipartBody struct {
	fields map[string]string
	files  []File
}

func (multipartBody) isBody() {}

// Multipart wraps scalar form fields and files into a multipart/form-data
// body. The content-type carries the generated boundary.
func Multipart(fields map[string]string, files ...File) Body {
	return multipartBody{fields: fields, files: files}
}

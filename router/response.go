// Copyright 2026 The Nino Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"io"
	"net/http"
)

// bodyKind discriminates the response body variants.
type bodyKind uint8

const (
	bodyNone bodyKind = iota
	bodyData
	bodyJSON
	bodyYAML
	bodyFile
	bodyStream
)

// Response is the abstract result of a handler or middleware: a status, a
// header map, and one of several body variants — nothing, raw bytes, a
// JSON- or YAML-serializable value, a file path, or a stream. It is
// produced once per request and consumed exactly once by the materializer;
// nothing touches the network until the whole chain has returned.
//
// Middleware may decorate a response on the way out:
//
//	res, err := next()
//	if err == nil {
//	    res.SetHeader("X-Request-ID", id)
//	}
//	return res, err
type Response struct {
	// Status is the HTTP status code.
	Status int

	// Header holds response headers. Caller-supplied headers always take
	// precedence over the defaults the materializer would apply.
	Header http.Header

	kind        bodyKind
	data        []byte
	value       any
	filePath    string
	stream      io.Reader
	contentType string
}

// JSON returns a response whose body is serialized as JSON. The
// Content-Type defaults to application/json unless the caller sets one.
func JSON(status int, v any) *Response {
	return &Response{Status: status, Header: http.Header{}, kind: bodyJSON, value: v}
}

// YAML returns a response whose body is serialized as YAML.
func YAML(status int, v any) *Response {
	return &Response{Status: status, Header: http.Header{}, kind: bodyYAML, value: v}
}

// Text returns a plain-text response.
func Text(status int, s string) *Response {
	return &Response{
		Status: status, Header: http.Header{}, kind: bodyData,
		data: []byte(s), contentType: "text/plain; charset=utf-8",
	}
}

// Data returns a raw byte response with an explicit content type.
func Data(status int, contentType string, b []byte) *Response {
	return &Response{
		Status: status, Header: http.Header{}, kind: bodyData,
		data: b, contentType: contentType,
	}
}

// ServeFile returns a response that streams the file at path, with the
// content type derived from the file extension and cache headers suitable
// for static assets. A missing file surfaces as 404 at materialization.
func ServeFile(path string) *Response {
	return &Response{Status: http.StatusOK, Header: http.Header{}, kind: bodyFile, filePath: path}
}

// Stream returns a response that copies r to the client unmodified.
func Stream(status int, contentType string, r io.Reader) *Response {
	return &Response{
		Status: status, Header: http.Header{}, kind: bodyStream,
		stream: r, contentType: contentType,
	}
}

// NoContent returns an empty 204 response.
func NoContent() *Response {
	return &Response{Status: http.StatusNoContent, Header: http.Header{}, kind: bodyNone}
}

// Status returns an empty response with the given status code.
func Status(status int) *Response {
	return &Response{Status: status, Header: http.Header{}, kind: bodyNone}
}

// Redirect returns an empty response with a Location header.
func Redirect(status int, location string) *Response {
	res := &Response{Status: status, Header: http.Header{}, kind: bodyNone}
	res.Header.Set("Location", location)
	return res
}

// SetHeader sets a response header and returns the response for chaining.
func (r *Response) SetHeader(key, value string) *Response {
	if r.Header == nil {
		r.Header = http.Header{}
	}
	r.Header.Set(key, value)
	return r
}

// JSONValue returns the value a JSON response would serialize, for
// middleware that inspects bodies on the way out. ok is false for other
// body variants.
func (r *Response) JSONValue() (v any, ok bool) {
	if r.kind != bodyJSON {
		return nil, false
	}
	return r.value, true
}

// IsEmpty reports whether the response carries no body.
func (r *Response) IsEmpty() bool {
	return r.kind == bodyNone
}

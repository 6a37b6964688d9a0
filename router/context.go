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
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// Context carries everything the chain knows about one in-flight request:
// the uppercased method, the decoded path with the query string stripped,
// parsed query values, lowercased headers, the decoded body, and the path
// parameters extracted by the matcher.
//
// A Context is created fresh for every request and is owned exclusively by
// the goroutine handling that request. It is never pooled, shared, or
// reused. Middleware may mutate it in place (Set) to pass derived data —
// an authenticated principal, a request ID — down the chain.
type Context struct {
	// Request is the underlying HTTP request, available for anything the
	// decoded fields do not cover (TLS state, remote address, trailers).
	Request *http.Request

	// Method is the HTTP method, uppercased.
	Method string

	// Path is the URL-decoded request path with the query string stripped.
	Path string

	// Query holds the parsed query string. Repeated keys collect into the
	// value slice in order of appearance.
	Query url.Values

	// Headers maps lowercased header names to their values. Repeated
	// headers are joined with ", ". Lookups through Header are therefore
	// case-insensitive by construction.
	Headers map[string]string

	// Params holds the path parameters extracted by the matcher. It is
	// empty until the route is matched.
	Params map[string]string

	// Body is the decoded request body: any JSON value for
	// "application/json", a map for form and multipart bodies, a string
	// for everything else. Nil when the request carries no body or when
	// decoding failed (the failure is logged, not fatal).
	Body any

	// RawBody is the unparsed body bytes, kept so handlers can re-decode
	// with their own types.
	RawBody []byte

	// Route is the canonical pattern of the matched route ("/users/:id").
	// Empty until matched. Useful as a low-cardinality label for metrics
	// and traces.
	Route string

	values map[string]any
	logger *slog.Logger
}

// newContext builds a Context from an incoming request. Body decoding is
// delegated to decodeBody and never fails the request.
func newContext(req *http.Request, logger *slog.Logger) *Context {
	c := &Context{
		Request: req,
		Method:  strings.ToUpper(req.Method),
		Path:    req.URL.Path,
		Query:   req.URL.Query(),
		Headers: lowerHeaders(req.Header),
		logger:  logger,
	}
	decodeBody(c, req)
	return c
}

// lowerHeaders flattens an http.Header into a map with lowercased keys.
func lowerHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		out[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	return out
}

// Param returns the value of the named path parameter, or "" when the
// matched route does not declare it.
//
//	r.GET("/users/:id", func(c *router.Context) (*router.Response, error) {
//	    return router.JSON(http.StatusOK, router.H{"id": c.Param("id")}), nil
//	})
func (c *Context) Param(name string) string {
	return c.Params[name]
}

// Header returns a request header by name, case-insensitively.
func (c *Context) Header(name string) string {
	return c.Headers[strings.ToLower(name)]
}

// QueryValue returns the first value of a query parameter, or "".
func (c *Context) QueryValue(name string) string {
	return c.Query.Get(name)
}

// QueryDefault returns the first value of a query parameter, or def when
// the parameter is absent.
func (c *Context) QueryDefault(name, def string) string {
	if v := c.Query.Get(name); v != "" {
		return v
	}
	return def
}

// FormValue returns the first value of a form field from a decoded
// urlencoded or multipart body, or "".
func (c *Context) FormValue(name string) string {
	form, ok := c.Body.(map[string]any)
	if !ok {
		return ""
	}
	switch v := form[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

// FormFile returns the named uploaded file from a decoded multipart body,
// or nil when the field is absent or not a file.
func (c *Context) FormFile(name string) *File {
	form, ok := c.Body.(map[string]any)
	if !ok {
		return nil
	}
	switch v := form[name].(type) {
	case *File:
		return v
	case []*File:
		if len(v) > 0 {
			return v[0]
		}
	}
	return nil
}

// Set stores a value on the context for later handlers in the chain.
// This is how middleware injects derived data such as an authenticated
// principal or a request ID.
func (c *Context) Set(key string, value any) {
	if c.values == nil {
		c.values = make(map[string]any, 4)
	}
	c.values[key] = value
}

// Get retrieves a value previously stored with Set.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// GetString retrieves a string value previously stored with Set, or "".
func (c *Context) GetString(key string) string {
	if v, ok := c.values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// ClientIP returns the client address, preferring the first entry of
// X-Forwarded-For, then X-Real-IP, then the connection's remote address.
func (c *Context) ClientIP() string {
	if fwd := c.Header("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	if real := c.Header("X-Real-IP"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}

// Logger returns the router's logger. It never returns nil; when no logger
// is configured the returned logger discards everything.
func (c *Context) Logger() *slog.Logger {
	if c.logger == nil {
		return noopLogger
	}
	return c.logger
}

// Context returns the request's context.Context. It is cancelled when the
// client disconnects or the per-request timeout fires, so handlers doing
// I/O should pass it along.
func (c *Context) Context() context.Context {
	return c.Request.Context()
}

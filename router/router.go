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
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NoopLogger returns the singleton no-op logger.
func NoopLogger() *slog.Logger { return noopLogger }

// Option defines functional options for router configuration.
type Option func(*Router)

// Router matches HTTP requests to registered routes and executes the
// middleware chain around the matched handler. Routes come from two feeders
// sharing one table: explicit registration (Handle, GET, Group, ...) and
// the filesystem loader in package fsroutes, which also registers through
// Handle. Precedence is pure registration order, so feeder order is the
// caller's choice; the documented convention is filesystem routes first.
//
// Registration and serving are mutually exclusive phases: the table freezes
// on the first request and later registrations panic. After the freeze the
// table is read-only and needs no locking.
type Router struct {
	table      *routeTable
	middleware []Middleware

	logger      *slog.Logger
	diagnostics DiagnosticHandler

	devMode        bool
	requestTimeout time.Duration
	timeoutStatus  int
	serverHeader   string
	notFound       Handler

	staticFS    fs.FS
	staticIndex string

	enableH2C      bool
	serverTimeouts *serverTimeouts

	frozen atomic.Bool

	server   *http.Server
	serverMu sync.Mutex
}

// New creates a router. The zero configuration is fully usable: no-op
// logging, no static directory, no request timeout, production server
// timeouts.
//
//	r, err := router.New(
//	    router.WithLogger(slog.Default()),
//	    router.WithRequestTimeout(10*time.Second),
//	)
//
// Configuration is validated immediately; an invalid option set fails here
// rather than at request time. For a version that panics, use MustNew.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		table:         newRouteTable(),
		logger:        noopLogger,
		timeoutStatus: http.StatusGatewayTimeout,
		serverHeader:  "nino",
		staticIndex:   "index.html",
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("router configuration: %w", err)
	}
	return r, nil
}

// MustNew is like New but panics on invalid configuration.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Router) validate() error {
	if r.requestTimeout < 0 {
		return ErrRequestTimeoutInvalid
	}
	if r.timeoutStatus < 100 || r.timeoutStatus > 599 {
		return ErrTimeoutStatusInvalid
	}
	if t := r.serverTimeouts; t != nil {
		if t.readHeader <= 0 || t.read <= 0 || t.write <= 0 || t.idle <= 0 {
			return ErrServerTimeoutInvalid
		}
	}
	return nil
}

// Use appends middleware to the global chain. Global middleware runs before
// any route-specific middleware, in the order it was added.
func (r *Router) Use(middleware ...Middleware) {
	if r.frozen.Load() {
		panic(ErrRouterFrozen)
	}
	r.middleware = append(r.middleware, middleware...)
}

// Handle registers a route. The method is uppercased; the path is compiled
// into a pattern, which supports both "[name]" and ":name" captures.
//
// Registration failures — an empty method, a nil handler, a malformed or
// ambiguous pattern — panic: they are startup programming errors and the
// process must not come up with a partial route table. An equal-shape
// conflict with an existing route is not an error; the new route wins and
// a DiagRouteShadowed diagnostic is emitted.
func (r *Router) Handle(method, path string, handler Handler, middleware ...Middleware) {
	if r.frozen.Load() {
		panic(ErrRouterFrozen)
	}
	if method == "" {
		panic(ErrEmptyMethod)
	}
	if handler == nil {
		panic(ErrNilHandler)
	}

	pattern, err := Compile(path)
	if err != nil {
		panic(err)
	}

	entry := &RouteEntry{
		Method:     strings.ToUpper(method),
		Pattern:    pattern,
		Handler:    handler,
		Middleware: middleware,
	}

	if shadowed := r.table.add(entry); shadowed != nil {
		r.emit(DiagRouteShadowed, "route shadows an earlier registration", map[string]any{
			"method":   entry.Method,
			"route":    entry.Pattern.String(),
			"shadowed": shadowed.Pattern.String(),
		})
	}
	r.emit(DiagRouteRegistered, "route registered", map[string]any{
		"method": entry.Method,
		"route":  entry.Pattern.String(),
	})
}

// GET registers a GET route.
func (r *Router) GET(path string, handler Handler, middleware ...Middleware) {
	r.Handle(http.MethodGet, path, handler, middleware...)
}

// POST registers a POST route.
func (r *Router) POST(path string, handler Handler, middleware ...Middleware) {
	r.Handle(http.MethodPost, path, handler, middleware...)
}

// PUT registers a PUT route.
func (r *Router) PUT(path string, handler Handler, middleware ...Middleware) {
	r.Handle(http.MethodPut, path, handler, middleware...)
}

// PATCH registers a PATCH route.
func (r *Router) PATCH(path string, handler Handler, middleware ...Middleware) {
	r.Handle(http.MethodPatch, path, handler, middleware...)
}

// DELETE registers a DELETE route.
func (r *Router) DELETE(path string, handler Handler, middleware ...Middleware) {
	r.Handle(http.MethodDelete, path, handler, middleware...)
}

// OPTIONS registers an OPTIONS route.
func (r *Router) OPTIONS(path string, handler Handler, middleware ...Middleware) {
	r.Handle(http.MethodOptions, path, handler, middleware...)
}

// HEAD registers a HEAD route.
func (r *Router) HEAD(path string, handler Handler, middleware ...Middleware) {
	r.Handle(http.MethodHead, path, handler, middleware...)
}

// RouteCount returns the number of registered routes.
func (r *Router) RouteCount() int {
	return r.table.size()
}

// joinPath joins a group prefix and a route path: duplicate slashes
// collapse, the result always has a leading slash, and an empty result
// maps to "/".
func joinPath(prefix, path string) string {
	joined := prefix + "/" + path
	parts := splitPath(joined)
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

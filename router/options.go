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
	"io/fs"
	"log/slog"
	"os"
	"time"
)

// WithLogger sets the structured logger used for startup and per-request
// diagnostics. Without it the router degrades to a no-op logger; the
// engine functions identically either way.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDiagnostics sets a handler for diagnostic events (route shadowing,
// H2C enablement). Without it, events fall back to the logger.
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) { r.diagnostics = handler }
}

// WithDevMode enables development mode: failure responses include the
// internal error message. Never enable in production — the default 500
// body is deliberately generic.
func WithDevMode(enabled bool) Option {
	return func(r *Router) { r.devMode = enabled }
}

// WithRequestTimeout bounds each request end to end: context building,
// matching, the middleware chain, and materialization all happen inside
// the window. On expiry the client receives a timeout response (504 by
// default) and the in-flight handler is abandoned; its request context is
// cancelled so cooperative handlers stop early. Zero disables the timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(r *Router) { r.requestTimeout = d }
}

// WithTimeoutStatus overrides the status code sent when the per-request
// timeout fires. Defaults to 504 Gateway Timeout.
func WithTimeoutStatus(status int) Option {
	return func(r *Router) { r.timeoutStatus = status }
}

// WithServerHeader overrides the identifying Server response header.
// Defaults to "nino". Handlers that set their own Server header win.
func WithServerHeader(name string) Option {
	return func(r *Router) {
		if name != "" {
			r.serverHeader = name
		}
	}
}

// WithNotFoundHandler replaces the default 404 response for unmatched
// requests. The handler runs outside the middleware chain.
func WithNotFoundHandler(h Handler) Option {
	return func(r *Router) { r.notFound = h }
}

// WithStaticDir serves files from dir before routing: a GET or HEAD
// request whose path maps onto an existing file under dir is answered
// directly, bypassing the route matcher. Directory paths fall back to
// index.html.
func WithStaticDir(dir string) Option {
	return func(r *Router) { r.staticFS = os.DirFS(dir) }
}

// WithStaticFS is WithStaticDir for an arbitrary fs.FS, mainly for tests
// and embedded assets.
func WithStaticFS(fsys fs.FS) Option {
	return func(r *Router) { r.staticFS = fsys }
}

// WithH2C enables cleartext HTTP/2 on Serve. Use only in development or
// behind a trusted load balancer.
func WithH2C(enabled bool) Option {
	return func(r *Router) { r.enableH2C = enabled }
}

// WithServerTimeouts configures the http.Server timeouts used by Serve and
// ServeTLS. All four values must be positive.
func WithServerTimeouts(readHeader, read, write, idle time.Duration) Option {
	return func(r *Router) {
		r.serverTimeouts = &serverTimeouts{
			readHeader: readHeader,
			read:       read,
			write:      write,
			idle:       idle,
		}
	}
}

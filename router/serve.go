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
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// serverTimeouts holds http.Server timeout configuration.
type serverTimeouts struct {
	readHeader time.Duration
	read       time.Duration
	write      time.Duration
	idle       time.Duration
}

// defaultServerTimeouts returns production-safe defaults that guard
// against slowloris-style connection exhaustion.
func defaultServerTimeouts() *serverTimeouts {
	return &serverTimeouts{
		readHeader: 10 * time.Second,
		read:       30 * time.Second,
		write:      60 * time.Second,
		idle:       120 * time.Second,
	}
}

// ServeHTTP implements http.Handler. Per request the shell runs:
// static-file attempt → context build → match → middleware chain →
// materialize. Any panic or handler error anywhere in that sequence is
// contained here and answered with a generic 500; an unmatched request
// gets a 404; a per-request timeout gets a 504. One failing request never
// affects another and never crashes the process.
//
// The first request freezes the route table; registration afterwards
// panics. Configuration and serving are mutually exclusive phases, which
// is what makes lock-free matching safe.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.frozen.Store(true)

	if r.tryServeStatic(w, req) {
		return
	}

	if r.requestTimeout > 0 {
		r.serveWithTimeout(w, req)
		return
	}
	r.write(w, r.dispatch(req))
}

// serveWithTimeout wraps the full dispatch sequence in a deadline. Nothing
// is flushed to the client until dispatch returns, so when the deadline
// fires the timeout response is always the first and only write; the
// abandoned goroutine keeps its own panic containment and its context is
// cancelled so cooperative handlers unwind.
func (r *Router) serveWithTimeout(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), r.requestTimeout)
	defer cancel()
	req = req.WithContext(ctx)

	done := make(chan *Response, 1)
	go func() {
		done <- r.dispatch(req)
	}()

	select {
	case res := <-done:
		r.write(w, res)
	case <-ctx.Done():
		r.logger.Warn("request timed out",
			"method", req.Method, "path", req.URL.Path, "timeout", r.requestTimeout)
		r.write(w, JSON(r.timeoutStatus, H{"error": http.StatusText(r.timeoutStatus)}))
	}
}

// dispatch runs context build, matching, and the middleware chain, and
// folds every failure mode into a Response. It never writes to the
// connection and never lets a panic escape.
func (r *Router) dispatch(req *http.Request) (res *Response) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("panic while handling request",
				"method", req.Method, "path", req.URL.Path, "panic", rec)
			res = r.failureResponse(fmt.Errorf("panic: %v", rec))
		}
	}()

	c := newContext(req, r.logger)

	entry, params, ok := r.table.match(c.Method, c.Path)
	if !ok {
		r.logger.Debug("no route matched", "method", c.Method, "path", c.Path)
		return r.notFoundResponse(c)
	}
	if params != nil {
		c.Params = params
	} else {
		c.Params = map[string]string{}
	}
	c.Route = entry.Pattern.String()

	chain := r.middleware
	if len(entry.Middleware) > 0 {
		chain = make([]Middleware, 0, len(r.middleware)+len(entry.Middleware))
		chain = append(chain, r.middleware...)
		chain = append(chain, entry.Middleware...)
	}

	out, err := runChain(c, chain, entry.Handler)
	if err != nil {
		r.logger.Error("handler chain failed",
			"method", c.Method, "path", c.Path, "route", c.Route, "error", err)
		return r.failureResponse(err)
	}
	if out == nil {
		// A nil response without an error means "nothing to say".
		return NoContent()
	}
	return out
}

// write materializes a response. A file body that turns out not to exist
// downgrades to 404; any other materialization failure becomes a 500 as
// long as nothing has been written yet.
func (r *Router) write(w http.ResponseWriter, res *Response) {
	err := r.materialize(w, res)
	if err == nil {
		return
	}
	r.logger.Error("failed to materialize response", "status", res.Status, "error", err)

	if errors.Is(err, fs.ErrNotExist) {
		_ = r.materialize(w, JSON(http.StatusNotFound, H{"error": "Not Found"}))
		return
	}
	_ = r.materialize(w, r.failureResponse(err))
}

// notFoundResponse renders the 404, delegating to a configured custom
// handler when present.
func (r *Router) notFoundResponse(c *Context) *Response {
	if r.notFound != nil {
		res, err := r.notFound(c)
		if err == nil && res != nil {
			return res
		}
		if err != nil {
			r.logger.Error("custom not-found handler failed", "error", err)
		}
	}
	return JSON(http.StatusNotFound, H{"error": "Not Found"})
}

// failureResponse renders the generic 500. Internal detail is exposed only
// in development mode; the production body says nothing about the cause.
func (r *Router) failureResponse(err error) *Response {
	body := H{"error": "Internal Server Error"}
	if r.devMode && err != nil {
		body["detail"] = err.Error()
	}
	return JSON(http.StatusInternalServerError, body)
}

// Serve starts an HTTP server on addr with production-safe timeouts and
// blocks until the server exits. With WithH2C(true) the handler is wrapped
// for cleartext HTTP/2.
//
//	r := router.MustNew()
//	r.GET("/health", health)
//	if err := r.Serve(":8080"); err != nil && !errors.Is(err, http.ErrServerClosed) {
//	    log.Fatal(err)
//	}
func (r *Router) Serve(addr string) error {
	h := http.Handler(r)
	if r.enableH2C {
		h = h2c.NewHandler(h, &http2.Server{})
		r.emit(DiagH2CEnabled, "H2C enabled; use only in dev or behind a trusted LB", nil)
	}
	return r.listenAndServe(addr, h, "", "")
}

// ServeTLS starts an HTTPS server on addr. HTTP/2 is negotiated via ALPN.
func (r *Router) ServeTLS(addr, certFile, keyFile string) error {
	return r.listenAndServe(addr, r, certFile, keyFile)
}

func (r *Router) listenAndServe(addr string, h http.Handler, certFile, keyFile string) error {
	timeouts := r.serverTimeouts
	if timeouts == nil {
		timeouts = defaultServerTimeouts()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: timeouts.readHeader,
		ReadTimeout:       timeouts.read,
		WriteTimeout:      timeouts.write,
		IdleTimeout:       timeouts.idle,
	}

	r.serverMu.Lock()
	r.server = srv
	r.serverMu.Unlock()

	if certFile != "" {
		return srv.ListenAndServeTLS(certFile, keyFile)
	}
	return srv.ListenAndServe()
}

// Shutdown gracefully stops a server started with Serve or ServeTLS.
func (r *Router) Shutdown(ctx context.Context) error {
	r.serverMu.Lock()
	srv := r.server
	r.serverMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

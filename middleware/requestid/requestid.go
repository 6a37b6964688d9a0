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

// Package requestid assigns every request a unique ID for log and trace
// correlation, echoed back to the client in a response header.
package requestid

import (
	"github.com/google/uuid"

	"github.com/nino-ts/nino/router"
)

// idKey is the context key under which the request ID is stored.
const idKey = "requestid.id"

// Option defines functional options for requestid middleware configuration.
type Option func(*config)

type config struct {
	headerName    string
	generator     func() string
	allowClientID bool
}

func defaultConfig() *config {
	return &config{
		headerName:    "X-Request-ID",
		generator:     func() string { return uuid.NewString() },
		allowClientID: true,
	}
}

// WithHeader sets the header carrying the request ID.
func WithHeader(name string) Option {
	return func(cfg *config) { cfg.headerName = name }
}

// WithGenerator replaces the UUIDv4 generator.
func WithGenerator(fn func() string) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.generator = fn
		}
	}
}

// WithAllowClientID controls whether an ID supplied by the client in the
// request header is reused. Enabled by default; disable when IDs must be
// trusted.
func WithAllowClientID(allow bool) Option {
	return func(cfg *config) { cfg.allowClientID = allow }
}

// New returns a middleware that tags each request with an ID: the
// client's own, when present and allowed, otherwise a fresh UUIDv4. The
// ID is stored on the context for downstream middleware and set on the
// response header.
//
//	r.Use(requestid.New())
//
//	r.Use(requestid.New(
//	    requestid.WithHeader("X-Correlation-ID"),
//	    requestid.WithAllowClientID(false),
//	))
func New(opts ...Option) router.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *router.Context, next router.Next) (*router.Response, error) {
		id := ""
		if cfg.allowClientID {
			id = c.Header(cfg.headerName)
		}
		if id == "" {
			id = cfg.generator()
		}
		c.Set(idKey, id)

		res, err := next()
		if res != nil {
			res.SetHeader(cfg.headerName, id)
		}
		return res, err
	}
}

// Get retrieves the request ID from the context, or "" when the
// middleware is not installed.
func Get(c *router.Context) string {
	return c.GetString(idKey)
}

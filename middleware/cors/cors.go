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

// Package cors implements Cross-Origin Resource Sharing middleware:
// preflight OPTIONS requests are answered directly, and responses to
// allowed origins carry the CORS headers.
package cors

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nino-ts/nino/router"
)

// Option defines functional options for cors middleware configuration.
type Option func(*config)

type config struct {
	allowOrigins     []string
	allowMethods     []string
	allowHeaders     []string
	exposeHeaders    []string
	allowCredentials bool
	maxAge           time.Duration
}

func defaultConfig() *config {
	return &config{
		allowOrigins: []string{"*"},
		allowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		allowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		maxAge:       12 * time.Hour,
	}
}

// WithAllowOrigins sets the origin allow-list. "*" allows every origin.
func WithAllowOrigins(origins ...string) Option {
	return func(cfg *config) { cfg.allowOrigins = origins }
}

// WithAllowMethods sets the methods announced to preflight requests.
func WithAllowMethods(methods ...string) Option {
	return func(cfg *config) { cfg.allowMethods = methods }
}

// WithAllowHeaders sets the request headers announced to preflight
// requests.
func WithAllowHeaders(headers ...string) Option {
	return func(cfg *config) { cfg.allowHeaders = headers }
}

// WithExposeHeaders sets the response headers scripts may read.
func WithExposeHeaders(headers ...string) Option {
	return func(cfg *config) { cfg.exposeHeaders = headers }
}

// WithAllowCredentials allows cookies and authorization headers on
// cross-origin requests. Incompatible with a "*" origin; list origins
// explicitly.
func WithAllowCredentials(allow bool) Option {
	return func(cfg *config) { cfg.allowCredentials = allow }
}

// WithMaxAge sets how long browsers may cache a preflight result.
func WithMaxAge(d time.Duration) Option {
	return func(cfg *config) { cfg.maxAge = d }
}

// New returns CORS middleware. A preflight request (OPTIONS with an
// Origin and Access-Control-Request-Method header) from an allowed origin
// is answered with 204 without reaching the handler; any other request
// runs the chain and the CORS headers are attached to its response.
//
//	r.Use(cors.New(
//	    cors.WithAllowOrigins("https://app.example.com"),
//	    cors.WithAllowCredentials(true),
//	))
func New(opts ...Option) router.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	allowAll := false
	allowed := make(map[string]bool, len(cfg.allowOrigins))
	for _, o := range cfg.allowOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	allowMethods := strings.Join(cfg.allowMethods, ", ")
	allowHeaders := strings.Join(cfg.allowHeaders, ", ")
	exposeHeaders := strings.Join(cfg.exposeHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.maxAge / time.Second))

	originHeader := func(origin string) string {
		if allowAll && !cfg.allowCredentials {
			return "*"
		}
		return origin
	}

	return func(c *router.Context, next router.Next) (*router.Response, error) {
		origin := c.Header("Origin")
		if origin == "" {
			// Same-origin request, nothing to do.
			return next()
		}
		if !allowAll && !allowed[origin] {
			return next()
		}

		if c.Method == http.MethodOptions && c.Header("Access-Control-Request-Method") != "" {
			res := router.NoContent().
				SetHeader("Access-Control-Allow-Origin", originHeader(origin)).
				SetHeader("Access-Control-Allow-Methods", allowMethods).
				SetHeader("Access-Control-Allow-Headers", allowHeaders).
				SetHeader("Access-Control-Max-Age", maxAge).
				SetHeader("Vary", "Origin")
			if cfg.allowCredentials {
				res.SetHeader("Access-Control-Allow-Credentials", "true")
			}
			return res, nil
		}

		res, err := next()
		if res == nil || err != nil {
			return res, err
		}
		res.SetHeader("Access-Control-Allow-Origin", originHeader(origin)).
			SetHeader("Vary", "Origin")
		if exposeHeaders != "" {
			res.SetHeader("Access-Control-Expose-Headers", exposeHeaders)
		}
		if cfg.allowCredentials {
			res.SetHeader("Access-Control-Allow-Credentials", "true")
		}
		return res, nil
	}
}

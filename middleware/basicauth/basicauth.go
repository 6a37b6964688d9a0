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

// Package basicauth implements HTTP Basic Authentication (RFC 7617) as a
// middleware for the nino router.
package basicauth

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/nino-ts/nino/router"
)

// usernameKey is the context key under which the authenticated username
// is stored.
const usernameKey = "basicauth.username"

// Option defines functional options for basicauth middleware configuration.
type Option func(*config)

type config struct {
	users     map[string]string
	realm     string
	validator func(username, password string) bool
	skipPaths map[string]bool
}

func defaultConfig() *config {
	return &config{
		users:     make(map[string]string),
		realm:     "Restricted",
		skipPaths: make(map[string]bool),
	}
}

// WithUsers sets the static username/password table. Passwords are
// compared in constant time.
func WithUsers(users map[string]string) Option {
	return func(cfg *config) {
		for u, p := range users {
			cfg.users[u] = p
		}
	}
}

// WithValidator sets a custom credential check, replacing the static
// table. Use this for database or hash-based lookups.
func WithValidator(validator func(username, password string) bool) Option {
	return func(cfg *config) { cfg.validator = validator }
}

// WithRealm sets the realm announced in the WWW-Authenticate header.
func WithRealm(realm string) Option {
	return func(cfg *config) { cfg.realm = realm }
}

// WithSkipPaths exempts exact request paths from authentication.
func WithSkipPaths(paths ...string) Option {
	return func(cfg *config) {
		for _, p := range paths {
			cfg.skipPaths[p] = true
		}
	}
}

// New returns a middleware that enforces HTTP Basic Authentication. A
// request without valid credentials is answered with 401 and never
// reaches the handler.
//
// Basic Auth transmits credentials in base64, not encrypted; serve it
// over HTTPS.
//
// Static users:
//
//	r.Use(basicauth.New(
//	    basicauth.WithUsers(map[string]string{"admin": "secretpass"}),
//	))
//
// Custom validator:
//
//	r.Use(basicauth.New(
//	    basicauth.WithValidator(func(username, password string) bool {
//	        return store.CheckPassword(username, password)
//	    }),
//	))
//
// Protecting one group:
//
//	admin := r.Group("/admin", basicauth.New(
//	    basicauth.WithUsers(map[string]string{"admin": "secret"}),
//	))
func New(opts ...Option) router.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	authenticateHeader := `Basic realm="` + cfg.realm + `"`

	challenge := func() *router.Response {
		return router.JSON(http.StatusUnauthorized, router.H{
			"error": "Unauthorized",
			"code":  "UNAUTHORIZED",
		}).SetHeader("WWW-Authenticate", authenticateHeader)
	}

	return func(c *router.Context, next router.Next) (*router.Response, error) {
		if cfg.skipPaths[c.Path] {
			return next()
		}

		username, password, ok := decodeCredentials(c.Header("Authorization"))
		if !ok {
			return challenge(), nil
		}

		var authenticated bool
		if cfg.validator != nil {
			authenticated = cfg.validator(username, password)
		} else if expected, exists := cfg.users[username]; exists {
			authenticated = subtle.ConstantTimeCompare(
				[]byte(password),
				[]byte(expected),
			) == 1
		}
		if !authenticated {
			return challenge(), nil
		}

		c.Set(usernameKey, username)
		return next()
	}
}

// decodeCredentials parses an Authorization header value per RFC 7617.
func decodeCredentials(auth string) (username, password string, ok bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(auth, prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(auth[len(prefix):])
	if err != nil {
		return "", "", false
	}
	credentials := string(decoded)
	colon := strings.IndexByte(credentials, ':')
	if colon == -1 {
		return "", "", false
	}
	return credentials[:colon], credentials[colon+1:], true
}

// Username retrieves the authenticated username from the context, or ""
// if the request was not authenticated.
func Username(c *router.Context) string {
	return c.GetString(usernameKey)
}

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

package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nino-ts/nino/router"
)

func idRouter(opts ...Option) (*router.Router, *string) {
	var seen string
	r := router.MustNew()
	r.Use(New(opts...))
	r.GET("/x", func(c *router.Context) (*router.Response, error) {
		seen = Get(c)
		return router.NoContent(), nil
	})
	return r, &seen
}

func TestGeneratesUUID(t *testing.T) {
	r, seen := idRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/x", nil))

	id := rec.Header().Get("X-Request-ID")
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err, "default generator produces a UUID")
	assert.Equal(t, id, *seen, "handler sees the same ID as the client")
}

func TestClientIDReused(t *testing.T) {
	r, seen := idRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	r.ServeHTTP(rec, req)

	assert.Equal(t, "client-supplied", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "client-supplied", *seen)
}

func TestClientIDRejectedWhenDisallowed(t *testing.T) {
	r, _ := idRouter(WithAllowClientID(false))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	r.ServeHTTP(rec, req)

	assert.NotEqual(t, "client-supplied", rec.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCustomHeaderAndGenerator(t *testing.T) {
	r, _ := idRouter(
		WithHeader("X-Correlation-ID"),
		WithGenerator(func() string { return "fixed" }),
	)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/x", nil))
	assert.Equal(t, "fixed", rec.Header().Get("X-Correlation-ID"))
	assert.Empty(t, rec.Header().Get("X-Request-ID"))
}

func TestUnmatchedRequestsGetNoID(t *testing.T) {
	// Middleware runs only on matched routes; a 404 carries no ID.
	r, _ := idRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Request-ID"))
}

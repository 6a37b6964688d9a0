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
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(r *Router, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestServeMatchedRoute(t *testing.T) {
	r := MustNew()
	r.GET("/users/:id", func(c *Context) (*Response, error) {
		return JSON(http.StatusOK, H{"id": c.Param("id")}), nil
	})

	rec := doRequest(r, "GET", "/users/42")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"42"}`, rec.Body.String())
}

func TestServeHealthZeroOverhead(t *testing.T) {
	r := MustNew()

	var sideEffects int
	r.GET("/health", func(*Context) (*Response, error) {
		return JSON(http.StatusOK, H{"status": "ok"}), nil
	})
	r.POST("/other", func(*Context) (*Response, error) {
		sideEffects++
		return NoContent(), nil
	}, func(c *Context, next Next) (*Response, error) {
		sideEffects++
		return next()
	})

	rec := doRequest(r, "GET", "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Zero(t, sideEffects, "no unrelated middleware or handler fires")
}

func TestServeNotFound(t *testing.T) {
	r := MustNew()
	r.GET("/known", func(*Context) (*Response, error) { return NoContent(), nil })

	rec := doRequest(r, "DELETE", "/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Existing path, wrong method: still 404 by design, never 405.
	rec = doRequest(r, "POST", "/known")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeCustomNotFound(t *testing.T) {
	r := MustNew(WithNotFoundHandler(func(c *Context) (*Response, error) {
		return Text(http.StatusNotFound, "nothing at "+c.Path), nil
	}))

	rec := doRequest(r, "GET", "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "nothing at /missing", rec.Body.String())
}

func TestServeHandlerErrorHidesDetail(t *testing.T) {
	r := MustNew()
	r.GET("/widgets", func(*Context) (*Response, error) {
		return nil, errors.New("db connection string leaked")
	})

	rec := doRequest(r, "GET", "/widgets")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db connection string",
		"internal detail must not reach the client without the dev flag")
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
}

func TestServeHandlerErrorDevMode(t *testing.T) {
	r := MustNew(WithDevMode(true))
	r.GET("/widgets", func(*Context) (*Response, error) {
		return nil, errors.New("boom detail")
	})

	rec := doRequest(r, "GET", "/widgets")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "boom detail")
}

func TestServePanicContained(t *testing.T) {
	r := MustNew()
	r.GET("/explode", func(*Context) (*Response, error) {
		panic("kaboom")
	})
	r.GET("/fine", func(*Context) (*Response, error) {
		return Text(http.StatusOK, "fine"), nil
	})

	rec := doRequest(r, "GET", "/explode")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "kaboom")

	// The failing request does not poison subsequent ones.
	rec = doRequest(r, "GET", "/fine")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fine", rec.Body.String())
}

func TestServeMiddlewarePanicContained(t *testing.T) {
	r := MustNew()
	r.Use(func(c *Context, next Next) (*Response, error) {
		panic("middleware kaboom")
	})
	r.GET("/x", func(*Context) (*Response, error) { return NoContent(), nil })

	rec := doRequest(r, "GET", "/x")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServeTimeout(t *testing.T) {
	r := MustNew(WithRequestTimeout(30 * time.Millisecond))

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	r.GET("/slow", func(c *Context) (*Response, error) {
		select {
		case <-c.Context().Done():
		case <-release:
		}
		return NoContent(), nil
	})

	rec := doRequest(r, "GET", "/slow")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestServeTimeoutCustomStatus(t *testing.T) {
	r := MustNew(
		WithRequestTimeout(10*time.Millisecond),
		WithTimeoutStatus(http.StatusServiceUnavailable),
	)
	r.GET("/slow", func(c *Context) (*Response, error) {
		<-c.Context().Done()
		return NoContent(), nil
	})

	rec := doRequest(r, "GET", "/slow")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServeFastRouteBeatsTimeout(t *testing.T) {
	r := MustNew(WithRequestTimeout(time.Second))
	r.GET("/fast", func(*Context) (*Response, error) {
		return Text(http.StatusOK, "quick"), nil
	})

	rec := doRequest(r, "GET", "/fast")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "quick", rec.Body.String())
}

func TestServeGlobalThenRouteMiddlewareOrder(t *testing.T) {
	r := MustNew()
	var calls []string

	r.Use(tracingMiddleware("global", &calls))
	r.GET("/x", func(*Context) (*Response, error) {
		calls = append(calls, "H")
		return NoContent(), nil
	}, tracingMiddleware("route", &calls))

	doRequest(r, "GET", "/x")
	assert.Equal(t, []string{"global:in", "route:in", "H", "route:out", "global:out"}, calls)
}

func TestServeTrailingSlash(t *testing.T) {
	r := MustNew()
	r.GET("/users/:id", func(c *Context) (*Response, error) {
		return Text(http.StatusOK, c.Param("id")), nil
	})

	rec := doRequest(r, "GET", "/users/42/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", rec.Body.String())
}

func TestServeNilResponseBecomesNoContent(t *testing.T) {
	r := MustNew()
	r.GET("/quiet", func(*Context) (*Response, error) { return nil, nil })

	rec := doRequest(r, "GET", "/quiet")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestServeRouteContextFields(t *testing.T) {
	r := MustNew()
	r.GET("/users/:id", func(c *Context) (*Response, error) {
		assert.Equal(t, "/users/:id", c.Route)
		assert.NotNil(t, c.Params)
		return NoContent(), nil
	})
	doRequest(r, "GET", "/users/1")
}

func TestRegistrationAfterServingPanics(t *testing.T) {
	r := MustNew()
	r.GET("/x", func(*Context) (*Response, error) { return NoContent(), nil })
	doRequest(r, "GET", "/x")

	assert.PanicsWithValue(t, ErrRouterFrozen, func() {
		r.GET("/late", func(*Context) (*Response, error) { return NoContent(), nil })
	})
	assert.PanicsWithValue(t, ErrRouterFrozen, func() {
		r.Use(func(c *Context, next Next) (*Response, error) { return next() })
	})
}

func TestRegistrationPanicsOnBadPattern(t *testing.T) {
	r := MustNew()
	assert.Panics(t, func() {
		r.GET("/users/:id/:id", func(*Context) (*Response, error) { return NoContent(), nil })
	})
	assert.Panics(t, func() {
		r.Handle("", "/x", func(*Context) (*Response, error) { return NoContent(), nil })
	})
	assert.Panics(t, func() { r.GET("/x", nil) })
}

func TestShadowDiagnosticObservable(t *testing.T) {
	var events []DiagnosticEvent
	r := MustNew(WithDiagnostics(DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		events = append(events, e)
	})))

	r.GET("/users/:id", func(*Context) (*Response, error) { return Text(http.StatusOK, "old"), nil })
	r.GET("/users/[uid]", func(*Context) (*Response, error) { return Text(http.StatusOK, "new"), nil })

	var shadowed []DiagnosticEvent
	for _, e := range events {
		if e.Kind == DiagRouteShadowed {
			shadowed = append(shadowed, e)
		}
	}
	require.Len(t, shadowed, 1, "shadowing must be observable as a diagnostic")
	assert.Equal(t, "/users/:id", shadowed[0].Fields["shadowed"])

	// Last registration wins.
	rec := doRequest(r, "GET", "/users/9")
	assert.Equal(t, "new", rec.Body.String())
}

func TestNewValidation(t *testing.T) {
	_, err := New(WithRequestTimeout(-time.Second))
	require.ErrorIs(t, err, ErrRequestTimeoutInvalid)

	_, err = New(WithTimeoutStatus(42))
	require.ErrorIs(t, err, ErrTimeoutStatusInvalid)

	_, err = New(WithServerTimeouts(0, time.Second, time.Second, time.Second))
	require.ErrorIs(t, err, ErrServerTimeoutInvalid)

	assert.Panics(t, func() { MustNew(WithTimeoutStatus(-1)) })
}

func TestServeStatusCodesInUse(t *testing.T) {
	// The engine and its middleware surface the full status vocabulary;
	// here the handler-facing constructors cover the common set.
	r := MustNew()
	for _, status := range []int{200, 201, 204, 400, 401, 403, 409, 429} {
		status := status
		r.GET("/s/"+strconv.Itoa(status), func(*Context) (*Response, error) {
			if status == http.StatusNoContent {
				return NoContent(), nil
			}
			return JSON(status, H{"status": status}), nil
		})
	}

	rec := doRequest(r, "GET", "/s/401")
	assert.Equal(t, 401, rec.Code)
	rec = doRequest(r, "GET", "/s/204")
	assert.Equal(t, 204, rec.Code)
}

func TestServeBodyAvailableToHandler(t *testing.T) {
	r := MustNew()
	r.POST("/echo", func(c *Context) (*Response, error) {
		body, ok := c.Body.(map[string]any)
		if !ok {
			return JSON(http.StatusBadRequest, H{"error": "body required"}), nil
		}
		return JSON(http.StatusOK, body), nil
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/echo", strings.NewReader(`{"a":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"a":1}`, rec.Body.String())

	// Malformed body: handler's own 400, not a 500.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/echo", strings.NewReader(`{"a":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

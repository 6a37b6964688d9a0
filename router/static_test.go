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
	"net/http"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func staticTestFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html":        {Data: []byte("<h1>home</h1>")},
		"css/app.css":       {Data: []byte("body{}")},
		"docs/index.html":   {Data: []byte("<h1>docs</h1>")},
		"img/logo.png":      {Data: []byte{0x89, 'P', 'N', 'G'}},
		"static-route.html": {Data: []byte("<p>file</p>")},
	}
}

func TestStaticFileServed(t *testing.T) {
	r := MustNew(WithStaticFS(staticTestFS()))

	rec := doRequest(r, "GET", "/css/app.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, staticCacheControl, rec.Header().Get("Cache-Control"))
	assert.Equal(t, "body{}", rec.Body.String())
}

func TestStaticBypassesRouter(t *testing.T) {
	r := MustNew(WithStaticFS(staticTestFS()))

	var handlerRan bool
	r.GET("/static-route.html", func(*Context) (*Response, error) {
		handlerRan = true
		return Text(http.StatusOK, "from route"), nil
	})

	rec := doRequest(r, "GET", "/static-route.html")
	assert.Equal(t, "<p>file</p>", rec.Body.String(), "file wins over the route")
	assert.False(t, handlerRan, "the matcher is bypassed entirely")
}

func TestStaticDirectoryIndexFallback(t *testing.T) {
	r := MustNew(WithStaticFS(staticTestFS()))

	rec := doRequest(r, "GET", "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<h1>home</h1>", rec.Body.String())

	rec = doRequest(r, "GET", "/docs")
	assert.Equal(t, "<h1>docs</h1>", rec.Body.String())

	rec = doRequest(r, "GET", "/docs/")
	assert.Equal(t, "<h1>docs</h1>", rec.Body.String())
}

func TestStaticMissFallsThroughToRoutes(t *testing.T) {
	r := MustNew(WithStaticFS(staticTestFS()))
	r.GET("/api/ping", func(*Context) (*Response, error) {
		return Text(http.StatusOK, "pong"), nil
	})

	rec := doRequest(r, "GET", "/api/ping")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())

	rec = doRequest(r, "GET", "/api/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaticOnlyGetAndHead(t *testing.T) {
	r := MustNew(WithStaticFS(staticTestFS()))
	r.POST("/css/app.css", func(*Context) (*Response, error) {
		return Text(http.StatusOK, "posted"), nil
	})

	rec := doRequest(r, "POST", "/css/app.css")
	assert.Equal(t, "posted", rec.Body.String(), "non-GET requests go to routing")

	rec = doRequest(r, "HEAD", "/css/app.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.Bytes(), "HEAD sends headers only")
	assert.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestStaticTraversalRejected(t *testing.T) {
	r := MustNew(WithStaticFS(staticTestFS()))

	rec := doRequest(r, "GET", "/../../etc/passwd")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaticContentTypeByExtension(t *testing.T) {
	r := MustNew(WithStaticFS(staticTestFS()))

	rec := doRequest(r, "GET", "/img/logo.png")
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestNoStaticConfigured(t *testing.T) {
	r := MustNew()
	rec := doRequest(r, "GET", "/index.html")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

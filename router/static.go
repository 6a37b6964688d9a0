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
	"io"
	"io/fs"
	"net/http"
	"path"
	"strconv"
	"strings"
)

// tryServeStatic attempts to answer a GET or HEAD request from the
// configured static filesystem, before any routing happens. It returns
// true when a file was served. Misses fall through to the route matcher,
// so static files and routes can coexist under one path space.
//
// The request path maps directly onto the filesystem: "/css/app.css" →
// "css/app.css". Directory paths (including "/") fall back to the
// index.html convention. Paths that try to escape the root are rejected
// without touching the filesystem.
func (r *Router) tryServeStatic(w http.ResponseWriter, req *http.Request) bool {
	if r.staticFS == nil {
		return false
	}
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return false
	}

	name := path.Clean(strings.TrimPrefix(req.URL.Path, "/"))
	if name == "" || name == "." {
		name = r.staticIndex
	}
	if strings.HasPrefix(name, "..") || path.IsAbs(name) {
		return false
	}

	info, err := fs.Stat(r.staticFS, name)
	if err == nil && info.IsDir() {
		name = path.Join(name, r.staticIndex)
		info, err = fs.Stat(r.staticFS, name)
	}
	if err != nil || info.IsDir() {
		return false
	}

	f, err := r.staticFS.Open(name)
	if err != nil {
		r.logger.Warn("static file open failed", "file", name, "error", err)
		return false
	}
	defer f.Close()

	h := w.Header()
	h.Set("Server", r.serverHeader)
	h.Set("Content-Type", contentTypeForFile(name))
	h.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	h.Set("Cache-Control", staticCacheControl)
	w.WriteHeader(http.StatusOK)

	if req.Method == http.MethodHead {
		return true
	}
	if _, err := io.Copy(w, f); err != nil {
		r.logger.Warn("static file copy failed", "file", name, "error", err)
	}
	return true
}

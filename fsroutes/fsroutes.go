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

package fsroutes

import (
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/nino-ts/nino/router"
)

const goExt = ".go"

// Route is one discovered method/path pair, ready for registration.
type Route struct {
	Method  string
	Path    string
	File    string // slash-separated path of the source file, relative to the tree root
	Handler router.Handler
}

// Option defines functional options for the loader.
type Option func(*Loader)

// WithLogger sets the logger used for discovery warnings. Without it the
// loader is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loader walks a route tree and joins it with the registered manifest.
type Loader struct {
	fsys    fs.FS
	logger  *slog.Logger
	modules map[string]*Module
}

// New creates a loader over an fs.FS. Use NewDir for a directory on disk.
func New(fsys fs.FS, opts ...Option) *Loader {
	l := &Loader{
		fsys:    fsys,
		logger:  router.NoopLogger(),
		modules: make(map[string]*Module),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewDir creates a loader rooted at a directory on the local filesystem.
// The directory is allowed to be missing: Load reports it and returns no
// routes, it never fails startup.
func NewDir(dir string, opts ...Option) *Loader {
	return New(os.DirFS(dir), opts...)
}

// Register binds a module to the route file at rel, a slash-separated
// path relative to the tree root ("users/[id]/route.go"). Registering the
// same file twice replaces the earlier module.
func (l *Loader) Register(rel string, m *Module) {
	l.modules[normalizeRel(rel)] = m
}

func normalizeRel(rel string) string {
	rel = strings.ReplaceAll(rel, "\\", "/")
	return strings.TrimPrefix(path.Clean(rel), "./")
}

// Load walks the tree and returns the discovered routes in deterministic
// order: files in lexicographic walk order, methods in fixed method order.
// Every failure is contained to the file it concerns; a route file with no
// registered module, or a registered module whose file does not exist,
// contributes zero routes and a warning.
func (l *Loader) Load() []Route {
	if _, err := fs.Stat(l.fsys, "."); err != nil {
		l.logger.Warn("route tree not readable, serving no filesystem routes", "error", err)
		return nil
	}

	var routes []Route
	seen := make(map[string]bool, len(l.modules))

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			l.logger.Warn("skipping unreadable entry", "file", p, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isRouteFile(p) {
			return nil
		}

		seen[p] = true
		mod, ok := l.modules[p]
		if !ok || mod == nil {
			l.logger.Warn("route file has no registered module", "file", p)
			return nil
		}
		if mod.empty() {
			l.logger.Warn("route module exports no method handlers", "file", p)
			return nil
		}

		urlPath := RoutePath(p)
		for _, method := range methodOrder {
			h := mod.byMethod(method)
			if h == nil {
				continue
			}
			routes = append(routes, Route{Method: method, Path: urlPath, File: p, Handler: h})
			l.logger.Debug("route discovered", "method", method, "route", urlPath, "file", p)
		}
		return nil
	})
	if err != nil {
		l.logger.Warn("route tree walk aborted", "error", err)
	}

	// A manifest entry whose file is gone usually means a stale generated
	// manifest; surface it, sorted so the warnings are stable.
	var missing []string
	for rel := range l.modules {
		if !seen[rel] {
			missing = append(missing, rel)
		}
	}
	sort.Strings(missing)
	for _, rel := range missing {
		l.logger.Warn("registered module has no route file", "file", rel)
	}

	return routes
}

// Attach loads the tree and registers every discovered route on r.
// Register feeders in precedence order: attach before declarative routes
// so a declarative route with the same shape wins.
func Attach(r *router.Router, l *Loader) {
	for _, route := range l.Load() {
		r.Handle(route.Method, route.Path, route.Handler)
	}
}

// isRouteFile reports whether the walk entry is a route source file.
// Test files and files starting with "_" or "." are build-system noise,
// not routes.
func isRouteFile(p string) bool {
	base := path.Base(p)
	if !strings.HasSuffix(base, goExt) || strings.HasSuffix(base, "_test.go") {
		return false
	}
	return base[0] != '_' && base[0] != '.'
}

// RoutePath derives the URL path for a route file. The directory chain
// provides the leading segments; the base name provides the final one,
// except for the route.go / index.go markers which collapse onto the
// directory itself. Bracket segments pass through untouched, the pattern
// compiler turns them into captures.
//
//	users/[id]/route.go → /users/[id]
//	users.go            → /users
//	index.go            → /
func RoutePath(rel string) string {
	rel = normalizeRel(rel)
	dir := path.Dir(rel)
	base := strings.TrimSuffix(path.Base(rel), goExt)

	var segments []string
	if dir != "." {
		segments = strings.Split(dir, "/")
	}
	if base != "route" && base != "index" {
		segments = append(segments, base)
	}
	return "/" + strings.Join(segments, "/")
}

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

import "net/http"

// Group organizes related routes under a shared path prefix with shared
// middleware — the controller-grouping abstraction. Group middleware runs
// after the router's global middleware and before route-specific middleware,
// so the effective chain for a grouped route is:
//
//	[global...] + [group...] + [route...] + handler
//
// Example:
//
//	api := r.Group("/api/v1", authMiddleware)
//	users := api.Group("/users")
//	users.GET("/:id", getUser)          // final path: /api/v1/users/:id
type Group struct {
	router     *Router
	prefix     string
	middleware []Middleware
}

// Group creates a route group on the router.
func (r *Router) Group(prefix string, middleware ...Middleware) *Group {
	return &Group{router: r, prefix: prefix, middleware: middleware}
}

// Group creates a nested group. The child inherits the parent's prefix and
// middleware; paths join with duplicate slashes collapsed.
func (g *Group) Group(prefix string, middleware ...Middleware) *Group {
	combined := make([]Middleware, 0, len(g.middleware)+len(middleware))
	combined = append(combined, g.middleware...)
	combined = append(combined, middleware...)
	return &Group{
		router:     g.router,
		prefix:     joinPath(g.prefix, prefix),
		middleware: combined,
	}
}

// Use appends middleware to the group. It affects only routes registered
// after the call.
func (g *Group) Use(middleware ...Middleware) {
	g.middleware = append(g.middleware, middleware...)
}

// Handle registers a route under the group's prefix with the group's
// middleware prepended to the route's own.
func (g *Group) Handle(method, path string, handler Handler, middleware ...Middleware) {
	combined := make([]Middleware, 0, len(g.middleware)+len(middleware))
	combined = append(combined, g.middleware...)
	combined = append(combined, middleware...)
	g.router.Handle(method, joinPath(g.prefix, path), handler, combined...)
}

// GET registers a GET route under the group's prefix.
func (g *Group) GET(path string, handler Handler, middleware ...Middleware) {
	g.Handle(http.MethodGet, path, handler, middleware...)
}

// POST registers a POST route under the group's prefix.
func (g *Group) POST(path string, handler Handler, middleware ...Middleware) {
	g.Handle(http.MethodPost, path, handler, middleware...)
}

// PUT registers a PUT route under the group's prefix.
func (g *Group) PUT(path string, handler Handler, middleware ...Middleware) {
	g.Handle(http.MethodPut, path, handler, middleware...)
}

// PATCH registers a PATCH route under the group's prefix.
func (g *Group) PATCH(path string, handler Handler, middleware ...Middleware) {
	g.Handle(http.MethodPatch, path, handler, middleware...)
}

// DELETE registers a DELETE route under the group's prefix.
func (g *Group) DELETE(path string, handler Handler, middleware ...Middleware) {
	g.Handle(http.MethodDelete, path, handler, middleware...)
}

// OPTIONS registers an OPTIONS route under the group's prefix.
func (g *Group) OPTIONS(path string, handler Handler, middleware ...Middleware) {
	g.Handle(http.MethodOptions, path, handler, middleware...)
}

// HEAD registers a HEAD route under the group's prefix.
func (g *Group) HEAD(path string, handler Handler, middleware ...Middleware) {
	g.Handle(http.MethodHead, path, handler, middleware...)
}

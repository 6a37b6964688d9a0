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

// Package router implements nino's request-routing and dispatch engine.
//
// The engine compiles route paths into matchable patterns, keeps them in a
// route table that is frozen before serving, matches incoming requests
// (including dynamic path segments such as "/users/:id" or "/users/[id]"),
// runs a composable middleware chain around the matched handler, and
// materializes the handler's abstract Response onto the wire.
//
// Handlers return a *Response instead of writing to the connection directly:
//
//	r := router.MustNew()
//	r.GET("/users/:id", func(c *router.Context) (*router.Response, error) {
//	    return router.JSON(http.StatusOK, router.H{"id": c.Param("id")}), nil
//	})
//	r.Serve(":8080")
//
// Middleware wraps the rest of the chain through an explicit next
// continuation, so it may short-circuit, pass through, or post-process:
//
//	func timing() router.Middleware {
//	    return func(c *router.Context, next router.Next) (*router.Response, error) {
//	        start := time.Now()
//	        res, err := next()
//	        c.Logger().Debug("handled", "path", c.Path, "elapsed", time.Since(start))
//	        return res, err
//	    }
//	}
//
// Route precedence is deliberate and reproducible: exact-literal routes
// always win over dynamic routes, and among dynamic routes the first one
// registered wins. A request whose path matches a route registered for a
// different method is treated as unmatched and answered with 404; the
// engine does not synthesize 405 responses.
//
// Failures never cross request boundaries. A handler error or panic is
// contained by the server shell and answered with a generic 500; internal
// detail is only included when the router runs in development mode.
package router

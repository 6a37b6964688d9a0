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

// H is a shortcut for map[string]any, convenient for JSON responses.
type H map[string]any

// Handler is the terminal function of a route: it receives the request
// context and returns the abstract response the materializer will write.
// Returning an error aborts the request and is answered with a generic 500
// by the server shell; handlers that want a specific status return a
// Response instead.
type Handler func(*Context) (*Response, error)

// Next invokes the remainder of the middleware chain and ultimately the
// terminal handler, returning whatever response bubbles back.
type Next func() (*Response, error)

// Middleware wraps the rest of the chain. A middleware may:
//
//   - call next() and return its result unchanged,
//   - call next(), inspect or transform the returned response, and return
//     a modified one,
//   - never call next() and return its own response, short-circuiting the
//     chain (authentication failures, rate-limit rejections, CORS preflight).
//
// Middleware execute in list order on the way in; post-processing after the
// next() call runs in reverse order on the way out. Errors propagate to the
// server shell untouched, so middleware only handles errors it wants to
// translate into a response.
type Middleware func(*Context, Next) (*Response, error)

// runChain composes middleware and the terminal handler into a single
// continuation and executes it. The cursor advances once per next() call;
// when it passes the end of the middleware list the handler runs.
func runChain(c *Context, middleware []Middleware, handler Handler) (*Response, error) {
	if len(middleware) == 0 {
		return handler(c)
	}

	index := -1
	var next Next
	next = func() (*Response, error) {
		index++
		if index < len(middleware) {
			return middleware[index](c, next)
		}
		return handler(c)
	}
	return next()
}

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

// RouteEntry is one registered route: an uppercased HTTP method, a compiled
// pattern, the terminal handler, and the route-specific middleware in
// attachment order. Entries are owned by the route table and are immutable
// once the router starts serving.
type RouteEntry struct {
	Method     string
	Pattern    Pattern
	Handler    Handler
	Middleware []Middleware
}

// routeTable holds all registered routes. It is append-only while the router
// is being configured and strictly read-only once serving begins, so request
// handling needs no locking.
//
// Static routes (no captures) live in an exact-match map keyed by normalized
// path and method: the fast path, and the reason an exact route always beats
// a shape-equal dynamic route. Dynamic routes live in a flat list scanned in
// registration order, which makes match precedence reproducible across runs.
type routeTable struct {
	static  map[string]map[string]*RouteEntry // path key -> method -> entry
	dynamic []*RouteEntry
}

func newRouteTable() *routeTable {
	return &routeTable{static: make(map[string]map[string]*RouteEntry)}
}

// add appends an entry to the table. If an equal-shape route already exists
// for the same method, the new entry replaces it (last registration wins) and
// the shadowed entry is returned so the caller can surface a diagnostic.
func (t *routeTable) add(e *RouteEntry) (shadowed *RouteEntry) {
	if e.Pattern.IsStatic() {
		key := e.Pattern.staticKey()
		byMethod := t.static[key]
		if byMethod == nil {
			byMethod = make(map[string]*RouteEntry, 2)
			t.static[key] = byMethod
		}
		shadowed = byMethod[e.Method]
		byMethod[e.Method] = e
		return shadowed
	}

	for i, existing := range t.dynamic {
		if existing.Method == e.Method && existing.Pattern.EqualShape(e.Pattern) {
			// Replace in place: the shadowing route inherits the original
			// position so precedence for unrelated routes is unchanged.
			t.dynamic[i] = e
			return existing
		}
	}
	t.dynamic = append(t.dynamic, e)
	return nil
}

// match resolves a method and path against the table.
//
// The path is normalized (leading and trailing slashes stripped) and looked
// up in the exact-literal map first. Only when that misses is the dynamic
// list scanned in registration order, comparing segment by segment: literals
// must match exactly, captures accept any non-empty segment, and segment
// counts must agree. The first matching entry wins.
//
// A miss across both tables — including a method mismatch on an otherwise
// matching path — returns ok=false, which the server shell answers with 404.
func (t *routeTable) match(method, path string) (entry *RouteEntry, params map[string]string, ok bool) {
	segments := splitPath(path)

	if byMethod, found := t.static[joinSegments(segments)]; found {
		if e, has := byMethod[method]; has {
			return e, nil, true
		}
	}

	for _, e := range t.dynamic {
		if e.Method != method {
			continue
		}
		if p, matched := e.Pattern.match(segments); matched {
			return e, p, true
		}
	}

	return nil, nil, false
}

// size returns the number of registered routes across both tables.
func (t *routeTable) size() int {
	n := len(t.dynamic)
	for _, byMethod := range t.static {
		n += len(byMethod)
	}
	return n
}

func joinSegments(segments []string) string {
	switch len(segments) {
	case 0:
		return ""
	case 1:
		return segments[0]
	}
	n := len(segments) - 1
	for _, s := range segments {
		n += len(s)
	}
	b := make([]byte, 0, n)
	b = append(b, segments[0]...)
	for _, s := range segments[1:] {
		b = append(b, '/')
		b = append(b, s...)
	}
	return string(b)
}

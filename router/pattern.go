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
	"fmt"
	"strings"
)

const (
	// indexMarker collapses to its parent path: a segment named "index"
	// contributes no path segment of its own.
	indexMarker = "index"

	// routeMarker is the filesystem route-file convention. Like indexMarker
	// it collapses, so "users/route" compiles to the same pattern as "users".
	routeMarker = "route"
)

// SegmentKind distinguishes literal path segments from named captures.
type SegmentKind uint8

const (
	// SegmentLiteral matches its value byte-for-byte.
	SegmentLiteral SegmentKind = iota

	// SegmentParam matches any single non-empty segment and records it
	// under the segment's name.
	SegmentParam
)

// Segment is one element of a compiled pattern. For SegmentLiteral, Value
// holds the literal text; for SegmentParam it holds the parameter name.
type Segment struct {
	Kind  SegmentKind
	Value string
}

// Pattern is the compiled form of a route path: an ordered, fixed-length
// sequence of segments. Patterns are immutable after compilation.
type Pattern struct {
	segments []Segment
	static   bool
}

// Compile turns a raw route path into a Pattern.
//
// The raw path is split on "/" and empty segments are discarded, so leading,
// trailing, and duplicate slashes are irrelevant. A segment of the form
// "[name]" or ":name" becomes a named capture. The "index" and "route"
// markers collapse, contributing no segment; this is how a directory's own
// route file maps onto the directory path. Every other segment is a literal.
//
//	Compile("/users/[id]")     // two segments: literal "users", param "id"
//	Compile("/users/:id")      // identical pattern
//	Compile("/users/route")    // one segment: literal "users"
//	Compile("/")               // zero segments (the root)
//
// Compiling the same raw path twice yields structurally identical patterns.
// A pattern that declares the same parameter name twice is rejected with
// ErrDuplicateParam; an unnamed capture is rejected with ErrEmptyParam.
// Both are startup failures, never runtime faults.
func Compile(raw string) (Pattern, error) {
	parts := splitPath(raw)

	segments := make([]Segment, 0, len(parts))
	static := true
	var seen map[string]struct{}

	for _, part := range parts {
		name, isParam := paramName(part)
		if !isParam {
			if part == indexMarker || part == routeMarker {
				continue
			}
			segments = append(segments, Segment{Kind: SegmentLiteral, Value: part})
			continue
		}

		if name == "" {
			return Pattern{}, fmt.Errorf("compile %q: %w", raw, ErrEmptyParam)
		}
		if seen == nil {
			seen = make(map[string]struct{})
		}
		if _, dup := seen[name]; dup {
			return Pattern{}, fmt.Errorf("compile %q: parameter %q: %w", raw, name, ErrDuplicateParam)
		}
		seen[name] = struct{}{}

		static = false
		segments = append(segments, Segment{Kind: SegmentParam, Value: name})
	}

	return Pattern{segments: segments, static: static}, nil
}

// MustCompile is like Compile but panics on error. It is intended for
// patterns known at program startup.
func MustCompile(raw string) Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// paramName reports whether a path segment is a dynamic capture and, if so,
// returns the declared parameter name. Both the bracket convention "[name]"
// and the colon convention ":name" are recognized.
func paramName(segment string) (string, bool) {
	if strings.HasPrefix(segment, ":") {
		return segment[1:], true
	}
	if strings.HasPrefix(segment, "[") && strings.HasSuffix(segment, "]") {
		return segment[1 : len(segment)-1], true
	}
	return "", false
}

// splitPath splits a path on "/" and drops empty segments.
func splitPath(p string) []string {
	if p == "" {
		return nil
	}
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Len returns the number of segments. It is fixed at compile time.
func (p Pattern) Len() int { return len(p.segments) }

// Segments returns a copy of the pattern's segments.
func (p Pattern) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// IsStatic reports whether the pattern contains no captures.
func (p Pattern) IsStatic() bool { return p.static }

// ParamNames returns the declared capture names in order.
func (p Pattern) ParamNames() []string {
	var names []string
	for _, s := range p.segments {
		if s.Kind == SegmentParam {
			names = append(names, s.Value)
		}
	}
	return names
}

// String renders the pattern in canonical colon form, e.g. "/users/:id".
// The root pattern renders as "/".
func (p Pattern) String() string {
	if len(p.segments) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, s := range p.segments {
		sb.WriteByte('/')
		if s.Kind == SegmentParam {
			sb.WriteByte(':')
		}
		sb.WriteString(s.Value)
	}
	return sb.String()
}

// staticKey returns the lookup key used by the exact-literal table.
// Only meaningful for static patterns.
func (p Pattern) staticKey() string {
	parts := make([]string, len(p.segments))
	for i, s := range p.segments {
		parts[i] = s.Value
	}
	return strings.Join(parts, "/")
}

// EqualShape reports whether two patterns have identical segment counts and
// identical literal positions and values. Two equal-shape patterns registered
// for the same method shadow each other: they match exactly the same paths,
// parameter names aside.
func (p Pattern) EqualShape(o Pattern) bool {
	if len(p.segments) != len(o.segments) {
		return false
	}
	for i, s := range p.segments {
		t := o.segments[i]
		if (s.Kind == SegmentLiteral) != (t.Kind == SegmentLiteral) {
			return false
		}
		if s.Kind == SegmentLiteral && s.Value != t.Value {
			return false
		}
	}
	return true
}

// match compares the pattern against pre-split path segments. On success it
// returns the extracted parameters (nil when the pattern declares none).
func (p Pattern) match(segments []string) (map[string]string, bool) {
	if len(segments) != len(p.segments) {
		return nil, false
	}
	var params map[string]string
	for i, s := range p.segments {
		switch s.Kind {
		case SegmentLiteral:
			if segments[i] != s.Value {
				return nil, false
			}
		case SegmentParam:
			if segments[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string, 4)
			}
			params[s.Value] = segments[i]
		}
	}
	return params, true
}

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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     []Segment
		isStatic bool
	}{
		{
			name:     "root",
			raw:      "/",
			want:     []Segment{},
			isStatic: true,
		},
		{
			name:     "single literal",
			raw:      "/health",
			want:     []Segment{{SegmentLiteral, "health"}},
			isStatic: true,
		},
		{
			name: "colon param",
			raw:  "/users/:id",
			want: []Segment{{SegmentLiteral, "users"}, {SegmentParam, "id"}},
		},
		{
			name: "bracket param",
			raw:  "/users/[id]",
			want: []Segment{{SegmentLiteral, "users"}, {SegmentParam, "id"}},
		},
		{
			name: "mixed conventions",
			raw:  "/users/[id]/posts/:postID",
			want: []Segment{
				{SegmentLiteral, "users"}, {SegmentParam, "id"},
				{SegmentLiteral, "posts"}, {SegmentParam, "postID"},
			},
		},
		{
			name:     "route marker collapses",
			raw:      "/users/route",
			want:     []Segment{{SegmentLiteral, "users"}},
			isStatic: true,
		},
		{
			name:     "index marker collapses",
			raw:      "/users/index",
			want:     []Segment{{SegmentLiteral, "users"}},
			isStatic: true,
		},
		{
			name:     "bare index is root",
			raw:      "/index",
			want:     []Segment{},
			isStatic: true,
		},
		{
			name:     "duplicate and trailing slashes ignored",
			raw:      "//api///users/",
			want:     []Segment{{SegmentLiteral, "api"}, {SegmentLiteral, "users"}},
			isStatic: true,
		},
		{
			name:     "no leading slash",
			raw:      "api/users",
			want:     []Segment{{SegmentLiteral, "api"}, {SegmentLiteral, "users"}},
			isStatic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.isStatic, p.IsStatic())
			require.Equal(t, len(tt.want), p.Len())
			for i, seg := range p.Segments() {
				assert.Equal(t, tt.want[i], seg, "segment %d", i)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile("/users/:id/posts/:id")
	require.ErrorIs(t, err, ErrDuplicateParam)

	_, err = Compile("/users/[id]/friends/[id]")
	require.ErrorIs(t, err, ErrDuplicateParam)

	// Same name across conventions still conflicts.
	_, err = Compile("/users/:id/[id]")
	require.ErrorIs(t, err, ErrDuplicateParam)

	_, err = Compile("/users/[]")
	require.ErrorIs(t, err, ErrEmptyParam)

	_, err = Compile("/users/:")
	require.ErrorIs(t, err, ErrEmptyParam)
}

func TestCompileIdempotent(t *testing.T) {
	a, err := Compile("/users/[id]/posts")
	require.NoError(t, err)
	b, err := Compile("/users/[id]/posts")
	require.NoError(t, err)

	assert.Equal(t, a.Segments(), b.Segments())
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, a.IsStatic(), b.IsStatic())
}

func TestPatternString(t *testing.T) {
	assert.Equal(t, "/", MustCompile("/").String())
	assert.Equal(t, "/users/:id", MustCompile("/users/[id]").String())
	assert.Equal(t, "/users/:id", MustCompile("/users/:id").String())
	assert.Equal(t, "/health", MustCompile("health").String())
}

func TestPatternEqualShape(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"/users/:id", "/users/[uid]", true}, // param names do not matter
		{"/users/:id", "/users/:id", true},
		{"/users/:id", "/teams/:id", false},       // literal differs
		{"/users/:id", "/users/:id/x", false},     // length differs
		{"/users/:id", "/:section/avatar", false}, // literal positions differ
		{"/a/b", "/a/b", true},
	}
	for _, tt := range tests {
		got := MustCompile(tt.a).EqualShape(MustCompile(tt.b))
		assert.Equal(t, tt.want, got, "%s vs %s", tt.a, tt.b)
	}
}

func TestPatternMatchExtractsParams(t *testing.T) {
	p := MustCompile("/users/[id]/posts/[postID]")

	params, ok := p.match([]string{"users", "42", "posts", "hello-world"})
	require.True(t, ok)
	assert.Equal(t, map[string]string{"id": "42", "postID": "hello-world"}, params)

	// Exactly the declared names, regardless of value content.
	params, ok = p.match([]string{"users", "a b%2Fc", "posts", "x"})
	require.True(t, ok)
	assert.Len(t, params, 2)
	assert.Equal(t, "a b%2Fc", params["id"])

	_, ok = p.match([]string{"users", "42"})
	assert.False(t, ok, "segment count must match exactly")

	_, ok = p.match([]string{"teams", "42", "posts", "x"})
	assert.False(t, ok, "literal must match exactly")
}

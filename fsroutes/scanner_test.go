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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, src := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(src), 0o644))
	}
	return root
}

func TestScanFindsMethodHandlers(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.go": "package routes\n\nfunc Get()    {}\nfunc helper() {}\n",
		"users/route.go": "package users\n\n" +
			"func GET()  {}\n" +
			"func Post() {}\n" +
			"func Audit() {}\n",
		"users/route_test.go": "package users\n\nfunc Get() {}\n",
		"notes.txt":           "not go",
	})

	files, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "index.go", files[0].File)
	assert.Equal(t, "/", files[0].Path)
	assert.Equal(t, "routes", files[0].Package)
	require.Len(t, files[0].Methods, 1)
	assert.Equal(t, ScannedMethod{Method: "GET", FuncName: "Get"}, files[0].Methods[0])

	assert.Equal(t, "users/route.go", files[1].File)
	assert.Equal(t, "/users", files[1].Path)
	assert.Equal(t, []ScannedMethod{
		{Method: "GET", FuncName: "GET"},
		{Method: "POST", FuncName: "Post"},
	}, files[1].Methods)
}

func TestScanSkipsFilesWithoutHandlers(t *testing.T) {
	root := writeTree(t, map[string]string{
		"util.go": "package routes\n\nfunc Shared() {}\n",
	})
	files, err := Scan(root)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanIgnoresMethodsOnReceivers(t *testing.T) {
	root := writeTree(t, map[string]string{
		"svc.go": "package routes\n\ntype s struct{}\n\nfunc (s) Get() {}\n",
	})
	files, err := Scan(root)
	require.NoError(t, err)
	assert.Empty(t, files, "methods with receivers are not route handlers")
}

func TestScanFirstSpellingWinsPerMethod(t *testing.T) {
	root := writeTree(t, map[string]string{
		"dup.go": "package routes\n\nfunc Get() {}\nfunc GET() {}\n",
	})
	files, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, []ScannedMethod{{Method: "GET", FuncName: "Get"}}, files[0].Methods)
}

func TestScanReportsSyntaxErrors(t *testing.T) {
	root := writeTree(t, map[string]string{
		"broken.go": "package routes\n\nfunc Get( {}\n",
	})
	_, err := Scan(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.go")
}

func TestGenerateManifest(t *testing.T) {
	files := []ScannedFile{
		{
			File: "index.go", Path: "/", Package: "routes",
			Methods: []ScannedMethod{{Method: "GET", FuncName: "Get"}},
		},
		{
			File: "users/route.go", Path: "/users", Package: "users",
			Methods: []ScannedMethod{
				{Method: "GET", FuncName: "GET"},
				{Method: "POST", FuncName: "Post"},
			},
		},
		{
			File: "users/export.go", Path: "/users/export", Package: "users",
			Methods: []ScannedMethod{{Method: "GET", FuncName: "Get"}},
		},
	}

	src, err := Generate(files, GenerateOptions{
		PackageName: "routes",
		ModulePath:  "example.com/app/routes",
	})
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, "// Code generated by nino routes generate. DO NOT EDIT.")
	assert.Contains(t, out, "package routes")
	assert.Contains(t, out, `users "example.com/app/routes/users"`)
	assert.Contains(t, out, `l.Register("index.go", &fsroutes.Module{GET: Get})`)
	assert.Contains(t, out, `l.Register("users/route.go", &fsroutes.Module{GET: users.GET, POST: users.Post})`)
	assert.Contains(t, out, `l.Register("users/export.go", &fsroutes.Module{GET: users.Get})`)

	// One import for the shared directory, not one per file.
	assert.Equal(t, 1, strings.Count(out, `"example.com/app/routes/users"`))
}

func TestGenerateAliasCollision(t *testing.T) {
	files := []ScannedFile{
		{
			File: "v1/users/route.go", Path: "/v1/users", Package: "users",
			Methods: []ScannedMethod{{Method: "GET", FuncName: "Get"}},
		},
		{
			File: "v2/users/route.go", Path: "/v2/users", Package: "users",
			Methods: []ScannedMethod{{Method: "GET", FuncName: "Get"}},
		},
	}

	src, err := Generate(files, GenerateOptions{
		PackageName: "routes",
		ModulePath:  "example.com/app/routes",
	})
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, `users "example.com/app/routes/v1/users"`)
	assert.Contains(t, out, `users2 "example.com/app/routes/v2/users"`)
	assert.Contains(t, out, "users2.Get")
}

func TestGenerateRequiresOptions(t *testing.T) {
	_, err := Generate(nil, GenerateOptions{})
	require.Error(t, err)

	_, err = Generate([]ScannedFile{
		{File: "users/route.go", Package: "users",
			Methods: []ScannedMethod{{Method: "GET", FuncName: "Get"}}},
	}, GenerateOptions{PackageName: "routes"})
	require.Error(t, err, "subdirectory files need a module path to import")
}

func TestScanThenGenerate(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.go":       "package routes\n\nfunc Get() {}\n",
		"health/code.go": "package health\n\nfunc Get() {}\n",
	})

	files, err := Scan(root)
	require.NoError(t, err)

	src, err := Generate(files, GenerateOptions{
		PackageName: "routes",
		ModulePath:  "example.com/app/routes",
	})
	require.NoError(t, err)
	assert.Contains(t, string(src), `l.Register("health/code.go", &fsroutes.Module{GET: health.Get})`)
}

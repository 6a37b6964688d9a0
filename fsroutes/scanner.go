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
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strings"
)

// ScannedMethod is one exported handler function found in a route file.
type ScannedMethod struct {
	Method   string // HTTP method, uppercase
	FuncName string // exported function name as written
}

// ScannedFile is the scan result for one route file that exports at
// least one method handler.
type ScannedFile struct {
	File    string // slash-separated path relative to the scan root
	Path    string // derived URL path
	Package string // Go package name of the file
	Methods []ScannedMethod
}

var methodNames = func() map[string]string {
	m := make(map[string]string, len(methodOrder))
	for _, method := range methodOrder {
		m[method] = method
	}
	return m
}()

// Scan parses every route file under root and reports the exported
// functions whose names match an HTTP method, case-insensitively: GET,
// Get and get all bind GET. Files are returned in walk order, methods in
// source order. Only the file syntax is inspected; whether a matched
// function actually has the handler signature is left to the compiler of
// the generated code.
func Scan(root string) ([]ScannedFile, error) {
	var files []ScannedFile

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isRouteFile(filepath.ToSlash(p)) {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		scanned, err := scanFile(p, rel)
		if err != nil {
			return fmt.Errorf("scan %s: %w", rel, err)
		}
		if len(scanned.Methods) > 0 {
			files = append(files, scanned)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func scanFile(p, rel string) (ScannedFile, error) {
	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, p, nil, parser.SkipObjectResolution)
	if err != nil {
		return ScannedFile{}, err
	}

	scanned := ScannedFile{
		File:    rel,
		Path:    RoutePath(rel),
		Package: parsed.Name.Name,
	}
	bound := make(map[string]bool, len(methodOrder))
	for _, decl := range parsed.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || !fn.Name.IsExported() {
			continue
		}
		method, ok := methodNames[strings.ToUpper(fn.Name.Name)]
		if !ok || bound[method] {
			continue
		}
		bound[method] = true
		scanned.Methods = append(scanned.Methods, ScannedMethod{
			Method:   method,
			FuncName: fn.Name.Name,
		})
	}
	return scanned, nil
}

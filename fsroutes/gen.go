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
	"go/format"
	"path"
	"strconv"
	"strings"
)

// GenerateOptions configures manifest generation.
type GenerateOptions struct {
	// PackageName is the package clause of the generated file. It should
	// be the package at the root of the route tree, so that root-level
	// route files are referenced without an import.
	PackageName string

	// ModulePath is the import path of the route tree root, used to
	// build imports for route files in subdirectories.
	ModulePath string
}

// Generate renders the manifest for a scan result: a single Go source
// file exporting RegisterRoutes, which populates a Loader with one
// Register call per route file. The output is gofmt-formatted; a format
// failure means the scan produced an identifier the template cannot
// express and is returned as an error rather than written out.
func Generate(files []ScannedFile, opts GenerateOptions) ([]byte, error) {
	if opts.PackageName == "" {
		return nil, fmt.Errorf("generate: package name is required")
	}

	aliases, err := importAliases(files, opts)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("// Code generated by nino routes generate. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", opts.PackageName)

	b.WriteString("import (\n")
	b.WriteString("\t\"github.com/nino-ts/nino/fsroutes\"\n")
	if len(aliases) > 0 {
		b.WriteString("\n")
		emitted := make(map[string]bool, len(aliases))
		for _, f := range files {
			dir := path.Dir(f.File)
			alias, ok := aliases[dir]
			if !ok || emitted[dir] {
				continue
			}
			emitted[dir] = true
			fmt.Fprintf(&b, "\t%s %q\n", alias, opts.ModulePath+"/"+dir)
		}
	}
	b.WriteString(")\n\n")

	b.WriteString("// RegisterRoutes populates l with every route module discovered in\n")
	b.WriteString("// the source tree at generation time.\n")
	b.WriteString("func RegisterRoutes(l *fsroutes.Loader) {\n")
	for _, f := range files {
		fmt.Fprintf(&b, "\tl.Register(%q, &fsroutes.Module{", f.File)
		qualifier := ""
		if alias, ok := aliases[path.Dir(f.File)]; ok {
			qualifier = alias + "."
		}
		for i, m := range f.Methods {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s%s", m.Method, qualifier, m.FuncName)
		}
		b.WriteString("})\n")
	}
	b.WriteString("}\n")

	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("generate: format output: %w", err)
	}
	return src, nil
}

// importAliases assigns one unique import alias per route subdirectory.
// Root-level files live in the generated file's own package and need no
// import.
func importAliases(files []ScannedFile, opts GenerateOptions) (map[string]string, error) {
	aliases := make(map[string]string)
	taken := map[string]bool{"fsroutes": true, "l": true}

	for _, f := range files {
		dir := path.Dir(f.File)
		if dir == "." {
			continue
		}
		if _, ok := aliases[dir]; ok {
			continue
		}
		if opts.ModulePath == "" {
			return nil, fmt.Errorf("generate: module path is required to import %s", dir)
		}

		alias := f.Package
		for i := 2; taken[alias]; i++ {
			alias = f.Package + strconv.Itoa(i)
		}
		taken[alias] = true
		aliases[dir] = alias
	}
	return aliases, nil
}

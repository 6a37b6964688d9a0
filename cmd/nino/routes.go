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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nino-ts/nino/fsroutes"
)

func routesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Work with filesystem routes",
	}
	cmd.AddCommand(routesGenerateCmd(), routesListCmd())
	return cmd
}

func routesGenerateCmd() *cobra.Command {
	var (
		dir        string
		output     string
		pkg        string
		modulePath string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the route manifest from a route tree",
		Long: `Scan a directory of route files and generate the manifest file.

The scanner finds exported functions named after HTTP methods (GET, Get,
Post, ...) in each route file and emits a RegisterRoutes function wiring
them into a loader. The output is deterministic; rerunning it without
route changes produces identical bytes.

Examples:
  nino routes generate                       # scan ./routes
  nino routes generate --dir app/routes -o app/routes/routes_gen.go`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutesGenerate(dir, output, pkg, modulePath)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "routes", "Route tree directory")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: <dir>/routes_gen.go)")
	cmd.Flags().StringVarP(&pkg, "package", "p", "", "Package name of the generated file (default: <dir> base name)")
	cmd.Flags().StringVarP(&modulePath, "module", "m", "", "Import path of the route tree root (default: derived from go.mod)")

	return cmd
}

func runRoutesGenerate(dir, output, pkg, modulePath string) error {
	if output == "" {
		output = filepath.Join(dir, "routes_gen.go")
	}
	if pkg == "" {
		pkg = sanitizePackageName(filepath.Base(dir))
	}
	if modulePath == "" {
		derived, err := moduleImportPath(dir)
		if err != nil {
			return fmt.Errorf("derive module path: %w (pass --module)", err)
		}
		modulePath = derived
	}

	files, err := fsroutes.Scan(dir)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d route files under %s\n", len(files), dir)

	src, err := fsroutes.Generate(files, fsroutes.GenerateOptions{
		PackageName: pkg,
		ModulePath:  modulePath,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, src, 0o644); err != nil {
		return err
	}
	fmt.Printf("Generated %s\n", output)
	return nil
}

func routesListCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the routes a tree would contribute",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := fsroutes.Scan(dir)
			if err != nil {
				return err
			}
			for _, f := range files {
				for _, m := range f.Methods {
					fmt.Printf("%-7s %-30s %s\n", m.Method, f.Path, f.File)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "routes", "Route tree directory")
	return cmd
}

// moduleImportPath resolves the import path of dir by walking up to the
// nearest go.mod and joining its module path with the relative directory.
func moduleImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	current := abs
	for {
		data, err := os.ReadFile(filepath.Join(current, "go.mod"))
		if err == nil {
			module := parseModulePath(string(data))
			if module == "" {
				return "", fmt.Errorf("no module declaration in %s", filepath.Join(current, "go.mod"))
			}
			rel, err := filepath.Rel(current, abs)
			if err != nil {
				return "", err
			}
			if rel == "." {
				return module, nil
			}
			return module + "/" + filepath.ToSlash(rel), nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no go.mod above %s", abs)
		}
		current = parent
	}
}

func parseModulePath(gomod string) string {
	for _, line := range strings.Split(gomod, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "module ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "module "))
		}
	}
	return ""
}

func sanitizePackageName(name string) string {
	name = strings.ReplaceAll(name, "-", "_")
	if name == "" || name == "." {
		return "routes"
	}
	return name
}

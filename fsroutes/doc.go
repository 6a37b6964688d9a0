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

// Package fsroutes discovers routes from a directory tree.
//
// The URL space mirrors the filesystem: directory names become path
// segments, bracketed names ("[id]") become dynamic captures, and a file
// named route.go or index.go collapses onto its directory's path. Any
// other .go file contributes its own base name as a final segment, so
// users.go and users/route.go both mean /users.
//
//	routes/
//	  index.go            → /
//	  users/
//	    route.go          → /users
//	    [id]/route.go     → /users/:id
//
// Go has no runtime module import, so discovery is split in two: a
// deterministic walk of the tree derives paths and ordering, and a
// manifest supplies the handlers. The manifest is populated by explicit
// Register calls — written by hand or emitted by the `nino routes
// generate` scanner, which finds exported functions named after HTTP
// methods in each route file:
//
//	l := fsroutes.NewDir("./routes")
//	l.Register("users/[id]/route.go", &fsroutes.Module{GET: getUser})
//	fsroutes.Attach(r, l)
//
// A route file without a registered module, like a directory that does
// not exist, is a warning and contributes zero routes; the loader never
// aborts startup. Filesystem routes carry no middleware of their own:
// middleware is attached declaratively on the router, or by wrapping the
// handler before registration.
package fsroutes

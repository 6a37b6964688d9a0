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
	"net/http"

	"github.com/nino-ts/nino/router"
)

// methodOrder fixes the order in which a module's handlers are registered,
// so two Load calls over the same tree always produce the same route list.
var methodOrder = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodHead,
}

// Module is the handler set for one route file. Each field maps to the
// HTTP method of the same name; a nil field means the method is not
// served at that path.
type Module struct {
	GET     router.Handler
	POST    router.Handler
	PUT     router.Handler
	PATCH   router.Handler
	DELETE  router.Handler
	OPTIONS router.Handler
	HEAD    router.Handler
}

// byMethod returns the handler for method, or nil.
func (m *Module) byMethod(method string) router.Handler {
	switch method {
	case http.MethodGet:
		return m.GET
	case http.MethodPost:
		return m.POST
	case http.MethodPut:
		return m.PUT
	case http.MethodPatch:
		return m.PATCH
	case http.MethodDelete:
		return m.DELETE
	case http.MethodOptions:
		return m.OPTIONS
	case http.MethodHead:
		return m.HEAD
	}
	return nil
}

// empty reports whether the module serves no methods at all.
func (m *Module) empty() bool {
	for _, method := range methodOrder {
		if m.byMethod(method) != nil {
			return false
		}
	}
	return true
}

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

import "errors"

var (
	// ErrDuplicateParam indicates that a route pattern declares the same
	// parameter name more than once, which would make captures ambiguous.
	// This is a compile-time error: registration fails fast at startup.
	ErrDuplicateParam = errors.New("duplicate parameter name in route pattern")

	// ErrEmptyParam indicates a dynamic segment with no parameter name,
	// such as "[]" or a bare ":".
	ErrEmptyParam = errors.New("empty parameter name in route pattern")

	// ErrEmptyMethod indicates that a route was registered without an HTTP method.
	ErrEmptyMethod = errors.New("route method cannot be empty")

	// ErrNilHandler indicates that a route was registered with a nil handler.
	ErrNilHandler = errors.New("route handler cannot be nil")

	// ErrRouterFrozen indicates a registration attempt after the router
	// started serving requests. Configuration and serving are mutually
	// exclusive phases.
	ErrRouterFrozen = errors.New("cannot register routes after the router has started serving")

	// ErrRequestTimeoutInvalid indicates that the request timeout must not be negative.
	ErrRequestTimeoutInvalid = errors.New("request timeout must not be negative")

	// ErrTimeoutStatusInvalid indicates an out-of-range timeout status code.
	ErrTimeoutStatusInvalid = errors.New("timeout status must be a valid HTTP status code")

	// ErrServerTimeoutInvalid indicates that a server timeout value must be positive.
	ErrServerTimeoutInvalid = errors.New("server timeout must be positive")
)

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

// DiagnosticEvent represents a router diagnostic: an informational event
// that may indicate a configuration issue, such as one route shadowing
// another. The router functions correctly whether or not diagnostics are
// collected; they exist to make startup anomalies observable and testable.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagRouteRegistered is emitted for every successful route registration.
	DiagRouteRegistered DiagnosticKind = "route_registered"

	// DiagRouteShadowed is emitted when a registration replaces an existing
	// route of equal shape for the same method. The last registration wins;
	// the event makes the conflict visible without failing startup.
	DiagRouteShadowed DiagnosticKind = "route_shadowed"

	// DiagH2CEnabled is emitted when the server starts with cleartext HTTP/2.
	DiagH2CEnabled DiagnosticKind = "h2c_enabled"
)

// DiagnosticHandler receives diagnostic events from the router.
// Implementations may log, emit metrics, or ignore them. If no handler is
// configured, events are reported through the router's logger at warn or
// debug level depending on kind.
//
// Example:
//
//	handler := router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := router.MustNew(router.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}

// emit dispatches a diagnostic event to the configured handler, falling back
// to the logger so conflicts remain observable in a default setup.
func (r *Router) emit(kind DiagnosticKind, message string, fields map[string]any) {
	if r.diagnostics != nil {
		r.diagnostics.OnDiagnostic(DiagnosticEvent{Kind: kind, Message: message, Fields: fields})
		return
	}

	args := make([]any, 0, 2+2*len(fields))
	args = append(args, "kind", string(kind))
	for k, v := range fields {
		args = append(args, k, v)
	}
	if kind == DiagRouteShadowed {
		r.logger.Warn(message, args...)
		return
	}
	r.logger.Debug(message, args...)
}

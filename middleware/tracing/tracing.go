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

// Package tracing opens an OpenTelemetry span around the rest of the
// chain. Which tracer provider is installed — an SDK with exporters, or
// the default no-op — is the application's choice; the middleware only
// uses the global API.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/nino-ts/nino/router"
)

const tracerName = "github.com/nino-ts/nino/middleware/tracing"

// Option defines functional options for tracing middleware configuration.
type Option func(*config)

type config struct {
	tracerProvider trace.TracerProvider
	propagator     propagation.TextMapPropagator
	serviceName    string
}

func defaultConfig() *config {
	return &config{
		tracerProvider: otel.GetTracerProvider(),
		propagator:     otel.GetTextMapPropagator(),
		serviceName:    "nino",
	}
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *config) {
		if tp != nil {
			cfg.tracerProvider = tp
		}
	}
}

// WithPropagator overrides the global context propagator.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(cfg *config) {
		if p != nil {
			cfg.propagator = p
		}
	}
}

// WithServiceName sets the service.name attribute on request spans.
func WithServiceName(name string) Option {
	return func(cfg *config) { cfg.serviceName = name }
}

// New returns a middleware that wraps every request in a server span
// named after the matched route. The parent context is extracted from the
// incoming headers, so distributed traces continue across services.
//
//	r.Use(tracing.New(
//	    tracing.WithServiceName("orders-api"),
//	))
func New(opts ...Option) router.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	tracer := cfg.tracerProvider.Tracer(tracerName)

	return func(c *router.Context, next router.Next) (*router.Response, error) {
		ctx := cfg.propagator.Extract(c.Context(), propagation.HeaderCarrier(c.Request.Header))

		spanName := c.Method + " " + c.Route
		ctx, span := tracer.Start(ctx, spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("service.name", cfg.serviceName),
				attribute.String("http.request.method", c.Method),
				attribute.String("http.route", c.Route),
				attribute.String("url.path", c.Path),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)

		res, err := next()
		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case res != nil:
			span.SetAttributes(attribute.Int("http.response.status_code", res.Status))
			if res.Status >= 500 {
				span.SetStatus(codes.Error, "")
			}
		}
		return res, err
	}
}

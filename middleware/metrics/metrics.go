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

// Package metrics instruments requests with Prometheus counters and
// latency histograms, labeled by method, matched route pattern, and
// status. The route pattern, not the raw path, keeps label cardinality
// bounded.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nino-ts/nino/router"
)

// Option defines functional options for metrics middleware configuration.
type Option func(*config)

type config struct {
	namespace string
	registry  *prometheus.Registry
	buckets   []float64
}

func defaultConfig() *config {
	return &config{
		namespace: "nino",
		buckets:   prometheus.DefBuckets,
	}
}

// WithNamespace sets the metric name prefix.
func WithNamespace(ns string) Option {
	return func(cfg *config) { cfg.namespace = ns }
}

// WithRegistry uses a dedicated registry instead of the default global
// one. Required when multiple routers are instrumented in one process.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(cfg *config) { cfg.registry = reg }
}

// WithBuckets sets the latency histogram buckets, in seconds.
func WithBuckets(buckets []float64) Option {
	return func(cfg *config) {
		if len(buckets) > 0 {
			cfg.buckets = buckets
		}
	}
}

// Collector is the metrics middleware together with its registry, so the
// scrape endpoint can be mounted on the same router.
type Collector struct {
	middleware router.Middleware
	registry   *prometheus.Registry
	gatherer   prometheus.Gatherer
}

// New creates the collector and registers its metrics.
//
//	collector := metrics.New()
//	r.Use(collector.Middleware())
//	r.GET("/metrics", collector.Handler())
func New(opts ...Option) *Collector {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.namespace,
		Name:      "http_requests_total",
		Help:      "Requests handled, by method, route pattern, and status.",
	}, []string{"method", "route", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Request latency through the full chain, in seconds.",
		Buckets:   cfg.buckets,
	}, []string{"method", "route"})

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if cfg.registry != nil {
		registerer = cfg.registry
		gatherer = cfg.registry
	}
	registerer.MustRegister(requests, duration)

	mw := func(c *router.Context, next router.Next) (*router.Response, error) {
		start := time.Now()
		res, err := next()

		route := c.Route
		if route == "" {
			route = "unmatched"
		}
		status := statusOf(res, err)

		requests.WithLabelValues(c.Method, route, strconv.Itoa(status)).Inc()
		duration.WithLabelValues(c.Method, route).Observe(time.Since(start).Seconds())
		return res, err
	}

	return &Collector{middleware: mw, registry: cfg.registry, gatherer: gatherer}
}

// Middleware returns the instrumentation middleware.
func (col *Collector) Middleware() router.Middleware {
	return col.middleware
}

// Handler returns a scrape handler for the collector's registry, wrapped
// as a router handler.
func (col *Collector) Handler() router.Handler {
	scrape := promhttp.HandlerFor(col.gatherer, promhttp.HandlerOpts{})
	return router.WrapHTTPHandler(scrape)
}

// statusOf maps a chain result to the status the materializer will write.
func statusOf(res *router.Response, err error) int {
	switch {
	case err != nil:
		return 500
	case res == nil:
		return 204
	default:
		return res.Status
	}
}

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

// Package ratelimit provides token-bucket rate limiting middleware backed
// by golang.org/x/time/rate, with one limiter per key (client IP by
// default).
package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/nino-ts/nino/router"
)

// KeyFunc derives the rate limit key for a request: per IP, per user,
// per route.
type KeyFunc func(*router.Context) string

// Option defines functional options for ratelimit middleware configuration.
type Option func(*config)

type config struct {
	requestsPerSecond float64
	burst             int
	keyFunc           KeyFunc
	limiterTTL        time.Duration
	onExceeded        router.Handler
}

func defaultConfig() *config {
	return &config{
		requestsPerSecond: 100,
		burst:             20,
		limiterTTL:        5 * time.Minute,
		keyFunc: func(c *router.Context) string {
			return "ip:" + c.ClientIP()
		},
	}
}

// WithRequestsPerSecond sets the sustained refill rate.
func WithRequestsPerSecond(rps float64) Option {
	return func(cfg *config) { cfg.requestsPerSecond = rps }
}

// WithBurst sets the bucket capacity, the number of requests a key may
// spend at once before the rate applies.
func WithBurst(burst int) Option {
	return func(cfg *config) { cfg.burst = burst }
}

// WithKeyFunc replaces the per-IP key derivation.
func WithKeyFunc(fn KeyFunc) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.keyFunc = fn
		}
	}
}

// WithLimiterTTL sets how long an idle key's limiter is retained before
// its state is dropped.
func WithLimiterTTL(ttl time.Duration) Option {
	return func(cfg *config) { cfg.limiterTTL = ttl }
}

// WithExceededHandler replaces the default 429 response.
func WithExceededHandler(h router.Handler) Option {
	return func(cfg *config) { cfg.onExceeded = h }
}

// entry pairs a limiter with its last use, for TTL eviction.
type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterPool hands out one rate.Limiter per key and evicts idle ones
// lazily on access.
type limiterPool struct {
	mu      sync.Mutex
	entries map[string]*entry
	rps     rate.Limit
	burst   int
	ttl     time.Duration

	lastSweep time.Time
}

func newLimiterPool(rps float64, burst int, ttl time.Duration) *limiterPool {
	return &limiterPool{
		entries:   make(map[string]*entry),
		rps:       rate.Limit(rps),
		burst:     burst,
		ttl:       ttl,
		lastSweep: time.Now(),
	}
}

// allow reports whether the request for key passes, and if not, how long
// until the next token is available.
func (p *limiterPool) allow(key string, now time.Time) (bool, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if now.Sub(p.lastSweep) > p.ttl {
		for k, e := range p.entries {
			if now.Sub(e.lastSeen) > p.ttl {
				delete(p.entries, k)
			}
		}
		p.lastSweep = now
	}

	e, ok := p.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(p.rps, p.burst)}
		p.entries[key] = e
	}
	e.lastSeen = now

	reservation := e.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// New returns a token-bucket rate limiting middleware. Defaults: 100
// requests per second with a burst of 20, keyed by client IP. A request
// over the limit is answered with 429 and a Retry-After header; the
// handler never runs.
//
//	r.Use(ratelimit.New(
//	    ratelimit.WithRequestsPerSecond(50),
//	    ratelimit.WithBurst(10),
//	))
//
// Keying by authenticated user instead of IP:
//
//	r.Use(ratelimit.New(
//	    ratelimit.WithKeyFunc(func(c *router.Context) string {
//	        return "user:" + basicauth.Username(c)
//	    }),
//	))
func New(opts ...Option) router.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	pool := newLimiterPool(cfg.requestsPerSecond, cfg.burst, cfg.limiterTTL)

	return func(c *router.Context, next router.Next) (*router.Response, error) {
		ok, retryAfter := pool.allow(cfg.keyFunc(c), time.Now())
		if ok {
			return next()
		}

		seconds := int(retryAfter.Round(time.Second) / time.Second)
		if seconds < 1 {
			seconds = 1
		}

		if cfg.onExceeded != nil {
			res, err := cfg.onExceeded(c)
			if res != nil {
				res.SetHeader("Retry-After", strconv.Itoa(seconds))
			}
			return res, err
		}
		return router.JSON(http.StatusTooManyRequests, router.H{
			"error": "Too Many Requests",
			"code":  "RATE_LIMITED",
		}).SetHeader("Retry-After", strconv.Itoa(seconds)), nil
	}
}

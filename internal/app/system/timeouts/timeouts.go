// Package timeouts provides centralized timeout values for handler operations.
//
// Handlers wrap remote API calls and MongoDB work in context.WithTimeout
// using these values, so a slow upstream surfaces as an ordinary error
// (and, for page sections, as fallback data) instead of a hung request.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and the background API probe
//   - Short: single-document reads and writes
//   - API: one page worth of remote admin API calls
//   - Medium: audit list queries, multi-step reads
//   - Long: writes touching several collections
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultAPI    = 8 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

// Config holds timeout configuration values.
// Zero values are ignored (current values are kept).
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	API    time.Duration
	Medium time.Duration
	Long   time.Duration
}

func defaults() Config {
	return Config{
		Ping:   DefaultPing,
		Short:  DefaultShort,
		API:    DefaultAPI,
		Medium: DefaultMedium,
		Long:   DefaultLong,
	}
}

var (
	mu  sync.RWMutex
	cur = defaults()
)

func get(pick func(Config) time.Duration) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return pick(cur)
}

// Ping returns the timeout for health checks and connectivity probes.
func Ping() time.Duration { return get(func(c Config) time.Duration { return c.Ping }) }

// Short returns the timeout for single-document operations.
func Short() time.Duration { return get(func(c Config) time.Duration { return c.Short }) }

// API returns the deadline shared by the remote calls of one page render.
func API() time.Duration { return get(func(c Config) time.Duration { return c.API }) }

// Medium returns the timeout for list queries.
func Medium() time.Duration { return get(func(c Config) time.Duration { return c.Medium }) }

// Long returns the timeout for complex writes.
func Long() time.Duration { return get(func(c Config) time.Duration { return c.Long }) }

// Configure sets custom timeout values. Call during startup.
//
// Example:
//
//	timeouts.Configure(timeouts.Config{API: 15 * time.Second})
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	merge(&cur.Ping, cfg.Ping)
	merge(&cur.Short, cfg.Short)
	merge(&cur.API, cfg.API)
	merge(&cur.Medium, cfg.Medium)
	merge(&cur.Long, cfg.Long)
}

func merge(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}

// Reset restores all timeouts to their default values.
// Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cur = defaults()
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_SHORT, TIMEOUT_API,
// TIMEOUT_MEDIUM and TIMEOUT_LONG (Go duration strings such as "500ms" or
// "2m"). Unset or invalid values are skipped. Returns how many were applied.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()

	vars := []struct {
		env string
		dst *time.Duration
	}{
		{"TIMEOUT_PING", &cur.Ping},
		{"TIMEOUT_SHORT", &cur.Short},
		{"TIMEOUT_API", &cur.API},
		{"TIMEOUT_MEDIUM", &cur.Medium},
		{"TIMEOUT_LONG", &cur.Long},
	}
	configured := 0
	for _, v := range vars {
		raw := os.Getenv(v.env)
		if raw == "" {
			continue
		}
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			*v.dst = d
			configured++
		}
	}
	return configured
}

// Current returns the current timeout configuration.
// Useful for logging at startup.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cur
}

// WithTimeout creates a context with timeout and returns a cancel function that
// logs a warning if the context ended because the deadline passed.
//
// Example:
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.API(), h.Log, "load dashboard")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}

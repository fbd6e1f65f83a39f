// Package retryutil provides bounded retry with back-off for the external
// collaborators CLOCQ calls out to (lexical search, mention detection).
//
// No retry/back-off library appears anywhere in the retrieval pack this
// module was built from; this is a thin, mechanical concern implemented
// directly on context and time, matching the fixed-cap, fixed-window
// back-off spec.md describes.
package retryutil

import (
	"context"
	"math/rand"
	"time"
)

// Config bounds a retry loop.
type Config struct {
	MaxAttempts int           // default 5
	MinBackoff  time.Duration // default 500ms
	MaxBackoff  time.Duration // default 1s
}

// DefaultConfig matches spec.md §5: "5 attempts, 0.5-1s back-off".
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		MinBackoff:  500 * time.Millisecond,
		MaxBackoff:  1 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 5
	}
	if c.MinBackoff <= 0 {
		c.MinBackoff = 500 * time.Millisecond
	}
	if c.MaxBackoff < c.MinBackoff {
		c.MaxBackoff = c.MinBackoff
	}
	return c
}

// Do runs fn with bounded retry and jittered back-off. It stops and returns
// fn's result and true the moment fn succeeds, or the zero value and false
// when attempts are exhausted or ctx is cancelled — callers are expected to
// treat that as "transient external error, continue with reduced signal"
// per spec.md §7 class 3, not to propagate it as a hard failure.
func Do[T any](ctx context.Context, cfg Config, fn func(ctx context.Context) (T, error)) (T, bool) {
	cfg = cfg.withDefaults()
	var zero T

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, false
		}

		result, err := fn(ctx)
		if err == nil {
			return result, true
		}

		if attempt == cfg.MaxAttempts-1 {
			break
		}

		wait := cfg.MinBackoff
		if span := cfg.MaxBackoff - cfg.MinBackoff; span > 0 {
			wait += time.Duration(rand.Int63n(int64(span) + 1))
		}

		select {
		case <-ctx.Done():
			return zero, false
		case <-time.After(wait):
		}
	}

	return zero, false
}

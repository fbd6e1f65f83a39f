package retryutil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoSucceedsOnFirstTry(t *testing.T) {
	calls := 0
	got, ok := Do(context.Background(), Config{MaxAttempts: 3, MinBackoff: time.Millisecond, MaxBackoff: time.Millisecond}, func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})
	if !ok || got != 42 {
		t.Fatalf("got (%v, %v), want (42, true)", got, ok)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	_, ok := Do(context.Background(), Config{MaxAttempts: 3, MinBackoff: time.Millisecond, MaxBackoff: time.Millisecond}, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("boom")
	})
	if ok {
		t.Fatal("expected exhaustion to return ok=false")
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	got, ok := Do(context.Background(), Config{MaxAttempts: 5, MinBackoff: time.Millisecond, MaxBackoff: time.Millisecond}, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	if !ok || got != "ok" {
		t.Fatalf("got (%q, %v), want (ok, true)", got, ok)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDoHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, ok := Do(ctx, DefaultConfig(), func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("boom")
	})
	if ok {
		t.Fatal("expected cancelled context to return ok=false")
	}
	if calls != 0 {
		t.Fatalf("calls = %d, want 0 for a pre-cancelled context", calls)
	}
}

func TestDefaultConfigMatchesSpec(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.MaxAttempts)
	}
	if cfg.MinBackoff != 500*time.Millisecond || cfg.MaxBackoff != time.Second {
		t.Errorf("backoff window = [%v, %v], want [500ms, 1s]", cfg.MinBackoff, cfg.MaxBackoff)
	}
}

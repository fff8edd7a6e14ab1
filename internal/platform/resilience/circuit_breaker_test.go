package resilience

import (
	"errors"
	"testing"
	"time"
)

var errBackend = errors.New("connection refused")

func testBreaker(cfg BreakerConfig, isFailure func(error) bool) (*Breaker, *time.Time) {
	b := NewBreaker(cfg, isFailure)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestBreaker_Transitions(t *testing.T) {
	b, now := testBreaker(BreakerConfig{FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenProbes: 1}, nil)
	fail := func() error { return errBackend }
	ok := func() error { return nil }

	if err := b.Do(fail); !errors.Is(err, errBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if got := b.State(); got != StateClosed {
		t.Fatalf("expected closed after first failure, got %s", got)
	}

	_ = b.Do(fail)
	if got := b.State(); got != StateOpen {
		t.Fatalf("expected open after threshold, got %s", got)
	}

	called := false
	if err := b.Do(func() error { called = true; return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if called {
		t.Fatalf("open breaker must not call through")
	}

	*now = now.Add(6 * time.Second)
	if got := b.State(); got != StateHalfOpen {
		t.Fatalf("expected half-open after timeout, got %s", got)
	}
	if err := b.Do(ok); err != nil {
		t.Fatalf("expected half-open trial call to pass, got %v", err)
	}
	if got := b.State(); got != StateClosed {
		t.Fatalf("expected closed after a successful trial call, got %s", got)
	}
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	b, now := testBreaker(BreakerConfig{FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenProbes: 1}, nil)

	_ = b.Do(func() error { return errBackend })
	*now = now.Add(2 * time.Second)
	_ = b.Do(func() error { return errBackend })

	if got := b.State(); got != StateOpen {
		t.Fatalf("expected open after a failed trial call, got %s", got)
	}
}

func TestBreaker_IgnoresExpectedErrors(t *testing.T) {
	errConflict := errors.New("version conflict")
	b, _ := testBreaker(BreakerConfig{FailureThreshold: 1}, func(err error) bool {
		return err != nil && !errors.Is(err, errConflict)
	})

	for i := 0; i < 3; i++ {
		if err := b.Do(func() error { return errConflict }); !errors.Is(err, errConflict) {
			t.Fatalf("expected conflict to pass through, got %v", err)
		}
	}
	if got := b.State(); got != StateClosed {
		t.Fatalf("expected closed, got %s", got)
	}
}

func TestBreakerConfig_Normalize(t *testing.T) {
	got := BreakerConfig{}.normalize()
	if got != DefaultBreakerConfig() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

// Package resilience guards calls to a storage backend with a circuit breaker.
package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State uint8

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

type BreakerConfig struct {
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenProbes   int
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenProbes:   2,
	}
}

func (c BreakerConfig) normalize() BreakerConfig {
	d := DefaultBreakerConfig()
	if c.FailureThreshold < 1 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = d.OpenTimeout
	}
	if c.HalfOpenProbes < 1 {
		c.HalfOpenProbes = d.HalfOpenProbes
	}
	return c
}

// Breaker opens after FailureThreshold consecutive failures and rejects calls
// until OpenTimeout passes, then lets HalfOpenProbes calls through to decide
// whether to close again. Errors for which isFailure returns false count as
// successes.
type Breaker struct {
	cfg       BreakerConfig
	isFailure func(error) bool
	now       func() time.Time

	mu        sync.Mutex
	state     State
	failures  int
	openedAt  time.Time
	inFlight  int
	successes int
}

func NewBreaker(cfg BreakerConfig, isFailure func(error) bool) *Breaker {
	if isFailure == nil {
		isFailure = func(err error) bool { return err != nil }
	}
	return &Breaker{
		cfg:       cfg.normalize(),
		isFailure: isFailure,
		now:       time.Now,
	}
}

// Do runs fn unless the breaker is open.
func (b *Breaker) Do(fn func() error) error {
	if err := b.allow(); err != nil {
		return err
	}
	err := fn()
	b.record(b.isFailure(err))
	return err
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.state = StateHalfOpen
		b.inFlight, b.successes = 0, 0
	}
	if b.state == StateHalfOpen {
		if b.inFlight >= b.cfg.HalfOpenProbes {
			return ErrCircuitOpen
		}
		b.inFlight++
	}
	return nil
}

func (b *Breaker) record(failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		if !failed {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case StateHalfOpen:
		if b.inFlight > 0 {
			b.inFlight--
		}
		if failed {
			b.trip()
			return
		}
		b.successes++
		if b.successes >= b.cfg.HalfOpenProbes && b.inFlight == 0 {
			b.state = StateClosed
			b.failures, b.successes = 0, 0
			b.openedAt = time.Time{}
		}
	case StateOpen:
		// A call admitted before the trip finished late.
		if failed {
			b.openedAt = b.now()
		}
	}
}

func (b *Breaker) trip() {
	b.state = StateOpen
	b.openedAt = b.now()
	b.inFlight, b.successes = 0, 0
}

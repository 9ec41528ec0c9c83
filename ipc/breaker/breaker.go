package breaker

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// --------------------------------------------------------------------------
// State Definition
// --------------------------------------------------------------------------

// State is the circuit breaker state.
type State int

const (
	// Closed: requests pass through. Consecutive failures trip the circuit.
	Closed State = iota
	// Open: requests are rejected without touching the transport until
	// the open timeout has elapsed.
	Open
	// HalfOpen: probe requests pass through; consecutive successes close
	// the circuit, any failure reopens it.
	HalfOpen
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Config
// --------------------------------------------------------------------------

// Config holds the circuit breaker thresholds.
type Config struct {
	// FailureThreshold trips the circuit after this many consecutive
	// failures in the closed state.
	FailureThreshold int
	// OpenTimeout is how long the circuit stays open before a probe is
	// allowed through.
	OpenTimeout time.Duration
	// HalfOpenSuccesses closes the circuit after this many consecutive
	// successes in the half-open state.
	HalfOpenSuccesses int
}

// DefaultConfig returns the thresholds used against the automation
// service: 5 failures to open, 30s cool-down, 2 successes to close.
func DefaultConfig() Config {
	return Config{
		FailureThreshold:  5,
		OpenTimeout:       30 * time.Second,
		HalfOpenSuccesses: 2,
	}
}

// --------------------------------------------------------------------------
// Breaker
// --------------------------------------------------------------------------

// Breaker is an explicit three-state circuit breaker. It is owned by a
// single client instance; the internal mutex only exists so health
// snapshots taken from other goroutines observe a consistent state.
type Breaker struct {
	conf   Config
	now    func() time.Time
	logger zerolog.Logger

	mu           sync.Mutex
	state        State
	failureCount int
	successCount int
	openedAt     time.Time
}

// New creates a breaker in the closed state using the wall clock.
func New(conf Config, logger zerolog.Logger) *Breaker {
	return NewWithClock(conf, logger, time.Now)
}

// NewWithClock creates a breaker with an injectable clock, used by tests
// to drive the open-timeout transition without sleeping.
func NewWithClock(conf Config, logger zerolog.Logger, now func() time.Time) *Breaker {
	return &Breaker{
		conf:   conf,
		now:    now,
		logger: logger.With().Str("component", "breaker").Logger(),
		state:  Closed,
	}
}

// Allow reports whether a transport attempt may proceed. It must be
// called before every attempt: the open-to-half-open timeout transition
// happens here as a side effect.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed, HalfOpen:
		return true
	case Open:
		if b.now().Sub(b.openedAt) > b.conf.OpenTimeout {
			b.state = HalfOpen
			b.successCount = 0
			b.logger.Info().Msg("circuit half-open, allowing probe request")
			return true
		}
		return false
	default:
		return false
	}
}

// RecordSuccess must be called exactly once per completed attempt that
// received a response.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		b.failureCount = 0
	case HalfOpen:
		b.successCount++
		if b.successCount >= b.conf.HalfOpenSuccesses {
			b.state = Closed
			b.failureCount = 0
			b.successCount = 0
			b.logger.Info().Msg("circuit closed")
		}
	}
}

// RecordFailure must be called exactly once per failed attempt; timeouts
// count as failures.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		b.failureCount++
		if b.failureCount >= b.conf.FailureThreshold {
			b.state = Open
			b.openedAt = b.now()
			b.logger.Warn().
				Int("failures", b.failureCount).
				Dur("open_timeout", b.conf.OpenTimeout).
				Msg("circuit opened")
		}
	case HalfOpen:
		b.state = Open
		b.openedAt = b.now()
		b.logger.Warn().Msg("probe failed, circuit reopened")
	}
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// FailureCount returns the current consecutive failure count.
func (b *Breaker) FailureCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failureCount
}

package breaker

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock for driving timeout transitions
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestBreaker() (*Breaker, *fakeClock) {
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	b := NewWithClock(DefaultConfig(), zerolog.Nop(), clock.now)
	return b, clock
}

func TestStartsClosed(t *testing.T) {
	b, _ := newTestBreaker()

	assert.Equal(t, Closed, b.State())
	assert.True(t, b.Allow())
}

func TestOpensAfterFailureThreshold(t *testing.T) {
	b, _ := newTestBreaker()

	for i := 0; i < 4; i++ {
		b.RecordFailure()
		assert.Equal(t, Closed, b.State(), "still closed after %d failures", i+1)
	}

	b.RecordFailure()
	assert.Equal(t, Open, b.State(), "open after 5 consecutive failures")
}

func TestSuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker()

	for i := 0; i < 4; i++ {
		b.RecordFailure()
	}
	b.RecordSuccess()
	assert.Equal(t, 0, b.FailureCount())

	// A fresh run of failures is needed to trip the circuit
	for i := 0; i < 4; i++ {
		b.RecordFailure()
	}
	assert.Equal(t, Closed, b.State())
}

func TestOpenRejectsUntilTimeout(t *testing.T) {
	b, clock := newTestBreaker()

	for i := 0; i < 5; i++ {
		b.RecordFailure()
	}
	require.Equal(t, Open, b.State())

	// 1ms later: still rejected, no transport attempt allowed
	clock.advance(time.Millisecond)
	assert.False(t, b.Allow())

	// Past the open timeout: probe allowed, state half-open
	clock.advance(30 * time.Second)
	assert.True(t, b.Allow())
	assert.Equal(t, HalfOpen, b.State())
}

func TestHalfOpenClosesAfterSuccesses(t *testing.T) {
	b, clock := newTestBreaker()

	for i := 0; i < 5; i++ {
		b.RecordFailure()
	}
	clock.advance(31 * time.Second)
	require.True(t, b.Allow())

	b.RecordSuccess()
	assert.Equal(t, HalfOpen, b.State(), "one success is not enough")

	b.RecordSuccess()
	assert.Equal(t, Closed, b.State(), "two successes close the circuit")
	assert.Equal(t, 0, b.FailureCount())
}

func TestHalfOpenFailureReopens(t *testing.T) {
	b, clock := newTestBreaker()

	for i := 0; i < 5; i++ {
		b.RecordFailure()
	}
	clock.advance(31 * time.Second)
	require.True(t, b.Allow())
	require.Equal(t, HalfOpen, b.State())

	b.RecordFailure()
	assert.Equal(t, Open, b.State(), "any half-open failure reopens")

	// The reopen refreshed the open timestamp, so the cool-down restarts
	clock.advance(29 * time.Second)
	assert.False(t, b.Allow())
	clock.advance(2 * time.Second)
	assert.True(t, b.Allow())
}

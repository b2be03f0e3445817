package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestBreaker(c *clock, transitions *[]string) CircuitBreaker {
	return NewCircuitBreaker(&Config{
		FailureThreshold: 2,
		RecoveryTimeout:  time.Minute,
		SuccessThreshold: 2,
		Now:              c.Now,
		OnStateChange: func(from, to CircuitState) {
			*transitions = append(*transitions, from.String()+"->"+to.String())
		},
	})
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	c := &clock{now: time.Unix(0, 0)}
	var transitions []string
	cb := newTestBreaker(c, &transitions)

	assert.ErrorIs(t, cb.Call(func() error { return errBoom }), errBoom)
	assert.Equal(t, Closed, cb.State())
	assert.ErrorIs(t, cb.Call(func() error { return errBoom }), errBoom)
	assert.Equal(t, Open, cb.State())

	called := false
	err := cb.Call(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)

	assert.Equal(t, []string{"closed->open"}, transitions)
}

func TestCircuitBreaker_RecoversThroughHalfOpen(t *testing.T) {
	c := &clock{now: time.Unix(0, 0)}
	var transitions []string
	cb := newTestBreaker(c, &transitions)

	_ = cb.Call(func() error { return errBoom })
	_ = cb.Call(func() error { return errBoom })
	require.Equal(t, Open, cb.State())

	c.now = c.now.Add(time.Minute)
	require.NoError(t, cb.Call(func() error { return nil }))
	assert.Equal(t, HalfOpen, cb.State())
	require.NoError(t, cb.Call(func() error { return nil }))
	assert.Equal(t, Closed, cb.State())

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	c := &clock{now: time.Unix(0, 0)}
	var transitions []string
	cb := newTestBreaker(c, &transitions)

	_ = cb.Call(func() error { return errBoom })
	_ = cb.Call(func() error { return errBoom })
	c.now = c.now.Add(2 * time.Minute)

	_ = cb.Call(func() error { return errBoom })
	assert.Equal(t, Open, cb.State())
	assert.Equal(t, c.now.Add(time.Minute), cb.Metrics().NextAttempt)
}

func TestCircuitBreaker_IsFailureFiltersErrors(t *testing.T) {
	errIgnored := errors.New("client error")
	cb := NewCircuitBreaker(&Config{
		FailureThreshold: 1,
		IsFailure:        func(err error) bool { return !errors.Is(err, errIgnored) },
	})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Call(func() error { return errIgnored }), errIgnored)
	}
	assert.Equal(t, Closed, cb.State())

	_ = cb.Call(func() error { return errBoom })
	assert.Equal(t, Open, cb.State())
}

func TestCircuitBreaker_MetricsWhileOpen(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cb := NewCircuitBreaker(&Config{
		FailureThreshold: 1,
		RecoveryTimeout:  time.Minute,
		Now:              func() time.Time { return now },
	})

	_ = cb.Call(func() error { return errBoom })

	m := cb.Metrics()
	assert.Equal(t, Open, m.State)
	assert.Equal(t, 1, m.FailureCount)
	assert.Equal(t, now, m.LastFailure)
	assert.Equal(t, now.Add(time.Minute), m.NextAttempt)
}

package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabimaru/gabimaru/internal/clock"
	"github.com/gabimaru/gabimaru/internal/frame"
)

func newSession() (*Session, *clock.Fake) {
	clk := clock.NewFake(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	return New(clk), clk
}

func TestNewIsIdle(t *testing.T) {
	s, _ := newSession()

	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, 0.0, s.Elapsed())
	assert.Equal(t, "0.00", s.Display())
	assert.False(t, s.Pending())
}

func TestToggleStartsAndTicks(t *testing.T) {
	s, clk := newSession()

	token := s.Toggle()
	require.NotEqual(t, frame.None, token)
	assert.Equal(t, StateRunning, s.State())

	clk.Advance(1234 * time.Millisecond)
	next := s.Tick(token)

	require.NotEqual(t, frame.None, next)
	assert.InDelta(t, 1.234, s.Elapsed(), 1e-9)
	assert.Equal(t, "1.23", s.Display())
}

func TestElapsedNonDecreasingWhileRunning(t *testing.T) {
	s, clk := newSession()
	token := s.Toggle()

	last := 0.0
	for i := 0; i < 50; i++ {
		clk.Advance(16 * time.Millisecond)
		token = s.Tick(token)
		require.GreaterOrEqual(t, s.Elapsed(), last)
		last = s.Elapsed()
	}
	assert.InDelta(t, 0.8, last, 1e-9)
}

func TestPauseFreezesElapsed(t *testing.T) {
	s, clk := newSession()
	token := s.Toggle()

	clk.Advance(2 * time.Second)
	s.Tick(token)
	clk.Advance(500 * time.Millisecond)

	assert.Equal(t, frame.None, s.Toggle())
	assert.Equal(t, StatePaused, s.State())
	assert.InDelta(t, 2.5, s.Elapsed(), 1e-9)
	assert.False(t, s.Pending())

	clk.Advance(10 * time.Second)
	assert.InDelta(t, 2.5, s.Elapsed(), 1e-9)
}

func TestPauseResumePreservesElapsed(t *testing.T) {
	s, clk := newSession()
	token := s.Toggle()

	clk.Advance(3 * time.Second)
	s.Tick(token)
	s.Toggle()

	clk.Advance(time.Minute)

	token = s.Toggle()
	require.Equal(t, StateRunning, s.State())
	clk.Advance(4 * time.Second)
	s.Tick(token)

	assert.InDelta(t, 7.0, s.Elapsed(), 1e-6)
}

func TestStaleTickIgnoredAfterPause(t *testing.T) {
	s, clk := newSession()
	token := s.Toggle()

	clk.Advance(time.Second)
	s.Toggle()

	clk.Advance(time.Second)
	assert.Equal(t, frame.None, s.Tick(token))
	assert.InDelta(t, 1.0, s.Elapsed(), 1e-9)
	assert.Equal(t, StatePaused, s.State())
}

func TestResetFromAnyState(t *testing.T) {
	s, clk := newSession()
	token := s.Toggle()
	clk.Advance(5 * time.Second)
	s.Tick(token)

	s.Reset()
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, 0.0, s.Elapsed())
	assert.False(t, s.Pending())
	assert.Equal(t, frame.None, s.Tick(token))

	s.Toggle()
	clk.Advance(time.Second)
	s.Toggle()
	s.Reset()
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, 0.0, s.Elapsed())
}

func TestCloseCancelsPendingTick(t *testing.T) {
	s, _ := newSession()
	token := s.Toggle()

	s.Close()

	assert.False(t, s.Pending())
	assert.Equal(t, frame.None, s.Tick(token))
}

func TestAngle(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{0, 0},
		{15 * time.Second, 90},
		{30 * time.Second, 180},
		{75 * time.Second, 90},
	}

	for _, tt := range tests {
		s, clk := newSession()
		token := s.Toggle()
		clk.Advance(tt.elapsed)
		s.Tick(token)
		assert.InDelta(t, tt.want, s.Angle(), 1e-9, "elapsed %v", tt.elapsed)
	}
}

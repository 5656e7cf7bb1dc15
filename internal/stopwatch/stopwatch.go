// Package stopwatch implements the count-up stopwatch session.
package stopwatch

import (
	"fmt"
	"math"
	"time"

	"github.com/gabimaru/gabimaru/internal/clock"
	"github.com/gabimaru/gabimaru/internal/frame"
	"github.com/gabimaru/gabimaru/internal/timemath"
)

// State is the stopwatch mode.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// DegreesPerSecond makes the marker complete one lap per minute.
const DegreesPerSecond = 360.0 / 60.0

// Session is a single stopwatch. It is not safe for concurrent use; the
// host drives it from one goroutine.
type Session struct {
	clock   clock.Clock
	state   State
	start   time.Time
	elapsed float64
	frames  frame.Loop
}

// New creates an idle stopwatch reading time from clk.
func New(clk clock.Clock) *Session {
	if clk == nil {
		clk = clock.System
	}
	return &Session{clock: clk, state: StateIdle}
}

// State returns the current mode.
func (s *Session) State() State {
	return s.state
}

// Elapsed returns the elapsed seconds as of the last tick or pause.
func (s *Session) Elapsed() float64 {
	return s.elapsed
}

// Toggle pauses a running stopwatch, or starts/resumes it. It returns the
// token of the first refresh tick, or frame.None when nothing should be
// polled.
func (s *Session) Toggle() frame.Token {
	now := s.clock.Now()

	if s.state == StateRunning {
		s.frames.Cancel()
		s.elapsed = s.measure(now)
		s.start = time.Time{}
		s.state = StatePaused
		return frame.None
	}

	if s.state == StateIdle {
		s.start = now
	} else {
		// Re-anchor so the elapsed reading carries across the pause.
		s.start = now.Add(-timemath.SecondsToDuration(s.elapsed))
	}
	s.state = StateRunning
	return s.frames.Schedule()
}

// Tick recomputes the elapsed time for a pending refresh. Stale tokens are
// ignored and return frame.None.
func (s *Session) Tick(token frame.Token) frame.Token {
	if !s.frames.Claim(token) || s.state != StateRunning || s.start.IsZero() {
		return frame.None
	}
	if elapsed := s.measure(s.clock.Now()); elapsed > s.elapsed {
		s.elapsed = elapsed
	}
	return s.frames.Schedule()
}

// Reset returns the stopwatch to idle at zero.
func (s *Session) Reset() {
	s.frames.Cancel()
	s.start = time.Time{}
	s.elapsed = 0
	s.state = StateIdle
}

// Close cancels any pending refresh. The session stays readable.
func (s *Session) Close() {
	s.frames.Cancel()
}

// Pending reports whether a refresh tick is outstanding.
func (s *Session) Pending() bool {
	return s.frames.Pending()
}

// Angle is the marker rotation in degrees, one lap per minute.
func (s *Session) Angle() float64 {
	return math.Mod(s.elapsed, 60) * DegreesPerSecond
}

// Display renders the elapsed seconds with two decimals.
func (s *Session) Display() string {
	return fmt.Sprintf("%.2f", s.elapsed)
}

func (s *Session) measure(now time.Time) float64 {
	elapsed := timemath.Elapsed(s.start, now)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Package countdown implements the count-down timer: hh:mm:ss digit entry,
// pause/resume time accounting, progress, and the completion alarm.
package countdown

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gabimaru/gabimaru/internal/clock"
	"github.com/gabimaru/gabimaru/internal/frame"
	"github.com/gabimaru/gabimaru/internal/sound"
)

// State is the timer mode.
type State string

const (
	StateIdle     State = "idle"
	StateEditing  State = "editing"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateFinished State = "finished"
)

// FullProgress is the progress of a completed run.
const FullProgress = 100.0

// KeyBackspace is the key name that removes the newest digit.
const KeyBackspace = "backspace"

// ErrRunActive is returned when the entry buffer is changed during a run.
var ErrRunActive = errors.New("countdown run active")

// Player plays the completion alarm. *sound.Manager satisfies it.
type Player interface {
	Play(effect sound.Effect, loop bool)
	Stop(effect sound.Effect)
}

// Options configures a Session.
type Options struct {
	Clock  clock.Clock
	Player Player
	Logger *zap.Logger
	// AlarmOnce plays the alarm a single time instead of looping it until
	// reset.
	AlarmOnce bool
}

// Session is a single countdown timer. It is not safe for concurrent use;
// the host drives it from one goroutine.
type Session struct {
	clock     clock.Clock
	player    Player
	logger    *zap.Logger
	alarmLoop bool

	state       State
	digits      []int
	clearOnEdit bool

	// Run accounting. hasBase is false until a run starts; base is the
	// remaining time as of the last start or pause.
	hasBase   bool
	base      time.Duration
	start     time.Time
	initial   time.Duration
	remaining time.Duration
	progress  float64
	runID     string

	frames frame.Loop
}

// New creates an idle timer.
func New(opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = clock.System
	}
	if opts.Player == nil {
		opts.Player = sound.Silent{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Session{
		clock:     opts.Clock,
		player:    opts.Player,
		logger:    opts.Logger.With(zap.String("component", "countdown")),
		alarmLoop: !opts.AlarmOnce,
		state:     StateIdle,
	}
}

// State returns the current mode.
func (s *Session) State() State {
	return s.state
}

// Digits returns a copy of the entry buffer, newest digit last.
func (s *Session) Digits() []int {
	return append([]int(nil), s.digits...)
}

// ClearOnEdit reports whether the next digit replaces the buffer.
func (s *Session) ClearOnEdit() bool {
	return s.clearOnEdit
}

// TotalSeconds is the value on the display: the live remaining time
// rounded up while a run is active, otherwise the decoded entry buffer.
func (s *Session) TotalSeconds() int {
	if s.hasBase {
		return int(math.Ceil(s.remaining.Seconds()))
	}
	return Decode(s.digits)
}

// Remaining is the unrounded remaining time of the active run.
func (s *Session) Remaining() time.Duration {
	return s.remaining
}

// Progress is the completed share of the run in [0,100].
func (s *Session) Progress() float64 {
	return s.progress
}

// RunID identifies the active or last completed run in logs.
func (s *Session) RunID() string {
	return s.runID
}

// Pending reports whether a refresh tick is outstanding.
func (s *Session) Pending() bool {
	return s.frames.Pending()
}

// ActionEnabled reports whether the start/pause button accepts input. A
// finished timer always accepts it, as a reset.
func (s *Session) ActionEnabled() bool {
	return s.TotalSeconds() != 0 || s.state == StateFinished
}

// ActionLabel is the start/pause button caption for the current mode.
func (s *Session) ActionLabel() string {
	switch s.state {
	case StateRunning:
		return "⏸ Pause"
	case StatePaused:
		return "▶ Resume"
	case StateFinished:
		return "↻ Again"
	}
	return "▶ Start"
}

// Display renders the time for the current mode.
func (s *Session) Display() string {
	if s.state == StateEditing {
		return FormatEditing(s.TotalSeconds())
	}
	return FormatIdle(s.TotalSeconds())
}

// WindowTitle is the remaining time while running, otherwise fallback.
func (s *Session) WindowTitle(fallback string) string {
	if s.state == StateRunning {
		return FormatIdle(s.TotalSeconds())
	}
	return fallback
}

// SetDuration loads d into the entry buffer of an idle or editing timer. A
// finished timer is reset first.
func (s *Session) SetDuration(d time.Duration) error {
	if s.state == StateRunning || s.state == StatePaused {
		return ErrRunActive
	}
	digits, err := DigitsFor(d)
	if err != nil {
		return err
	}
	if s.state == StateFinished {
		s.Reset()
	}
	s.digits = digits
	s.clearOnEdit = true
	return nil
}

// Click handles the circular control. A finished timer resets, a run is
// paused or resumed, and otherwise the timer moves in and out of editing.
func (s *Session) Click() frame.Token {
	switch s.state {
	case StateFinished:
		s.Reset()
		return frame.None
	case StateRunning, StatePaused:
		return s.Toggle()
	case StateEditing:
		s.state = StateIdle
		s.clearOnEdit = true
	default:
		s.state = StateEditing
		s.clearOnEdit = true
	}
	return frame.None
}

// Key applies a key press while editing: digits are entered, backspace
// removes the newest digit, anything else is ignored. It reports whether
// the key was consumed.
func (s *Session) Key(key string) bool {
	if s.state != StateEditing {
		return false
	}
	if key == KeyBackspace {
		return s.Backspace()
	}
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return false
	}
	return s.Digit(int(key[0] - '0'))
}

// Digit enters d while editing.
func (s *Session) Digit(d int) bool {
	if s.state != StateEditing || d < 0 || d > 9 {
		return false
	}

	if s.clearOnEdit && s.TotalSeconds() > 0 {
		s.digits = []int{d}
	} else {
		s.digits = PushDigit(s.digits, d)
	}
	s.clearOnEdit = false
	return true
}

// Backspace removes the newest digit while editing. It is a no-op on an
// empty buffer.
func (s *Session) Backspace() bool {
	if s.state != StateEditing || len(s.digits) == 0 {
		return false
	}
	s.digits = PopDigit(s.digits)
	return true
}

// Toggle handles the action button. It starts, pauses or resumes the run,
// or resets a finished timer. The returned token is the first refresh
// tick to deliver, or frame.None.
func (s *Session) Toggle() frame.Token {
	now := s.clock.Now()

	switch s.state {
	case StateFinished:
		s.Reset()
		return frame.None
	case StateRunning:
		s.pause(now)
		return frame.None
	}

	if !s.hasBase {
		return s.begin(now)
	}
	return s.resume(now)
}

// Tick recomputes the remaining time for a pending refresh. It returns the
// next tick token while time remains, and completes the run otherwise.
// Stale tokens are ignored.
func (s *Session) Tick(token frame.Token) frame.Token {
	if !s.frames.Claim(token) || s.state != StateRunning {
		return frame.None
	}

	s.advance(s.clock.Now())
	if s.remaining > 0 {
		return s.frames.Schedule()
	}
	s.complete()
	return frame.None
}

// Reset cancels any run, stops the alarm and clears every field.
func (s *Session) Reset() {
	s.frames.Cancel()
	s.player.Stop(sound.Alarm)

	if s.runID != "" {
		s.logger.Info("countdown reset", zap.String("run_id", s.runID), zap.String("from", string(s.state)))
	}

	s.state = StateIdle
	s.digits = nil
	s.clearOnEdit = false
	s.hasBase = false
	s.base = 0
	s.start = time.Time{}
	s.initial = 0
	s.remaining = 0
	s.progress = 0
	s.runID = ""
}

// Close cancels any pending refresh and silences the alarm.
func (s *Session) Close() {
	s.frames.Cancel()
	s.player.Stop(sound.Alarm)
}

func (s *Session) begin(now time.Time) frame.Token {
	total := Decode(s.digits)
	if total == 0 {
		return frame.None
	}

	s.initial = time.Duration(total) * time.Second
	s.base = s.initial
	s.remaining = s.initial
	s.hasBase = true
	s.start = now
	s.progress = 0
	s.clearOnEdit = false
	s.state = StateRunning
	s.runID = uuid.NewString()

	s.logger.Info("countdown started",
		zap.String("run_id", s.runID),
		zap.Int("total_seconds", total),
	)
	return s.frames.Schedule()
}

func (s *Session) resume(now time.Time) frame.Token {
	s.start = now
	s.state = StateRunning
	s.logger.Debug("countdown resumed",
		zap.String("run_id", s.runID),
		zap.Duration("remaining", s.base),
	)
	return s.frames.Schedule()
}

func (s *Session) pause(now time.Time) {
	s.frames.Cancel()

	s.base -= now.Sub(s.start)
	if s.base < 0 {
		s.base = 0
	}
	s.start = time.Time{}
	s.remaining = s.base
	s.progress = s.progressFor(s.remaining)

	if s.remaining == 0 {
		s.complete()
		return
	}
	s.state = StatePaused
	s.logger.Debug("countdown paused",
		zap.String("run_id", s.runID),
		zap.Duration("remaining", s.base),
	)
}

func (s *Session) advance(now time.Time) {
	remaining := s.base - now.Sub(s.start)
	if remaining < 0 {
		remaining = 0
	}
	s.remaining = remaining
	s.progress = s.progressFor(remaining)
}

func (s *Session) progressFor(remaining time.Duration) float64 {
	if s.initial <= 0 {
		return FullProgress
	}
	progress := FullProgress * (1 - float64(remaining)/float64(s.initial))
	return math.Max(0, math.Min(FullProgress, progress))
}

func (s *Session) complete() {
	s.frames.Cancel()
	s.player.Play(sound.Alarm, s.alarmLoop)

	s.logger.Info("countdown finished",
		zap.String("run_id", s.runID),
		zap.Duration("duration", s.initial),
	)

	s.state = StateFinished
	s.digits = nil
	s.clearOnEdit = false
	s.hasBase = false
	s.base = 0
	s.start = time.Time{}
	s.initial = 0
	s.remaining = 0
	s.progress = FullProgress
}

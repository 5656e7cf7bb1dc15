// Package sound owns the decoded audio cues and their playback.
//
// A Manager is constructed once by the composition root and injected into
// the components that need audio. Playback is fire-and-forget: failures are
// logged and never surface to the caller.
package sound

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/wav"
	"go.uber.org/zap"
)

// Effect identifies a registered sound.
type Effect string

// Alarm is the countdown completion cue.
const Alarm Effect = "alarm"

// DefaultVolume applies until SetVolume is called.
const DefaultVolume = 0.5

const resampleQuality = 4

var (
	// ErrAudioUnavailable is returned when no audio device can be opened.
	ErrAudioUnavailable = errors.New("audio output unavailable")
	// ErrNoEffects is returned when a manager is built without sources.
	ErrNoEffects = errors.New("no sound effects registered")
	// ErrUnknownEffect is logged when an unregistered effect is requested.
	ErrUnknownEffect = errors.New("unknown sound effect")
	// ErrClosed is logged when a closed manager is asked to play.
	ErrClosed = errors.New("sound manager closed")
)

// Config describes the effects to preload.
type Config struct {
	// Sources maps each effect to WAV-encoded bytes.
	Sources map[Effect][]byte
	// Volume is the initial volume in [0,1].
	Volume float64
	// BufferDuration sizes the speaker buffer. Defaults to 100ms.
	BufferDuration time.Duration
}

// Manager plays preloaded effects at a shared volume.
type Manager struct {
	mu      sync.Mutex
	out     Output
	format  beep.Format
	buffers map[Effect]*beep.Buffer
	voices  map[Effect]*voice
	volume  float64
	closed  bool
	logger  *zap.Logger
}

type voice struct {
	ctrl *beep.Ctrl
	gain *effects.Volume
	done atomic.Bool
}

// New decodes the configured effects and plays them through out.
func New(cfg Config, out Output, logger *zap.Logger) (*Manager, error) {
	if out == nil {
		return nil, ErrAudioUnavailable
	}
	buffers, format, err := decodeAll(cfg.Sources)
	if err != nil {
		return nil, err
	}
	return newManager(buffers, format, out, cfg.Volume, logger), nil
}

func newManager(buffers map[Effect]*beep.Buffer, format beep.Format, out Output, volume float64, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		out:     out,
		format:  format,
		buffers: buffers,
		voices:  make(map[Effect]*voice),
		volume:  clamp(volume),
		logger:  logger.With(zap.String("component", "sound")),
	}
}

// Format is the sample format every effect was decoded to.
func (m *Manager) Format() beep.Format {
	return m.format
}

// Play rewinds effect to its start and plays it, looping forever when loop
// is set. A sound already playing for the same effect is replaced.
func (m *Manager) Play(effect Effect, loop bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		m.logger.Warn("play sound effect", zap.String("effect", string(effect)), zap.Error(ErrClosed))
		return
	}
	buffer, ok := m.buffers[effect]
	if !ok {
		m.logger.Warn("play sound effect", zap.String("effect", string(effect)), zap.Error(ErrUnknownEffect))
		return
	}

	m.stopLocked(effect)

	var stream beep.Streamer = buffer.Streamer(0, buffer.Len())
	if loop {
		stream = beep.Loop(-1, buffer.Streamer(0, buffer.Len()))
	}

	v := &voice{}
	v.ctrl = &beep.Ctrl{Streamer: beep.Seq(stream, beep.Callback(func() { v.done.Store(true) }))}
	v.gain = &effects.Volume{Streamer: v.ctrl, Base: 2}
	applyGain(v.gain, m.volume)

	if err := m.out.Play(v.gain); err != nil {
		m.logger.Warn("play sound effect", zap.String("effect", string(effect)), zap.Error(err))
		return
	}
	m.voices[effect] = v
	m.logger.Debug("sound effect started", zap.String("effect", string(effect)), zap.Bool("loop", loop))
}

// Stop silences effect and rewinds it. Stopping an effect that is not
// playing is a no-op.
func (m *Manager) Stop(effect Effect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked(effect)
}

// Playing reports whether effect is currently sounding.
func (m *Manager) Playing(effect Effect) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.voices[effect]
	return ok && !v.done.Load()
}

// SetVolume clamps volume to [0,1] and applies it to every effect,
// including the ones currently sounding.
func (m *Manager) SetVolume(volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.volume = clamp(volume)
	if len(m.voices) == 0 {
		return
	}
	m.out.Lock()
	for _, v := range m.voices {
		applyGain(v.gain, m.volume)
	}
	m.out.Unlock()
}

// Volume returns the current volume.
func (m *Manager) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// Close stops every effect and releases the output. Further calls to Play
// are logged and ignored.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	for effect := range m.voices {
		m.stopLocked(effect)
	}
	m.closed = true
	if err := m.out.Close(); err != nil {
		return fmt.Errorf("close audio output: %w", err)
	}
	return nil
}

func (m *Manager) stopLocked(effect Effect) {
	v, ok := m.voices[effect]
	if !ok {
		return
	}
	m.out.Lock()
	v.ctrl.Streamer = nil
	m.out.Unlock()
	v.done.Store(true)
	delete(m.voices, effect)
}

func decodeAll(sources map[Effect][]byte) (map[Effect]*beep.Buffer, beep.Format, error) {
	if len(sources) == 0 {
		return nil, beep.Format{}, ErrNoEffects
	}

	buffers := make(map[Effect]*beep.Buffer, len(sources))
	var target beep.Format
	for effect, data := range sources {
		streamer, format, err := wav.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decode sound effect %s: %w", effect, err)
		}

		if target.SampleRate == 0 {
			target = format
		}

		var source beep.Streamer = streamer
		if format.SampleRate != target.SampleRate {
			source = beep.Resample(resampleQuality, format.SampleRate, target.SampleRate, streamer)
		}

		buffer := beep.NewBuffer(target)
		buffer.Append(source)
		buffers[effect] = buffer

		if err := streamer.Close(); err != nil {
			return nil, beep.Format{}, fmt.Errorf("close sound effect %s: %w", effect, err)
		}
	}
	return buffers, target, nil
}

// applyGain maps a linear volume onto the exponential beep volume.
func applyGain(gain *effects.Volume, volume float64) {
	if volume <= 0 {
		gain.Silent = true
		gain.Volume = 0
		return
	}
	gain.Silent = false
	gain.Volume = math.Log2(volume)
}

func clamp(volume float64) float64 {
	return math.Max(0, math.Min(1, volume))
}

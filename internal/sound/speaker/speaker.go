// Package speaker connects a sound.Manager to the host audio device. It is
// the only package that links the native audio backend, so everything else
// builds without cgo.
package speaker

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	beepspeaker "github.com/faiface/beep/speaker"
	"go.uber.org/zap"

	"github.com/gabimaru/gabimaru/internal/sound"
)

// DefaultBufferDuration sizes the device buffer when the config leaves it
// unset.
const DefaultBufferDuration = 100 * time.Millisecond

// Output plays through the process-wide beep speaker. It satisfies
// sound.Output once the device is initialised.
type Output struct{}

// Play mixes s into the device.
func (Output) Play(s beep.Streamer) error {
	beepspeaker.Play(s)
	return nil
}

// Lock blocks the device callback.
func (Output) Lock() { beepspeaker.Lock() }

// Unlock releases the device callback.
func (Output) Unlock() { beepspeaker.Unlock() }

// Close drops every streamer and releases the device.
func (Output) Close() error {
	beepspeaker.Clear()
	beepspeaker.Close()
	return nil
}

// Open decodes the configured effects and opens the speaker at their sample
// rate. It fails with sound.ErrAudioUnavailable when the host has no usable
// audio device.
func Open(cfg sound.Config, logger *zap.Logger) (*sound.Manager, error) {
	manager, err := sound.New(cfg, Output{}, logger)
	if err != nil {
		return nil, err
	}

	bufferDuration := cfg.BufferDuration
	if bufferDuration <= 0 {
		bufferDuration = DefaultBufferDuration
	}
	format := manager.Format()
	if err := beepspeaker.Init(format.SampleRate, format.SampleRate.N(bufferDuration)); err != nil {
		return nil, fmt.Errorf("%w: %v", sound.ErrAudioUnavailable, err)
	}
	return manager, nil
}

package sound

import "github.com/faiface/beep"

// Output mixes streamers into an audio device. Lock and Unlock guard
// mutations of streamers that are already playing, since the device pulls
// samples from its own goroutine.
type Output interface {
	Play(s beep.Streamer) error
	Lock()
	Unlock()
	Close() error
}

// Silent satisfies the countdown's player contract without an audio
// device. It is the fallback when the speaker cannot be opened.
type Silent struct{}

// Play does nothing.
func (Silent) Play(Effect, bool) {}

// Stop does nothing.
func (Silent) Stop(Effect) {}

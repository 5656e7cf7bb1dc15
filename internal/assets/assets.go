// Package assets embeds the audio cues shipped with the binary.
package assets

import (
	"embed"
	"fmt"
	"sync"
)

const soundDir = "sounds/"

// AlarmFile is the countdown completion cue.
const AlarmFile = "alarm.wav"

//go:embed sounds/*.wav
var soundFS embed.FS

var soundCache sync.Map

// Sound returns the raw bytes of an embedded sound file.
func Sound(fileName string) ([]byte, error) {
	path := soundDir + fileName
	if cached, ok := soundCache.Load(path); ok {
		return cached.([]byte), nil
	}

	data, err := soundFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load sound %s: %w", path, err)
	}

	soundCache.Store(path, data)
	return data, nil
}

package timemath

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConversions(t *testing.T) {
	assert.Equal(t, 1.5, MsToSeconds(1500))
	assert.Equal(t, 2500.0, SecondsToMs(2.5))
	assert.Equal(t, 0.0, MsToSeconds(0))
}

func TestDifferenceMs(t *testing.T) {
	assert.Equal(t, 750.0, DifferenceMs(1000, 1750))
	assert.Equal(t, -250.0, DifferenceMs(1000, 750))
}

func TestElapsed(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(3*time.Second + 250*time.Millisecond)

	assert.InDelta(t, 3.25, Elapsed(start, end), 1e-9)
	assert.InDelta(t, -3.25, Elapsed(end, start), 1e-9)
}

func TestSecondsToDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, SecondsToDuration(1.5))
	assert.Equal(t, time.Duration(0), SecondsToDuration(0))
}

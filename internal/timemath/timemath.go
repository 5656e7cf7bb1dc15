// Package timemath holds the unit conversions shared by the stopwatch and the
// countdown timer.
package timemath

import "time"

// SecondInMs is the number of milliseconds in one second.
const SecondInMs = 1000

// MsToSeconds converts milliseconds to fractional seconds.
func MsToSeconds(ms float64) float64 {
	return ms / SecondInMs
}

// SecondsToMs converts seconds to milliseconds.
func SecondsToMs(seconds float64) float64 {
	return seconds * SecondInMs
}

// DifferenceMs returns end - start.
func DifferenceMs(start, end float64) float64 {
	return end - start
}

// Elapsed returns the seconds between two instants. It uses the monotonic
// clock reading when both instants carry one.
func Elapsed(start, end time.Time) float64 {
	return MsToSeconds(float64(end.Sub(start)) / float64(time.Millisecond))
}

// SecondsToDuration converts fractional seconds to a time.Duration.
func SecondsToDuration(seconds float64) time.Duration {
	return time.Duration(SecondsToMs(seconds) * float64(time.Millisecond))
}

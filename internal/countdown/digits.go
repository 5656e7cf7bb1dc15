package countdown

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// MaxDigits is the capacity of the hh:mm:ss entry buffer.
const MaxDigits = 6

// Positional weights in seconds, ones-of-seconds first.
const (
	secondInSeconds        = 1
	tensOfSecondsInSeconds = 10
	minuteInSeconds        = 60
	tensOfMinutesInSeconds = minuteInSeconds * 10
	hourInSeconds          = minuteInSeconds * 60
	tensOfHoursInSeconds   = hourInSeconds * 10
)

var digitWeights = [MaxDigits]int{
	secondInSeconds,
	tensOfSecondsInSeconds,
	minuteInSeconds,
	tensOfMinutesInSeconds,
	hourInSeconds,
	tensOfHoursInSeconds,
}

// ErrDurationOutOfRange is returned when a duration cannot be typed into
// the six-digit buffer.
var ErrDurationOutOfRange = errors.New("duration out of range")

// Decode converts an entry buffer (newest digit last) into seconds. Digits
// are weighted from the right: s, 10s, m, 10m, h, 10h.
func Decode(digits []int) int {
	seconds := 0
	for i := 0; i < len(digits) && i < MaxDigits; i++ {
		seconds += digits[len(digits)-1-i] * digitWeights[i]
	}
	return seconds
}

// PushDigit appends d, dropping the oldest digit beyond MaxDigits.
func PushDigit(digits []int, d int) []int {
	next := append(append([]int(nil), digits...), d)
	if len(next) > MaxDigits {
		next = next[len(next)-MaxDigits:]
	}
	return next
}

// PopDigit drops the newest digit. It is a no-op on an empty buffer.
func PopDigit(digits []int) []int {
	if len(digits) <= 1 {
		return nil
	}
	return append([]int(nil), digits[:len(digits)-1]...)
}

// DigitsFor returns the shortest buffer that types d as hh:mm:ss. Fractions
// of a second are dropped.
func DigitsFor(d time.Duration) ([]int, error) {
	if d <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrDurationOutOfRange, d)
	}
	total := int(d / time.Second)
	hours := total / hourInSeconds
	if hours > 99 {
		return nil, fmt.Errorf("%w: %v exceeds 99h", ErrDurationOutOfRange, d)
	}
	minutes := (total % hourInSeconds) / minuteInSeconds
	seconds := total % minuteInSeconds

	typed := strconv.Itoa(hours*10000 + minutes*100 + seconds)
	digits := make([]int, 0, len(typed))
	for _, r := range typed {
		digits = append(digits, int(r-'0'))
	}
	if Decode(digits) == 0 {
		return nil, fmt.Errorf("%w: %v is under a second", ErrDurationOutOfRange, d)
	}
	return digits, nil
}

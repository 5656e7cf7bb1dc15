package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		digits []int
		want   int
	}{
		{"empty", nil, 0},
		{"seconds", []int{5}, 5},
		{"tens of seconds", []int{4, 5}, 45},
		{"minutes", []int{1, 3, 0}, 90},
		{"tens of minutes", []int{2, 5, 0, 0}, 1500},
		{"hours", []int{1, 0, 0, 0, 0}, 3600},
		{"full buffer", []int{1, 2, 3, 0, 4, 5}, 45045},
		{"all nines", []int{9, 9, 9, 9, 9, 9}, 362439},
		{"leading zeros", []int{0, 0, 0, 0, 0, 7}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.digits))
		})
	}
}

func TestDecodeMatchesWeightedSum(t *testing.T) {
	weights := []int{1, 10, 60, 600, 3600, 36000}
	digits := []int{}
	for n := 1; n <= MaxDigits; n++ {
		digits = append(digits, (n*7)%10)
		want := 0
		for i := 0; i < len(digits); i++ {
			want += digits[len(digits)-1-i] * weights[i]
		}
		assert.Equal(t, want, Decode(digits), "digits %v", digits)
	}
}

func TestPushDigitDropsOldest(t *testing.T) {
	digits := []int{1, 2, 3, 4, 5, 6}
	next := PushDigit(digits, 7)

	assert.Equal(t, []int{2, 3, 4, 5, 6, 7}, next)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, digits, "input must not be modified")
}

func TestPushDigitAppends(t *testing.T) {
	assert.Equal(t, []int{3}, PushDigit(nil, 3))
	assert.Equal(t, []int{3, 0}, PushDigit([]int{3}, 0))
}

func TestPopDigit(t *testing.T) {
	assert.Nil(t, PopDigit(nil))
	assert.Nil(t, PopDigit([]int{4}))
	assert.Equal(t, []int{1, 2}, PopDigit([]int{1, 2, 3}))
}

func TestDigitsFor(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want []int
	}{
		{5 * time.Second, []int{5}},
		{90 * time.Second, []int{1, 3, 0}},
		{25 * time.Minute, []int{2, 5, 0, 0}},
		{time.Hour + 2*time.Minute + 3*time.Second, []int{1, 0, 2, 0, 3}},
		{12*time.Hour + 30*time.Minute + 45*time.Second, []int{1, 2, 3, 0, 4, 5}},
		{1500 * time.Millisecond, []int{1}},
	}

	for _, tt := range tests {
		got, err := DigitsFor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, int(tt.in/time.Second), Decode(got), tt.in)
	}
}

func TestDigitsForOutOfRange(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second, 500 * time.Millisecond, 100 * time.Hour} {
		_, err := DigitsFor(d)
		assert.ErrorIs(t, err, ErrDurationOutOfRange, d)
	}
}

func TestFormats(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatEditing(0))
	assert.Equal(t, "00:01:30", FormatEditing(90))
	assert.Equal(t, "12:30:45", FormatEditing(45045))

	assert.Equal(t, "0:00", FormatIdle(0))
	assert.Equal(t, "1:30", FormatIdle(90))
	assert.Equal(t, "59:59", FormatIdle(3599))
	assert.Equal(t, "1:00:00", FormatIdle(3600))
	assert.Equal(t, "12:30:45", FormatIdle(45045))
	assert.Equal(t, "0:00", FormatIdle(-3))
}

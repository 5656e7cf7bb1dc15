package countdown

import "fmt"

// FormatEditing renders seconds as HH:MM:SS, the fixed layout used while
// digits are being typed.
func FormatEditing(seconds int) string {
	h, m, s := split(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatIdle renders seconds as H:MM:SS when hours are present, otherwise
// M:SS.
func FormatIdle(seconds int) string {
	h, m, s := split(seconds)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func split(seconds int) (int, int, int) {
	if seconds < 0 {
		seconds = 0
	}
	return seconds / hourInSeconds, (seconds % hourInSeconds) / minuteInSeconds, seconds % minuteInSeconds
}

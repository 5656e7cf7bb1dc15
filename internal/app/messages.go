package app

import "github.com/gabimaru/gabimaru/internal/frame"

// FrameMsg is one display refresh for a widget. Token must be claimed by
// the widget's session; stale tokens are dropped.
type FrameMsg struct {
	Target Tab
	Token  frame.Token
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}

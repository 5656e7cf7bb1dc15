package app

// Key binding constants used in handleKey.
const (
	KeyQuit       = "q"
	KeyQuitUpper  = "Q"
	KeyCtrlC      = "ctrl+c"
	KeySpace      = " "
	KeyTab        = "tab"
	KeyShiftTab   = "shift+tab"
	KeyEnter      = "enter"
	KeyEdit       = "e"
	KeyReset      = "r"
	KeyResetUpper = "R"
	KeyBackspace  = "backspace"
	KeyVolumeUp   = "+"
	KeyVolumeUpEq = "="
	KeyVolumeDown = "-"
)

// VolumeStep is the change applied by one volume key press.
const VolumeStep = 0.1

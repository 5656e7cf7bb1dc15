package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF0000")
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorMagenta = lipgloss.Color("#FF00FF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 2)

	TabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan).
			Underline(true).
			Padding(0, 2)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ButtonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorDimGray).
			Padding(0, 3)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorDimGray).
				Padding(0, 3)

	ButtonOutlineStyle = lipgloss.NewStyle().
				Foreground(ColorGray).
				Padding(0, 1)

	// Dial glyph styles.
	RingStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	RingEditingStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	ProgressStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	MarkerStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	DigitsStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	DigitsEditingStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorYellow)

	DigitsFinishedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorRed)
)

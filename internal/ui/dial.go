// Package ui holds the styles and the circular dial drawn by the TUI.
package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cells are roughly twice as tall as they are wide, so the dial is drawn
// with twice as many columns as rows per unit of radius.
const cellAspect = 2.0

const (
	ringGlyph   = "·"
	filledGlyph = "•"
	markerGlyph = "●"
)

// Circumference returns the length of a circle of the given radius.
func Circumference(radius float64) float64 {
	return 2 * math.Pi * radius
}

// DashOffset is the hidden length of a progress ring: the full
// circumference at 0% and nothing at 100%.
func DashOffset(radius, percent float64) float64 {
	percent = math.Max(0, math.Min(100, percent))
	return Circumference(radius) * (1 - percent/100)
}

// Dial describes one frame of the circular indicator.
type Dial struct {
	// Radius in rows.
	Radius int
	// Label is centred inside the ring.
	Label      string
	LabelStyle lipgloss.Style
	// Progress in [0,100] reveals the ring clockwise from twelve o'clock.
	Progress float64
	// Marker draws an orbiting dot at MarkerAngle degrees, clockwise from
	// three o'clock.
	Marker      bool
	MarkerAngle float64
	// Highlight tints the base ring, used while the timer is editing.
	Highlight bool
}

// Size returns the width and height of the rendered dial.
func (d Dial) Size() (int, int) {
	r := max(d.Radius, 1)
	return int(2*cellAspect*float64(r)) + 1, 2*r + 1
}

// Render draws the dial.
func (d Dial) Render() string {
	r := max(d.Radius, 1)
	width, height := d.Size()
	cx, cy := width/2, height/2

	visible := Circumference(float64(r)) - DashOffset(float64(r), d.Progress)
	markerX, markerY := -1, -1
	if d.Marker {
		rad := d.MarkerAngle * math.Pi / 180
		markerX = cx + int(math.Round(cellAspect*float64(r)*math.Cos(rad)))
		markerY = cy + int(math.Round(float64(r)*math.Sin(rad)))
	}

	ringStyle := RingStyle
	if d.Highlight {
		ringStyle = RingEditingStyle
	}

	rows := make([]string, height)
	for y := 0; y < height; y++ {
		cells := make([]string, width)
		for x := 0; x < width; x++ {
			switch {
			case x == markerX && y == markerY:
				cells[x] = MarkerStyle.Render(markerGlyph)
			case onRing(x-cx, y-cy, r):
				arc := clockwiseFromTop(x-cx, y-cy) / 360 * Circumference(float64(r))
				if visible > 0 && arc <= visible {
					cells[x] = ProgressStyle.Render(filledGlyph)
				} else {
					cells[x] = ringStyle.Render(ringGlyph)
				}
			default:
				cells[x] = " "
			}
		}
		if y == cy && d.Label != "" {
			cells = overlayCentre(cells, d.LabelStyle.Render(d.Label))
		}
		rows[y] = strings.Join(cells, "")
	}
	return strings.Join(rows, "\n")
}

func onRing(dx, dy, r int) bool {
	dist := math.Hypot(float64(dx)/cellAspect, float64(dy))
	return math.Abs(dist-float64(r)) < 0.5
}

// clockwiseFromTop returns the angle of (dx, dy) in degrees, measured
// clockwise from twelve o'clock, in [0,360).
func clockwiseFromTop(dx, dy int) float64 {
	deg := math.Atan2(float64(dx)/cellAspect, float64(-dy)) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// overlayCentre replaces the middle cells of a dial row with label. Cells
// outside the label are kept, so the row stays as wide as the dial unless
// the label alone is wider.
func overlayCentre(cells []string, label string) []string {
	width := len(cells)
	labelWidth := lipgloss.Width(label)
	if labelWidth >= width {
		return []string{lipgloss.PlaceHorizontal(width, lipgloss.Center, label)}
	}
	left := (width - labelWidth) / 2
	out := append([]string(nil), cells[:left]...)
	out = append(out, label)
	return append(out, cells[left+labelWidth:]...)
}

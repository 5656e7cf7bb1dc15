package ui

import (
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func plainRows(s string) [][]rune {
	var rows [][]rune
	for _, line := range strings.Split(ansiPattern.ReplaceAllString(s, ""), "\n") {
		rows = append(rows, []rune(line))
	}
	return rows
}

func TestDashOffset(t *testing.T) {
	const radius = 45.0
	full := 2 * math.Pi * radius

	assert.InDelta(t, full, Circumference(radius), 1e-9)
	assert.InDelta(t, full, DashOffset(radius, 0), 1e-9)
	assert.InDelta(t, full/2, DashOffset(radius, 50), 1e-9)
	assert.InDelta(t, 0, DashOffset(radius, 100), 1e-9)
	assert.InDelta(t, full, DashOffset(radius, -10), 1e-9)
	assert.InDelta(t, 0, DashOffset(radius, 150), 1e-9)
}

func TestDialSize(t *testing.T) {
	w, h := Dial{Radius: 4}.Size()
	assert.Equal(t, 17, w)
	assert.Equal(t, 9, h)

	w, h = Dial{}.Size()
	assert.Equal(t, 5, w)
	assert.Equal(t, 3, h)
}

func TestDialRenderDimensions(t *testing.T) {
	d := Dial{Radius: 5, Label: "1:30"}
	width, height := d.Size()

	lines := strings.Split(d.Render(), "\n")
	require.Len(t, lines, height)
	for i, line := range lines {
		assert.Equal(t, width, lipgloss.Width(line), "row %d", i)
	}
}

func TestDialLabelCentred(t *testing.T) {
	d := Dial{Radius: 5, Label: "12.34"}
	rows := plainRows(d.Render())

	middle := string(rows[5])
	assert.Contains(t, middle, "12.34")
	idx := strings.Index(middle, "12.34")
	assert.Equal(t, (21-5)/2, len([]rune(middle[:idx])))
}

func TestDialProgressReveal(t *testing.T) {
	empty := plainRows(Dial{Radius: 5, Progress: 0}.Render())
	full := plainRows(Dial{Radius: 5, Progress: 100}.Render())

	for y := range empty {
		assert.NotContains(t, string(empty[y]), filledGlyph, "row %d at 0%%", y)
		assert.NotContains(t, string(full[y]), ringGlyph, "row %d at 100%%", y)
	}
}

func TestDialProgressClockwiseFromTop(t *testing.T) {
	rows := plainRows(Dial{Radius: 5, Progress: 50}.Render())
	middle := rows[5]

	assert.Equal(t, filledGlyph, string(middle[len(middle)-1]), "three o'clock is inside the first half")
	assert.Equal(t, ringGlyph, string(middle[0]), "nine o'clock is still hidden")
}

func TestDialMarker(t *testing.T) {
	rows := plainRows(Dial{Radius: 5, Marker: true, MarkerAngle: 0}.Render())
	assert.Equal(t, markerGlyph, string(rows[5][20]))

	rows = plainRows(Dial{Radius: 5, Marker: true, MarkerAngle: 90}.Render())
	assert.Equal(t, markerGlyph, string(rows[10][10]))

	rows = plainRows(Dial{Radius: 5, Marker: true, MarkerAngle: 270}.Render())
	assert.Equal(t, markerGlyph, string(rows[0][10]))
}

func TestClockwiseFromTop(t *testing.T) {
	assert.InDelta(t, 0, clockwiseFromTop(0, -3), 1e-9)
	assert.InDelta(t, 90, clockwiseFromTop(6, 0), 1e-9)
	assert.InDelta(t, 180, clockwiseFromTop(0, 3), 1e-9)
	assert.InDelta(t, 270, clockwiseFromTop(-6, 0), 1e-9)
}

func TestDialWideLabelKeepsRowWidth(t *testing.T) {
	d := Dial{Radius: 2, Label: "00:00:00"}
	width, height := d.Size()

	lines := strings.Split(d.Render(), "\n")
	require.Len(t, lines, height)
	for i, line := range lines {
		assert.Equal(t, width, lipgloss.Width(line), "row %d", i)
	}

	middle := string(plainRows(d.Render())[height/2])
	assert.Contains(t, middle, "00:00:00")
}

func TestOverlayCentreLabelWiderThanRow(t *testing.T) {
	cells := []string{"a", "b", "c"}
	out := overlayCentre(cells, "wider")
	require.Len(t, out, 1)
	assert.Equal(t, "wider", out[0])

	out = overlayCentre(cells, "x")
	assert.Equal(t, []string{"a", "x", "c"}, out)
}

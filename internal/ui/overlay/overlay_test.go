package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grid(w, h int) string {
	row := strings.Repeat(".", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func TestPlace_Center(t *testing.T) {
	result := Place(Config{Width: 5, Height: 3, Position: Center}, "XX\nXX", grid(5, 3))

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, ".XX..", lines[0])
	assert.Equal(t, ".XX..", lines[1])
	assert.Equal(t, ".....", lines[2])
}

func TestPlace_BottomRight(t *testing.T) {
	result := Place(Config{Width: 6, Height: 4, Position: BottomRight, PadX: 1, PadY: 1}, "AB\nCD", grid(6, 4))

	lines := strings.Split(result, "\n")
	assert.Equal(t, "......", lines[0])
	assert.Equal(t, "...AB.", lines[1])
	assert.Equal(t, "...CD.", lines[2])
	assert.Equal(t, "......", lines[3])
}

func TestPlace_Absolute(t *testing.T) {
	result := Place(Config{Width: 6, Height: 3, Position: Absolute, X: 2, Y: 1}, "MM", grid(6, 3))

	lines := strings.Split(result, "\n")
	assert.Equal(t, "..MM..", lines[1])
}

func TestPlace_ClipsPastRightEdge(t *testing.T) {
	result := Place(Config{Width: 5, Height: 1, Position: Absolute, X: 3}, "WXYZ", grid(5, 1))

	assert.Equal(t, "...WX", result)
}

func TestPlace_PadsShortBackground(t *testing.T) {
	result := Place(Config{Width: 4, Height: 3, Position: Bottom}, "ZZ", "")

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, " ZZ ", lines[2])
}

func TestPlace_PreservesANSI(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("XX")
	result := Place(Config{Width: 5, Height: 1, Position: Center}, styled, "AAAAA")

	assert.Contains(t, result, styled)
	assert.Equal(t, "AXXAA", ansi.Strip(result))
}

func TestCalculatePosition(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		wantX int
		wantY int
	}{
		{"center", Config{Width: 10, Height: 10, Position: Center}, 3, 4},
		{"top", Config{Width: 10, Height: 10, Position: Top, PadY: 2}, 3, 2},
		{"bottom", Config{Width: 10, Height: 10, Position: Bottom, PadY: 1}, 3, 7},
		{"bottom right", Config{Width: 10, Height: 10, Position: BottomRight, PadX: 1, PadY: 1}, 5, 7},
		{"absolute", Config{Width: 10, Height: 10, Position: Absolute, X: 6, Y: 1}, 6, 1},
		{"clamped", Config{Width: 2, Height: 1, Position: Center}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := calculatePosition(tt.cfg, 4, 2)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestOrigin(t *testing.T) {
	x, y := Origin(Config{Width: 20, Height: 10, Position: Center}, "abcd\nefgh")

	assert.Equal(t, 8, x)
	assert.Equal(t, 4, y)
}

func TestDim_StripsStyling(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("hello") + "\nworld"

	dimmed := Dim(styled, lipgloss.Color("#333333"))

	assert.Equal(t, "hello\nworld", ansi.Strip(dimmed))
}

// Package overlay composites floating layers (modals, menus, toasts) on top of
// background views without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the center of the viewport.
	Center Position = iota
	// Top places the overlay at the top center of the viewport.
	Top
	// Bottom places the overlay at the bottom center of the viewport.
	Bottom
	// BottomRight anchors the overlay to the bottom-right corner, inset by PadX/PadY.
	BottomRight
	// Absolute places the overlay's top-left corner at (X, Y).
	Absolute
)

// Config controls overlay rendering behavior.
type Config struct {
	// Width is the total viewport width.
	Width int
	// Height is the total viewport height.
	Height int
	Position Position
	// PadX insets BottomRight from the right edge.
	PadX int
	// PadY insets Top, Bottom and BottomRight from their edge.
	PadY int
	// X and Y are used by Absolute.
	X, Y int
}

// Place renders foreground content on top of background.
// Uses ANSI-aware string manipulation to preserve styling in both
// the foreground and background content. Foreground cells that would fall
// past the right edge are clipped.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	startX, startY := calculatePosition(cfg, lipgloss.Width(fg), len(fgLines))

	for i, fgLine := range fgLines {
		bgY := startY + i
		if bgY >= len(bgLines) {
			break
		}
		if cfg.Width > 0 {
			room := cfg.Width - startX
			if room <= 0 {
				break
			}
			if ansi.StringWidth(fgLine) > room {
				fgLine = ansi.Truncate(fgLine, room, "")
			}
		}
		bgLines[bgY] = splice(bgLines[bgY], fgLine, startX)
	}

	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of line starting at x with fg.
func splice(line, fg string, x int) string {
	left := ansi.Truncate(line, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	var right string
	endX := x + ansi.StringWidth(fg)
	if endX < ansi.StringWidth(line) {
		right = ansi.TruncateLeft(line, endX, "")
	}
	return left + fg + right
}

// calculatePosition determines the x,y starting coordinates for the overlay.
func calculatePosition(cfg Config, fgWidth, fgHeight int) (x, y int) {
	switch cfg.Position {
	case Top:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.PadY
	case Bottom:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.Height - fgHeight - cfg.PadY
	case BottomRight:
		x = cfg.Width - fgWidth - cfg.PadX
		y = cfg.Height - fgHeight - cfg.PadY
	case Absolute:
		x, y = cfg.X, cfg.Y
	default: // Center
		x = (cfg.Width - fgWidth) / 2
		y = (cfg.Height - fgHeight) / 2
	}

	return max(x, 0), max(y, 0)
}

// Origin reports where Place would put fg's top-left corner.
func Origin(cfg Config, fg string) (x, y int) {
	return calculatePosition(cfg, lipgloss.Width(fg), strings.Count(fg, "\n")+1)
}

// Dim strips styling from bg and renders it faint, used as a modal backdrop.
func Dim(bg string, color lipgloss.TerminalColor) string {
	style := lipgloss.NewStyle().Foreground(color).Faint(true)
	lines := strings.Split(ansi.Strip(bg), "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

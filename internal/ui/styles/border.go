package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// BoxOptions describes a rounded box with an embedded title.
type BoxOptions struct {
	Title       string
	Trailer     string // rendered verbatim at the right end of the top border, e.g. a close marker
	Width       int    // total width including borders
	BorderColor lipgloss.TerminalColor
	TitleColor  lipgloss.TerminalColor
}

// RenderTitledBox renders lines inside a rounded border shaped like
// ╭─ Title ──────── ✕ ╮. Lines wider than the inner width are truncated.
func RenderTitledBox(lines []string, opts BoxOptions) string {
	borderColor := opts.BorderColor
	if borderColor == nil {
		borderColor = OverlayBorderColor
	}
	titleColor := opts.TitleColor
	if titleColor == nil {
		titleColor = OverlayTitleColor
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor).Bold(true)

	innerWidth := max(opts.Width-2, 1)

	var b strings.Builder
	b.WriteString(buildTopBorder(opts.Title, opts.Trailer, innerWidth, borderStyle, titleStyle))
	for _, line := range lines {
		b.WriteString("\n")
		b.WriteString(borderStyle.Render(borderVertical))
		b.WriteString(FitWidth(line, innerWidth))
		b.WriteString(borderStyle.Render(borderVertical))
	}
	b.WriteString("\n")
	b.WriteString(borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight))
	return b.String()
}

// buildTopBorder creates the top border with embedded title and trailer.
func buildTopBorder(title, trailer string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	trailerWidth := lipgloss.Width(trailer)
	if trailer != "" {
		trailerWidth += 2 // " ✕ "
	}

	// "─ " + title + " " needs at least 4 cells to be worth drawing.
	available := innerWidth - 4 - trailerWidth
	if title == "" || available < 1 {
		if trailer == "" || innerWidth < trailerWidth+1 {
			return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
		}
		dashes := innerWidth - trailerWidth
		return borderStyle.Render(borderTopLeft+strings.Repeat(borderHorizontal, dashes)+" ") +
			trailer + borderStyle.Render(" "+borderTopRight)
	}

	displayTitle := TruncateString(title, available)
	dashes := max(innerWidth-3-lipgloss.Width(displayTitle)-trailerWidth, 0)

	top := borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(displayTitle) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, dashes))
	if trailer != "" {
		top += borderStyle.Render(" ") + trailer + borderStyle.Render(" ")
	}
	return top + borderStyle.Render(borderTopRight)
}

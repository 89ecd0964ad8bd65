package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, ellipsis)
}

// TruncateMiddle shortens plain text by cutting graphemes out of its middle,
// so both ends of a long path stay visible: C:/Users/…/Desktop/app.lnk.
func TruncateMiddle(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if uniseg.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return ellipsis
	}

	var clusters []string
	var widths []int
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
		widths = append(widths, g.Width())
	}

	budget := maxWidth - 1
	headBudget := (budget + 1) / 2
	tailBudget := budget - headBudget

	var head strings.Builder
	used := 0
	i := 0
	for ; i < len(clusters) && used+widths[i] <= headBudget; i++ {
		head.WriteString(clusters[i])
		used += widths[i]
	}

	j := len(clusters)
	used = 0
	for j > i && used+widths[j-1] <= tailBudget {
		j--
		used += widths[j]
	}

	return head.String() + ellipsis + strings.Join(clusters[j:], "")
}

// PadRight pads plain text with spaces to exactly width cells, truncating when longer.
func PadRight(s string, width int) string {
	if width < 1 {
		return ""
	}
	s = runewidth.Truncate(s, width, ellipsis)
	return runewidth.FillRight(s, width)
}

// FitWidth pads or truncates styled text to exactly width cells.
func FitWidth(s string, width int) string {
	w := ansi.StringWidth(s)
	switch {
	case w > width:
		return ansi.Truncate(s, width, "")
	case w < width:
		return s + strings.Repeat(" ", width-w)
	default:
		return s
	}
}

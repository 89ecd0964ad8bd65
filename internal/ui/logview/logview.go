// Package logview shows recent log entries inside a modal, filtered by level.
package logview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/rungrid/rungrid/internal/geom"
	"github.com/rungrid/rungrid/internal/log"
	"github.com/rungrid/rungrid/internal/pointer"
	"github.com/rungrid/rungrid/internal/ui/scrollarea"
	"github.com/rungrid/rungrid/internal/ui/styles"
)

const (
	maxEntries    = 1000
	defaultHeight = 12
)

// Viewer is interactive modal content listing log entries.
type Viewer struct {
	minLevel log.Level
	height   int
	follow   bool // keep the newest entry in view
	area     scrollarea.Model
}

// ID names the viewer's scroll area as a pointer capture owner.
const ID = "logs"

// Option configures a Viewer.
type Option func(*options)

type options struct {
	capture *pointer.Capture
}

// WithCapture shares the window's pointer capture so a scrollbar drag keeps
// its motion after the pointer leaves the card.
func WithCapture(c *pointer.Capture) Option {
	return func(o *options) { o.capture = c }
}

// New creates a viewer showing height lines of entries.
func New(height int, opts ...Option) *Viewer {
	if height <= 0 {
		height = defaultHeight
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var areaOpts []scrollarea.Option
	if o.capture != nil {
		areaOpts = append(areaOpts, scrollarea.WithCapture(o.capture))
	}
	return &Viewer{
		minLevel: log.LevelDebug,
		height:   height,
		follow:   true,
		area:     scrollarea.New(ID, areaOpts...),
	}
}

// SetBounds implements modal.Bounded.
func (v *Viewer) SetBounds(r geom.Rect) { v.area.SetOrigin(r.X, r.Y) }

// Dragging reports whether a scrollbar drag is in progress.
func (v *Viewer) Dragging() bool { return v.area.Dragging() }

// MinLevel returns the lowest level shown.
func (v *Viewer) MinLevel() log.Level { return v.minLevel }

// Position returns the first visible entry line.
func (v *Viewer) Position() int { return v.area.Position() }

// View implements modal.Content. Entries are re-read on every render.
func (v *Viewer) View(width int) string {
	v.area.SetSize(width, v.height)
	v.area.SetContent(v.content(max(width-1, 1)))
	if v.follow {
		v.area.ScrollTo(maxEntries)
	}
	return v.area.View() + "\n" + v.filterHint()
}

// Update implements modal.Interactive.
func (v *Viewer) Update(msg tea.Msg) (bool, tea.Cmd) {
	if mouse, ok := msg.(tea.MouseMsg); ok {
		return v.handleMouse(mouse)
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	pos := v.area.Position()
	switch km.String() {
	case "c":
		log.ClearBuffer()
	case "d":
		v.minLevel = log.LevelDebug
	case "i":
		v.minLevel = log.LevelInfo
	case "w":
		v.minLevel = log.LevelWarn
	case "e":
		v.minLevel = log.LevelError
	case "j", "down":
		v.follow = false
		v.area.ScrollTo(pos + 1)
	case "k", "up":
		v.follow = false
		v.area.ScrollTo(pos - 1)
	case "g", "home":
		v.follow = false
		v.area.ScrollTo(0)
	case "G", "end":
		v.follow = true
	default:
		return false, nil
	}
	return true, nil
}

// handleMouse scrolls by wheel or scrollbar. Any mouse scroll stops
// following the newest entry.
func (v *Viewer) handleMouse(msg tea.MouseMsg) (bool, tea.Cmd) {
	if !v.area.Dragging() && !v.area.Bounds().Contains(msg.X, msg.Y) {
		return false, nil
	}
	before := v.area.Position()
	var cmd tea.Cmd
	v.area, cmd = v.area.Update(msg)
	if v.area.Dragging() || v.area.Position() != before {
		v.follow = false
	}
	return true, cmd
}

func (v *Viewer) content(width int) string {
	var lines []string
	for _, entry := range log.GetRecentLogs(maxEntries) {
		if MatchesLevel(entry, v.minLevel) {
			lines = append(lines, colorize(entry, width))
		}
	}
	if len(lines) == 0 {
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

// levelOf reads the level tag of a formatted entry.
func levelOf(entry string) (log.Level, bool) {
	switch {
	case strings.Contains(entry, "[ERROR]"):
		return log.LevelError, true
	case strings.Contains(entry, "[WARN]"):
		return log.LevelWarn, true
	case strings.Contains(entry, "[INFO]"):
		return log.LevelInfo, true
	case strings.Contains(entry, "[DEBUG]"):
		return log.LevelDebug, true
	}
	return 0, false
}

// MatchesLevel reports whether entry is at or above min. Entries without a
// level tag always match.
func MatchesLevel(entry string, min log.Level) bool {
	level, ok := levelOf(entry)
	return !ok || level >= min
}

func colorize(entry string, width int) string {
	entry = strings.TrimSuffix(entry, "\n")
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width, "...")
	}

	color := styles.TextPrimaryColor
	if level, ok := levelOf(entry); ok {
		switch level {
		case log.LevelError:
			color = styles.StatusErrorColor
		case log.LevelWarn:
			color = styles.StatusWarningColor
		case log.LevelInfo:
			color = styles.StatusInfoColor
		case log.LevelDebug:
			color = styles.TextMutedColor
		}
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

// filterHint lists the filter keys with the active level in bold.
func (v *Viewer) filterHint() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, f := range []struct {
		label string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	} {
		if v.minLevel == f.level {
			parts = append(parts, active.Render(f.label))
		} else {
			parts = append(parts, hint.Render(f.label))
		}
	}
	return strings.Join(parts, "  ")
}

package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rungrid/rungrid/internal/geom"
	"github.com/rungrid/rungrid/internal/keys"
	"github.com/rungrid/rungrid/internal/log"
	"github.com/rungrid/rungrid/internal/pointer"
	"github.com/rungrid/rungrid/internal/ui/markdown"
	"github.com/rungrid/rungrid/internal/ui/scrollarea"
)

const (
	// helpHeight is the number of reference lines visible at once.
	helpHeight = 12
	helpID     = "help"
)

// helpContent is the key reference shown in the help modal: markdown
// rendered with glamour inside a scroll area.
type helpContent struct {
	style  string
	source string
	width  int
	area   scrollarea.Model
}

func newHelpContent(style string, capture *pointer.Capture) *helpContent {
	return &helpContent{
		style:  style,
		source: helpMarkdown(),
		area:   scrollarea.New(helpID, scrollarea.WithCapture(capture)),
	}
}

// SetBounds places the scroll area where the modal drew it.
func (h *helpContent) SetBounds(r geom.Rect) { h.area.SetOrigin(r.X, r.Y) }

// View renders the reference, re-wrapping when the card width changes.
func (h *helpContent) View(width int) string {
	if width != h.width {
		h.width = width
		h.area.SetSize(width, helpHeight)
		r, err := markdown.New(max(width-2, 10), h.style)
		if err != nil {
			log.Warn(log.CatUI, "Help renderer unavailable", "error", err)
		}
		h.area.SetContent(r.RenderOr(h.source))
	}
	return h.area.View()
}

// Update scrolls the reference by key, wheel or scrollbar.
func (h *helpContent) Update(msg tea.Msg) (bool, tea.Cmd) {
	if mouse, ok := msg.(tea.MouseMsg); ok {
		return h.handleMouse(mouse)
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	pos := h.area.Position()
	switch {
	case key.Matches(km, keys.Shell.Up):
		h.area.ScrollTo(pos - 1)
	case key.Matches(km, keys.Shell.Down):
		h.area.ScrollTo(pos + 1)
	case key.Matches(km, keys.Scroll.LineUp, keys.Scroll.LineDown,
		keys.Scroll.PageUp, keys.Scroll.PageDown, keys.Scroll.Top, keys.Scroll.Bottom):
		var cmd tea.Cmd
		h.area, cmd = h.area.Update(km)
		return true, cmd
	default:
		return false, nil
	}
	return true, nil
}

func (h *helpContent) handleMouse(msg tea.MouseMsg) (bool, tea.Cmd) {
	if !h.area.Dragging() && !h.area.Bounds().Contains(msg.X, msg.Y) {
		return false, nil
	}
	var cmd tea.Cmd
	h.area, cmd = h.area.Update(msg)
	return true, cmd
}

// Cancel drops a drag left behind when the modal closes mid-gesture.
func (h *helpContent) Cancel() { h.area.Cancel() }

// Position returns the first visible reference line.
func (h *helpContent) Position() int { return h.area.Position() }

// Area returns the reference's scroll area.
func (h *helpContent) Area() scrollarea.Model { return h.area }

func helpMarkdown() string {
	var b strings.Builder
	b.WriteString("## Launcher\n\n")
	for _, group := range keys.Shell.FullHelp() {
		writeBindings(&b, group...)
	}
	b.WriteString("\n## Dialogs\n\n")
	writeBindings(&b, keys.Modal.Confirm, keys.Modal.NextButton, keys.Modal.PrevButton, keys.Modal.Browse, keys.Modal.Escape)
	b.WriteString("\n## Menus\n\n")
	writeBindings(&b, keys.Menu.Up, keys.Menu.Down, keys.Menu.Select, keys.Menu.Close)
	b.WriteString("\nRight click an item for its menu, or the title bar for the main menu. ")
	b.WriteString("Drag the scrollbar thumb or click its track to jump.\n")
	return b.String()
}

func writeBindings(b *strings.Builder, bindings ...key.Binding) {
	for _, k := range bindings {
		h := k.Help()
		fmt.Fprintf(b, "- `%s` %s\n", h.Key, h.Desc)
	}
}

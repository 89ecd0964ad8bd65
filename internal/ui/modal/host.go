package modal

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rungrid/rungrid/internal/geom"
	"github.com/rungrid/rungrid/internal/keys"
	"github.com/rungrid/rungrid/internal/ui/overlay"
	"github.com/rungrid/rungrid/internal/ui/styles"
)

// noFocus renders buttons of lower layers without a focus ring.
const noFocus Button = -1

// Host renders every open modal and routes input to the topmost one.
// While any modal is open the host consumes all key and mouse input.
type Host struct {
	stack    *Stack
	labels   Labels
	width    int
	height   int
	focus    Button
	focusID  string
	spinner  spinner.Model
	spinning bool
	bar      progress.Model
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithLabels overrides the default button labels.
func WithLabels(l Labels) HostOption {
	return func(h *Host) { h.labels = l.withDefaults() }
}

// NewHost creates a host for stack.
func NewHost(stack *Stack, opts ...HostOption) Host {
	h := Host{
		stack:  stack,
		labels: DefaultLabels(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.SpinnerColor)),
		),
		bar: progress.New(progress.WithGradient(styles.ProgressGradientStart, styles.ProgressGradientEnd)),
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Stack returns the store this host renders.
func (h Host) Stack() *Stack { return h.stack }

// Active reports whether any modal is open.
func (h Host) Active() bool { return h.stack.Len() > 0 }

// Focus returns the focused button of the topmost modal.
func (h Host) Focus() Button { return h.focus }

// SetSize updates the viewport size used for centering.
func (h *Host) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// Update handles action results, spinner ticks and, while a modal is open,
// all key and mouse input.
func (h Host) Update(msg tea.Msg) (Host, tea.Cmd) {
	var cmds []tea.Cmd
	h.syncFocus()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.SetSize(msg.Width, msg.Height)

	case ActionDoneMsg:
		if err := h.stack.Resolve(msg); err != nil {
			failed := ActionFailedMsg{ID: msg.ID, Which: msg.Which, Err: err}
			cmds = append(cmds, func() tea.Msg { return failed })
		}
		if msg.Follow != nil {
			follow := msg.Follow
			cmds = append(cmds, func() tea.Msg { return follow })
		}

	case spinner.TickMsg:
		h.spinning = h.needsSpinner()
		if !h.spinning {
			return h, nil
		}
		var cmd tea.Cmd
		h.spinner, cmd = h.spinner.Update(msg)
		return h, cmd

	case tea.KeyMsg:
		if h.Active() {
			cmds = append(cmds, h.handleKey(msg))
		}

	case tea.MouseMsg:
		if h.Active() {
			cmds = append(cmds, h.handleMouse(msg))
		}

	default:
		if top, ok := h.stack.Top(); ok {
			if ic, ok := top.Content.(Interactive); ok {
				_, cmd := ic.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	h.syncFocus()
	if !h.spinning && h.needsSpinner() {
		h.spinning = true
		cmds = append(cmds, h.spinner.Tick)
	}
	return h, tea.Batch(cmds...)
}

func (h *Host) handleKey(msg tea.KeyMsg) tea.Cmd {
	top, _ := h.stack.Top()

	if key.Matches(msg, keys.Modal.Escape) {
		if closed, _ := h.stack.Escape(); closed != "" {
			return closedCmd(closed)
		}
		return nil
	}

	if ic, ok := top.Content.(Interactive); ok {
		if handled, cmd := ic.Update(msg); handled {
			return cmd
		}
	}

	_, secondary, show := ActionLabels(top, h.labels)
	if !show {
		return nil
	}

	switch {
	case key.Matches(msg, keys.Modal.NextButton), key.Matches(msg, keys.Modal.PrevButton):
		if secondary != "" {
			if h.focus == ButtonPrimary {
				h.focus = ButtonSecondary
			} else {
				h.focus = ButtonPrimary
			}
		}
	case key.Matches(msg, keys.Modal.Confirm):
		return h.press(top.ID, h.focus)
	}
	return nil
}

func (h *Host) handleMouse(msg tea.MouseMsg) tea.Cmd {
	top, _ := h.stack.Top()

	// Interactive content sees every pointer event first, including motion
	// and release, so scrollable bodies can track wheel and drag.
	if ic, ok := top.Content.(Interactive); ok {
		if b, ok := top.Content.(Bounded); ok {
			b.SetBounds(h.ContentRect(top))
		}
		if handled, cmd := ic.Update(msg); handled {
			return cmd
		}
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	if top.Closable && inZone(zoneID(top.ID, "close"), msg) {
		h.stack.Close(top.ID)
		return closedCmd(top.ID)
	}
	if _, secondary, show := ActionLabels(top, h.labels); show {
		if inZone(zoneID(top.ID, "primary"), msg) {
			return h.press(top.ID, ButtonPrimary)
		}
		if secondary != "" && inZone(zoneID(top.ID, "secondary"), msg) {
			return h.press(top.ID, ButtonSecondary)
		}
	}

	// Presses on the card never reach the backdrop.
	if h.CardRect(top).Contains(msg.X, msg.Y) {
		return nil
	}
	if h.stack.Backdrop(top.ID) {
		return closedCmd(top.ID)
	}
	return nil
}

// press runs a button's action. A modal without an action resolves at once.
func (h *Host) press(id string, which Button) tea.Cmd {
	var cmd tea.Cmd
	if which == ButtonSecondary {
		cmd = h.stack.Cancel(id)
	} else {
		cmd = h.stack.Confirm(id)
	}
	if _, open := h.stack.Get(id); !open {
		return tea.Batch(cmd, closedCmd(id))
	}
	return cmd
}

func (h *Host) syncFocus() {
	top, ok := h.stack.Top()
	if !ok {
		h.focusID = ""
		h.focus = ButtonPrimary
		return
	}
	if top.ID != h.focusID {
		h.focusID = top.ID
		h.focus = ButtonPrimary
	}
}

func (h Host) needsSpinner() bool {
	for _, e := range h.stack.entries {
		if e.Kind == KindProgress && e.Progress == nil && e.Content == nil {
			return true
		}
	}
	return false
}

// cardWidth fits the entry's size into the viewport.
func (h Host) cardWidth(e Entry) int {
	w := e.Size.Width()
	if h.width > 0 {
		w = min(w, max(h.width-2, 8))
	}
	return w
}

func (h Host) renderEntry(e Entry, top bool) card {
	focus := noFocus
	if top {
		focus = h.focus
	}
	return render(e, renderOptions{
		labels:  h.labels,
		width:   h.cardWidth(e),
		focus:   focus,
		spinner: h.spinner.View(),
		bar:     h.bar,
	})
}

func (h Host) placement() overlay.Config {
	return overlay.Config{Width: h.width, Height: h.height, Position: overlay.Center}
}

// CardRect returns the screen rectangle of an entry's card.
func (h Host) CardRect(e Entry) geom.Rect {
	c := h.renderEntry(e, true)
	x, y := overlay.Origin(h.placement(), c.view)
	return geom.Rect{X: x, Y: y, W: lipgloss.Width(c.view), H: lipgloss.Height(c.view)}
}

// ContentRect returns the screen rectangle of an entry's content block. It
// is empty when the entry has no content or the content renders nothing.
func (h Host) ContentRect(e Entry) geom.Rect {
	c := h.renderEntry(e, true)
	if c.body.Empty() {
		return geom.Rect{}
	}
	x, y := overlay.Origin(h.placement(), c.view)
	return c.body.Offset(x, y)
}

// Layer is one modal in paint order.
type Layer struct {
	ID string
	Z  int
}

// Layers returns the open modals bottom first with their z-index.
func (h Host) Layers() []Layer {
	layers := make([]Layer, 0, h.stack.Len())
	for i, e := range h.stack.entries {
		layers = append(layers, Layer{ID: e.ID, Z: ZIndex(i)})
	}
	return layers
}

// View paints each modal over bg, bottom first. Every layer dims what lies
// beneath it, so only the topmost card keeps its colours and click zones.
func (h Host) View(bg string) string {
	if !h.Active() {
		return bg
	}
	out := bg
	entries := h.stack.Entries()
	for i, e := range entries {
		out = overlay.Dim(out, styles.BackdropColor)
		out = overlay.Place(h.placement(), h.renderEntry(e, i == len(entries)-1).view, out)
	}
	return out
}

func inZone(id string, msg tea.MouseMsg) bool {
	z := zone.Get(id)
	return z != nil && z.InBounds(msg)
}

func closedCmd(id string) tea.Cmd {
	return func() tea.Msg { return ClosedMsg{ID: id} }
}

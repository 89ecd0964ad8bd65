package scrollarea

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rungrid/rungrid/internal/geom"
	"github.com/rungrid/rungrid/internal/keys"
	"github.com/rungrid/rungrid/internal/log"
	"github.com/rungrid/rungrid/internal/pointer"
	"github.com/rungrid/rungrid/internal/ui/styles"
)

// WheelDelta is the number of lines one wheel notch scrolls.
const WheelDelta = 3

const (
	trackGlyph = "░"
	thumbGlyph = "█"
)

var (
	trackStyle = lipgloss.NewStyle().Foreground(styles.ScrollTrackColor)
	thumbStyle = lipgloss.NewStyle().Foreground(styles.ScrollThumbColor)
)

// DragStartedMsg is emitted when a thumb drag begins.
type DragStartedMsg struct {
	ID string
}

// DragEndedMsg is emitted when a thumb drag ends.
type DragEndedMsg struct {
	ID string
}

// Model is a vertically scrollable region with a one-column scrollbar on its
// right edge.
type Model struct {
	id       string
	viewport viewport.Model
	ctrl     *Controller
	capture  *pointer.Capture

	x, y          int
	width, height int
}

// Option configures a Model.
type Option func(*Model)

// WithCapture shares a pointer capture with the rest of the UI so a drag keeps
// receiving motion after the pointer leaves the scrollbar.
func WithCapture(c *pointer.Capture) Option {
	return func(m *Model) { m.capture = c }
}

// WithMinThumb sets the minimum thumb size in cells.
func WithMinThumb(n int) Option {
	return func(m *Model) { m.ctrl = NewController(n) }
}

// New creates a scroll area. The id names it as a pointer capture owner.
func New(id string, opts ...Option) Model {
	m := Model{
		id:       id,
		viewport: viewport.New(0, 0),
		ctrl:     NewController(1),
		capture:  &pointer.Capture{},
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns the capture owner name.
func (m Model) ID() string { return m.id }

// SetSize sets the outer size, scrollbar column included.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 0)
	m.height = max(height, 0)
	m.viewport.Width = max(m.width-1, 0)
	m.viewport.Height = m.height
	m.sync()
}

// SetOrigin records where the area is drawn on screen, for mouse mapping.
func (m *Model) SetOrigin(x, y int) {
	m.x, m.y = x, y
}

// SetContent replaces the content, keeping the position where possible.
func (m *Model) SetContent(s string) {
	m.viewport.SetContent(s)
	m.sync()
}

// Width returns the content width, scrollbar excluded.
func (m Model) Width() int { return m.viewport.Width }

// Height returns the visible height.
func (m Model) Height() int { return m.height }

// Position returns the first visible line.
func (m Model) Position() int { return m.ctrl.Position() }

// Metrics returns the current thumb geometry.
func (m Model) Metrics() Metrics { return m.ctrl.Metrics() }

// Dragging reports whether a thumb drag is in progress.
func (m Model) Dragging() bool { return m.ctrl.Dragging() }

// Bounds returns the on-screen rectangle.
func (m Model) Bounds() geom.Rect {
	return geom.Rect{X: m.x, Y: m.y, W: m.width, H: m.height}
}

// LineAt maps a screen row to a content line, or -1 outside the area.
func (m Model) LineAt(x, y int) int {
	if !m.Bounds().Contains(x, y) || x == m.barX() {
		return -1
	}
	line := y - m.y + m.ctrl.Position()
	if line >= m.viewport.TotalLineCount() {
		return -1
	}
	return line
}

// ScrollTo moves to pos, clamped.
func (m *Model) ScrollTo(pos int) {
	m.ctrl.ScrollTo(pos)
	m.viewport.SetYOffset(m.ctrl.Position())
}

// EnsureVisible scrolls the minimum needed to show line.
func (m *Model) EnsureVisible(line int) {
	pos := m.ctrl.Position()
	switch {
	case line < pos:
		m.ScrollTo(line)
	case m.height > 0 && line >= pos+m.height:
		m.ScrollTo(line - m.height + 1)
	}
}

func (m *Model) sync() {
	m.ctrl.SetExtents(m.viewport.TotalLineCount(), m.viewport.Height)
	m.ScrollTo(m.viewport.YOffset)
}

func (m Model) barX() int { return m.x + m.width - 1 }

// Update handles scroll keys, the mouse wheel and scrollbar presses and drags.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	pos := m.ctrl.Position()
	switch {
	case key.Matches(msg, keys.Scroll.LineUp):
		m.ScrollTo(pos - 1)
	case key.Matches(msg, keys.Scroll.LineDown):
		m.ScrollTo(pos + 1)
	case key.Matches(msg, keys.Scroll.PageUp):
		m.ScrollTo(pos - max(m.height, 1))
	case key.Matches(msg, keys.Scroll.PageDown):
		m.ScrollTo(pos + max(m.height, 1))
	case key.Matches(msg, keys.Scroll.Top):
		m.ScrollTo(0)
	case key.Matches(msg, keys.Scroll.Bottom):
		m.ScrollTo(m.viewport.TotalLineCount())
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	// A drag owns every pointer event until release, wherever it happens.
	if m.ctrl.Dragging() {
		switch msg.Action {
		case tea.MouseActionMotion:
			if m.ctrl.DragTo(msg.Y - m.y) {
				m.viewport.SetYOffset(m.ctrl.Position())
			}
		case tea.MouseActionRelease:
			return m, m.endDrag()
		}
		return m, nil
	}

	if !m.Bounds().Contains(msg.X, msg.Y) || msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ScrollTo(m.ctrl.Position() - WheelDelta)
	case tea.MouseButtonWheelDown:
		m.ScrollTo(m.ctrl.Position() + WheelDelta)
	case tea.MouseButtonLeft:
		if msg.X != m.barX() {
			return m, nil
		}
		offset := msg.Y - m.y
		if m.ctrl.IsOnThumb(offset) {
			return m, m.beginDrag(offset)
		}
		if m.ctrl.TrackPress(offset) {
			m.viewport.SetYOffset(m.ctrl.Position())
		}
	}
	return m, nil
}

func (m *Model) beginDrag(offset int) tea.Cmd {
	if !m.capture.Acquire(m.id) {
		return nil
	}
	if !m.ctrl.BeginDrag(offset) {
		m.capture.Release(m.id)
		return nil
	}
	log.Debug(log.CatScroll, "Drag started", "id", m.id, "offset", offset, "position", m.ctrl.Position())
	id := m.id
	return func() tea.Msg { return DragStartedMsg{ID: id} }
}

func (m *Model) endDrag() tea.Cmd {
	m.ctrl.EndDrag()
	m.capture.Release(m.id)
	log.Debug(log.CatScroll, "Drag ended", "id", m.id, "position", m.ctrl.Position())
	id := m.id
	return func() tea.Msg { return DragEndedMsg{ID: id} }
}

// Cancel ends any drag without emitting a message, e.g. when the area is
// torn down mid-gesture.
func (m *Model) Cancel() {
	if m.ctrl.Dragging() {
		m.ctrl.EndDrag()
		m.capture.Release(m.id)
	}
}

// View renders the visible content and the scrollbar column.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), m.bar())
}

func (m Model) bar() string {
	metrics := m.ctrl.Metrics()
	rows := make([]string, m.height)
	for i := range rows {
		switch {
		case !metrics.CanScroll:
			rows[i] = " "
		case i >= metrics.ThumbOffset && i < metrics.ThumbOffset+metrics.ThumbSize:
			rows[i] = thumbStyle.Render(thumbGlyph)
		default:
			rows[i] = trackStyle.Render(trackGlyph)
		}
	}
	return strings.Join(rows, "\n")
}

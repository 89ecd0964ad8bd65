package toaster

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/rungrid/rungrid/internal/geom"
	"github.com/rungrid/rungrid/internal/ui/overlay"
	"github.com/rungrid/rungrid/internal/ui/styles"
)

// MaxWidth is the widest a toast card gets.
const MaxWidth = 44

// DismissedMsg reports a toast closed by a click.
type DismissedMsg struct {
	ID string
}

// Model renders the queue as a stack of cards anchored to the bottom-right
// corner, oldest on top.
type Model struct {
	queue  *Queue
	width  int
	height int
}

// New creates a toaster model over q.
func New(q *Queue) Model {
	return Model{queue: q}
}

// Queue returns the underlying queue.
func (m Model) Queue() *Queue { return m.queue }

// Visible reports whether any toast is showing.
func (m Model) Visible() bool { return m.queue.Len() > 0 }

// SetSize sets the viewport dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Notify is a shorthand for Queue().Notify that drops the id.
func (m Model) Notify(p Payload) tea.Cmd {
	_, cmd := m.queue.Notify(p)
	return cmd
}

// Update handles expiry timers, resizes and clicks on toasts.
// The bool reports whether the message was consumed.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.SetSize(msg.Width, msg.Height)
	case ExpireMsg:
		m.queue.Expire(msg)
		return m, nil, true
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil, false
		}
		for _, r := range m.Rects() {
			if r.Rect.Contains(msg.X, msg.Y) {
				m.queue.Dismiss(r.ID)
				id := r.ID
				return m, func() tea.Msg { return DismissedMsg{ID: id} }, true
			}
		}
	}
	return m, nil, false
}

// cardWidth fits MaxWidth into the viewport.
func (m Model) cardWidth() int {
	w := MaxWidth
	if m.width > 0 {
		w = min(w, max(m.width-2, 12))
	}
	return w
}

func icon(t Tone) string {
	switch t {
	case ToneSuccess:
		return "✓"
	case ToneWarning:
		return "!"
	case ToneError:
		return "✗"
	default:
		return "i"
	}
}

func borderColor(t Tone) lipgloss.AdaptiveColor {
	switch t {
	case ToneSuccess:
		return styles.ToastBorderSuccessColor
	case ToneWarning:
		return styles.ToastBorderWarnColor
	case ToneError:
		return styles.ToastBorderErrorColor
	default:
		return styles.ToastBorderInfoColor
	}
}

// renderCard draws one toast. Width includes the border.
func renderCard(e Entry, width int) string {
	color := borderColor(e.Tone)
	inner := max(width-4, 4)

	head := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon(e.Tone))
	if e.Title != "" {
		head += " " + lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor).Render(e.Title)
	}
	lines := []string{styles.TruncateString(head, inner)}
	if e.Message != "" {
		for _, l := range strings.Split(wordwrap.String(e.Message, inner), "\n") {
			lines = append(lines, styles.TruncateString(styles.DescriptionStyle.Render(l), inner))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}

// Placed is a toast with its screen rectangle.
type Placed struct {
	ID   string
	Rect geom.Rect
}

// Rects returns where each toast is drawn.
func (m Model) Rects() []Placed {
	cards := m.cards()
	out := make([]Placed, len(cards))
	if len(cards) == 0 {
		return out
	}
	stack := strings.Join(cards, "\n")
	x, y := overlay.Origin(m.placement(), stack)
	for i, c := range cards {
		h := lipgloss.Height(c)
		out[i] = Placed{ID: m.queue.entries[i].ID, Rect: geom.Rect{X: x, Y: y, W: lipgloss.Width(c), H: h}}
		y += h
	}
	return out
}

func (m Model) cards() []string {
	w := m.cardWidth()
	cards := make([]string, 0, m.queue.Len())
	for _, e := range m.queue.entries {
		cards = append(cards, renderCard(e, w))
	}
	return cards
}

func (m Model) placement() overlay.Config {
	return overlay.Config{Width: m.width, Height: m.height, Position: overlay.BottomRight, PadX: 1, PadY: 1}
}

// View paints the toasts over bg.
func (m Model) View(bg string) string {
	if !m.Visible() {
		return bg
	}
	return overlay.Place(m.placement(), strings.Join(m.cards(), "\n"), bg)
}

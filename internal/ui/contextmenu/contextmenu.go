// Package contextmenu provides a floating menu anchored at a screen point.
// The menu is measured before it is placed, flips away from edges it would
// overflow and stays clamped inside the viewport.
package contextmenu

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rungrid/rungrid/internal/geom"
	"github.com/rungrid/rungrid/internal/keys"
	"github.com/rungrid/rungrid/internal/log"
	"github.com/rungrid/rungrid/internal/ui/overlay"
	"github.com/rungrid/rungrid/internal/ui/styles"
)

// DefaultPadding is the minimum gap between the menu and the viewport edge.
const DefaultPadding = 1

// Tone selects an item's colour.
type Tone int

const (
	ToneNormal Tone = iota
	ToneDanger
)

// Item is one menu row.
type Item struct {
	ID       string
	Label    string
	Disabled bool
	Tone     Tone
}

// SelectMsg is sent when an enabled item is chosen. The menu is already
// closed when it arrives.
type SelectMsg struct {
	ID     string
	Target any
}

// CloseMsg is sent when the menu is dismissed without a selection.
type CloseMsg struct{}

// placeMsg triggers placement one frame after Open, once the menu can be
// measured. seq discards requests from an earlier Open.
type placeMsg struct {
	seq int
}

type state int

const (
	stateIdle state = iota
	statePlacing
	stateOpen
)

// Model holds the menu state.
type Model struct {
	state   state
	items   []Item
	target  any
	anchor  geom.Point
	pos     geom.Point
	size    geom.Size
	cursor  int
	seq     int
	padding int

	viewportWidth  int
	viewportHeight int
}

// New creates a closed menu.
func New() Model {
	return Model{padding: DefaultPadding, cursor: -1}
}

// WithPadding sets the edge padding.
func (m Model) WithPadding(p int) Model {
	m.padding = max(p, 0)
	return m
}

// SetSize sets the viewport dimensions and re-places an open menu.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	if m.state == stateOpen {
		m.place()
	}
	return m
}

// Open shows items anchored at (x, y). target is handed back in SelectMsg.
// The returned command completes placement on the next frame.
func (m Model) Open(x, y int, items []Item, target any) (Model, tea.Cmd) {
	m.state = statePlacing
	m.items = items
	m.target = target
	m.anchor = geom.Point{X: x, Y: y}
	m.cursor = m.next(-1, 1)
	m.seq++
	seq := m.seq
	log.Debug(log.CatMenu, "Menu opened", "x", x, "y", y, "items", len(items))
	return m, func() tea.Msg { return placeMsg{seq: seq} }
}

// Close hides the menu without emitting anything.
func (m Model) Close() Model {
	m.state = stateIdle
	m.items = nil
	m.target = nil
	m.cursor = -1
	return m
}

// IsOpen reports whether the menu is placing or shown.
func (m Model) IsOpen() bool { return m.state != stateIdle }

// Placed reports whether the menu has been measured and positioned.
func (m Model) Placed() bool { return m.state == stateOpen }

// Position returns the top-left corner of the placed menu.
func (m Model) Position() geom.Point { return m.pos }

// Rect returns the placed menu's screen rectangle.
func (m Model) Rect() geom.Rect {
	if m.state != stateOpen {
		return geom.Rect{}
	}
	return geom.Rect{X: m.pos.X, Y: m.pos.Y, W: m.size.W, H: m.size.H}
}

// Cursor returns the highlighted item index, or -1.
func (m Model) Cursor() int { return m.cursor }

func (m *Model) place() {
	box := m.box()
	m.size = geom.Size{W: lipgloss.Width(box), H: lipgloss.Height(box)}
	m.pos = geom.PlaceFloating(m.anchor, m.size, geom.Size{W: m.viewportWidth, H: m.viewportHeight}, m.padding)
}

// next returns the next enabled index after from in direction dir, or from
// when there is none.
func (m Model) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.items); i += dir {
		if !m.items[i].Disabled {
			return i
		}
	}
	if from < 0 {
		return -1
	}
	return from
}

// Update handles placement, keys and mouse input while the menu is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case placeMsg:
		if msg.seq == m.seq && m.state == statePlacing {
			m.state = stateOpen
			m.place()
		}
		return m, nil
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	}

	if m.state == stateIdle {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Menu.Up):
			m.cursor = m.next(m.cursor, -1)
		case key.Matches(msg, keys.Menu.Down):
			m.cursor = m.next(m.cursor, 1)
		case key.Matches(msg, keys.Menu.Select):
			return m.choose(m.cursor)
		case key.Matches(msg, keys.Menu.Close):
			return m.dismiss()
		}
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	rect := m.Rect()
	row := m.rowAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		if row >= 0 && !m.items[row].Disabled {
			m.cursor = row
		}
	case tea.MouseActionPress:
		if !rect.Contains(msg.X, msg.Y) {
			return m.dismiss()
		}
		if msg.Button == tea.MouseButtonLeft && row >= 0 {
			return m.choose(row)
		}
	}
	return m, nil
}

// rowAt maps a screen point to an item index, or -1 on the border or outside.
func (m Model) rowAt(x, y int) int {
	rect := m.Rect()
	if !rect.Contains(x, y) {
		return -1
	}
	row := y - rect.Y - 1
	if row < 0 || row >= len(m.items) {
		return -1
	}
	return row
}

func (m Model) choose(i int) (Model, tea.Cmd) {
	if i < 0 || i >= len(m.items) || m.items[i].Disabled {
		return m, nil
	}
	sel := SelectMsg{ID: m.items[i].ID, Target: m.target}
	log.Debug(log.CatMenu, "Menu item selected", "id", sel.ID)
	m = m.Close()
	return m, func() tea.Msg { return sel }
}

func (m Model) dismiss() (Model, tea.Cmd) {
	log.Debug(log.CatMenu, "Menu dismissed")
	m = m.Close()
	return m, func() tea.Msg { return CloseMsg{} }
}

func itemStyle(it Item, selected bool) lipgloss.Style {
	switch {
	case it.Disabled:
		return styles.MenuItemDisabledStyle
	case selected:
		return styles.MenuItemSelectedStyle
	case it.Tone == ToneDanger:
		return styles.MenuItemDangerStyle
	default:
		return styles.MenuItemStyle
	}
}

// box renders the bordered item list.
func (m Model) box() string {
	width := 0
	for _, it := range m.items {
		width = max(width, runewidth.StringWidth(it.Label))
	}

	rows := make([]string, len(m.items))
	for i, it := range m.items {
		rows[i] = itemStyle(it, i == m.cursor).Render(runewidth.FillRight(it.Label, width))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Render(strings.Join(rows, "\n"))
}

// View renders the menu box, or "" until it has been placed.
func (m Model) View() string {
	if m.state != stateOpen {
		return ""
	}
	return m.box()
}

// Overlay paints the placed menu over background.
func (m Model) Overlay(background string) string {
	if m.state != stateOpen {
		return background
	}
	return overlay.Place(overlay.Config{
		Width:    m.viewportWidth,
		Height:   m.viewportHeight,
		Position: overlay.Absolute,
		X:        m.pos.X,
		Y:        m.pos.Y,
	}, m.box(), background)
}

package shell

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rungrid/rungrid/internal/backend"
	"github.com/rungrid/rungrid/internal/geom"
	"github.com/rungrid/rungrid/internal/keys"
	"github.com/rungrid/rungrid/internal/settings"
	"github.com/rungrid/rungrid/internal/ui/contextmenu"
	"github.com/rungrid/rungrid/internal/ui/styles"
)

const (
	emptyListText = "No items. Press ctrl+r to scan for shortcuts."
	maxNameWidth  = 28
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(styles.SelectionBgColor).Foreground(styles.SelectionIndicatorColor)
	typeStyle     = lipgloss.NewStyle().Foreground(styles.StatusInfoColor)
)

func (m *Model) setItems(items []backend.Item) {
	m.items = items
	m.selected = geom.Clamp(m.selected, 0, len(items)-1)
	m.renderList()
}

func (m Model) selectedItem() (backend.Item, bool) {
	if m.selected < 0 || m.selected >= len(m.items) {
		return backend.Item{}, false
	}
	return m.items[m.selected], true
}

func (m *Model) selectIndex(i int) {
	if len(m.items) == 0 {
		m.selected = 0
		return
	}
	m.selected = geom.Clamp(i, 0, len(m.items)-1)
	m.renderList()
}

func (m *Model) renderList() {
	width := m.list.Width()
	if len(m.items) == 0 {
		m.list.SetContent(styles.MutedStyle.Render(styles.TruncateString(emptyListText, max(width, 1))))
		return
	}
	rows := make([]string, len(m.items))
	for i, it := range m.items {
		rows[i] = renderRow(it, i == m.selected, width)
	}
	m.list.SetContent(strings.Join(rows, "\n"))
	m.list.EnsureVisible(m.selected)
}

// renderRow draws one item as indicator, name, type tag and path.
func renderRow(it backend.Item, selected bool, width int) string {
	if width <= 0 {
		return ""
	}
	nameWidth := min(maxNameWidth, max(width/2, 1))
	tag := "[" + string(it.Type) + "]"
	pathWidth := width - 2 - nameWidth - 1 - len(tag) - 1

	indicator := "  "
	if selected {
		indicator = "› "
	}
	name := styles.PadRight(it.Name, nameWidth)
	path := ""
	if pathWidth > 0 {
		path = styles.TruncateMiddle(it.Path, pathWidth)
	}

	if selected {
		plain := indicator + name + " " + tag + " " + path
		return selectedStyle.Render(styles.FitWidth(plain, width))
	}
	row := indicator + name + " " + typeStyle.Render(tag) + " " + styles.MutedStyle.Render(path)
	return styles.FitWidth(row, width)
}

func (m Model) header() string {
	title := "rungrid"
	count := fmt.Sprintf("%d items", len(m.items))
	if m.query != "" {
		count += fmt.Sprintf(" matching %q", m.query)
	}
	line := titleStyle.Render(title) + styles.MutedStyle.Render(count)
	return styles.FitWidth(line, m.width)
}

func (m Model) statusLine() string {
	return styles.FitWidth(styles.StatusBarStyle.Render(m.help.ShortHelpView(keys.Shell.ShortHelp())), m.width)
}

// handleListMouse covers wheel scrolling, scrollbar presses, row clicks and
// right clicks that open a menu.
func (m Model) handleListMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	var cmd tea.Cmd
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case tea.MouseButtonLeft:
		row := m.rowAt(msg.X, msg.Y)
		if row < 0 {
			// Scrollbar column or empty space.
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
		launch := m.prefs.LaunchMode == settings.LaunchSingle || row == m.selected
		m.selectIndex(row)
		if launch {
			return m, m.launch(m.items[row])
		}
		return m, nil

	case tea.MouseButtonRight:
		if msg.Y == 0 {
			return m.openMainMenu(msg.X, msg.Y)
		}
		row := m.rowAt(msg.X, msg.Y)
		if row < 0 {
			return m, nil
		}
		m.selectIndex(row)
		return m.openItemMenu(msg.X, msg.Y, m.items[row])
	}
	return m, nil
}

// rowAt maps a screen cell to an item index, or -1.
func (m Model) rowAt(x, y int) int {
	line := m.list.LineAt(x, y)
	if line < 0 || line >= len(m.items) {
		return -1
	}
	return line
}

func (m Model) launch(it backend.Item) tea.Cmd {
	b, ctx := m.backend, m.ctx
	return func() tea.Msg {
		launched, err := b.LaunchItem(ctx, it.ID)
		if err == nil {
			it = launched
		}
		return launchedMsg{item: it, err: err}
	}
}

func itemMenu(it backend.Item) []contextmenu.Item {
	return []contextmenu.Item{
		{ID: menuOpen, Label: "Open"},
		{ID: menuEdit, Label: "Edit", Disabled: it.Type == backend.ItemTypeSystem},
		{ID: menuLocation, Label: "Open location", Disabled: it.Type == backend.ItemTypeURL},
		{ID: menuRefreshIcon, Label: "Refresh icon"},
		{ID: menuRemove, Label: "Remove", Tone: contextmenu.ToneDanger, Disabled: it.Type == backend.ItemTypeSystem},
	}
}

func mainMenu(itemCount int) []contextmenu.Item {
	return []contextmenu.Item{
		{ID: menuAddItem, Label: "Add shortcut"},
		{ID: menuAddGroup, Label: "Add group"},
		{ID: menuSettings, Label: "Settings"},
		{ID: menuScan, Label: "Scan shortcuts"},
		{ID: menuSyncIcons, Label: "Sync icons"},
		{ID: menuClear, Label: "Clear all items", Tone: contextmenu.ToneDanger, Disabled: itemCount == 0},
	}
}

func (m Model) openItemMenu(x, y int, it backend.Item) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Open(x, y, itemMenu(it), it)
	return m, cmd
}

// openItemMenuAtSelection anchors the item menu beside the selected row.
func (m Model) openItemMenuAtSelection() (Model, tea.Cmd) {
	it, ok := m.selectedItem()
	if !ok {
		return m, nil
	}
	b := m.list.Bounds()
	y := b.Y + m.selected - m.list.Position()
	return m.openItemMenu(b.X+2, y, it)
}

func (m Model) openMainMenu(x, y int) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Open(x, y, mainMenu(len(m.items)), mainMenuTarget{})
	return m, cmd
}

func (m Model) runItemAction(id string, it backend.Item) (Model, tea.Cmd) {
	b, ctx := m.backend, m.ctx
	switch id {
	case menuOpen:
		return m, m.launch(it)
	case menuEdit:
		return m.openEditItem(it)
	case menuLocation:
		return m, func() tea.Msg {
			return locationOpenedMsg{item: it, err: b.OpenItemLocation(ctx, it.ID)}
		}
	case menuRefreshIcon:
		return m, func() tea.Msg {
			updated, err := b.RefreshItemIcon(ctx, it.ID)
			return iconRefreshedMsg{item: updated, err: err}
		}
	case menuRemove:
		return m.confirmRemove(it)
	}
	return m, nil
}

func (m Model) runMainAction(id string) (Model, tea.Cmd) {
	switch id {
	case menuAddItem:
		return m.openAddItem()
	case menuAddGroup:
		return m.openAddGroup()
	case menuSettings:
		return m.openSettings()
	case menuScan:
		return m, m.beginScan()
	case menuSyncIcons:
		return m.startSync()
	case menuClear:
		return m.confirmClear()
	}
	return m, nil
}

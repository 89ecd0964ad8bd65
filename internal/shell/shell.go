// Package shell is the launcher's root Bubble Tea model. It owns the item
// list and composes the modal stack, toast queue, context menu and scroll
// area over it, routing input to whichever overlay is on top.
package shell

import (
	"context"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rungrid/rungrid/internal/backend"
	"github.com/rungrid/rungrid/internal/config"
	"github.com/rungrid/rungrid/internal/keys"
	"github.com/rungrid/rungrid/internal/log"
	"github.com/rungrid/rungrid/internal/pointer"
	"github.com/rungrid/rungrid/internal/settings"
	"github.com/rungrid/rungrid/internal/ui/contextmenu"
	"github.com/rungrid/rungrid/internal/ui/modal"
	"github.com/rungrid/rungrid/internal/ui/scrollarea"
	"github.com/rungrid/rungrid/internal/ui/toaster"
)

// listID names the item list as a pointer capture owner.
const listID = "items"

// Config wires the shell to its collaborators. Backend is required; the rest
// fall back to in-memory defaults.
type Config struct {
	Backend  backend.Commands
	Bus      *backend.Bus
	Settings *settings.Store
	UI       config.UIConfig
	Toasts   *toaster.Queue
	Modals   *modal.Stack
}

// Model is the root application state.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	backend backend.Commands
	sub     *backend.Subscription
	store   *settings.Store
	ui      config.UIConfig

	capture *pointer.Capture
	modals  modal.Host
	toasts  toaster.Model
	menu    contextmenu.Model
	list    scrollarea.Model
	help    help.Model
	helpDoc *helpContent

	items    []backend.Item
	selected int
	query    string
	prefs    settings.Preferences
	hotkeys  map[string]string

	width  int
	height int
}

// New creates the shell. Bus events are received from the moment New
// returns until Close.
func New(cfg Config) Model {
	ctx, cancel := context.WithCancel(context.Background())

	stack := cfg.Modals
	if stack == nil {
		stack = modal.NewStack(modal.WithContext(ctx))
	}
	queue := cfg.Toasts
	if queue == nil {
		queue = toaster.NewQueue(toaster.WithLifetimes(toaster.Lifetimes{
			Success: cfg.UI.Toasts.Success,
			Info:    cfg.UI.Toasts.Info,
			Warning: cfg.UI.Toasts.Warning,
			Error:   cfg.UI.Toasts.Error,
		}))
	}
	store := cfg.Settings
	if store == nil {
		store = settings.NewStore(settings.NewMemoryKV())
	}

	padding := cfg.UI.MenuPadding
	if padding == 0 {
		padding = contextmenu.DefaultPadding
	}
	minThumb := max(cfg.UI.MinThumbSize, 1)

	capture := &pointer.Capture{}
	labels := modal.Labels{
		OK:      cfg.UI.Labels.OK,
		Cancel:  cfg.UI.Labels.Cancel,
		GotIt:   cfg.UI.Labels.GotIt,
		Loading: cfg.UI.Labels.Loading,
	}

	m := Model{
		ctx:     ctx,
		cancel:  cancel,
		backend: cfg.Backend,
		store:   store,
		ui:      cfg.UI,
		capture: capture,
		modals:  modal.NewHost(stack, modal.WithLabels(labels)),
		toasts:  toaster.New(queue),
		menu:    contextmenu.New().WithPadding(padding),
		list:    scrollarea.New(listID, scrollarea.WithCapture(capture), scrollarea.WithMinThumb(minThumb)),
		help:    help.New(),
		helpDoc: newHelpContent(cfg.UI.MarkdownStyle, capture),
		prefs:   settings.DefaultPreferences(),
		hotkeys: settings.DefaultHotkeys(),
	}
	if cfg.Bus != nil {
		m.sub = cfg.Bus.Subscribe(ctx,
			backend.EventIconsUpdated,
			backend.EventScanProgress,
			backend.EventWindowShow,
			backend.EventHotkeyTrigger,
		)
	}
	m.renderList()
	return m
}

// Init loads items and settings and starts listening on the bus.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadItems(), m.loadSettings()}
	if m.sub != nil {
		cmds = append(cmds, m.sub.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(size.Width, size.Height)
		return m, nil
	}

	// A drag in progress owns the pointer until release.
	if mouse, ok := msg.(tea.MouseMsg); ok && m.capture.Held(listID) {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(mouse)
		return m, cmd
	}

	var (
		cmd     tea.Cmd
		handled bool
	)
	m.toasts, cmd, handled = m.toasts.Update(msg)
	if handled {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case backend.EventMsg:
		return m.handleEvent(msg)

	case contextmenu.SelectMsg:
		switch target := msg.Target.(type) {
		case mainMenuTarget:
			return m.runMainAction(msg.ID)
		case backend.Item:
			return m.runItemAction(msg.ID, target)
		}
		return m, nil

	case itemsLoadedMsg:
		if msg.err != nil {
			return m, m.showError("Could not load items", msg.err, "Loading items failed")
		}
		m.setItems(msg.items)
		return m, nil

	case settingsLoadedMsg:
		m.prefs = msg.prefs
		m.hotkeys = msg.hotkeys
		return m, m.applyHotkeys(msg.hotkeys)

	case hotkeysAppliedMsg:
		if msg.err != nil {
			return m, m.showError("Hotkeys unavailable", msg.err, "Registering hotkeys failed")
		}
		if len(msg.result.Issues) > 0 {
			return m, m.toasts.Notify(hotkeyWarning(msg.result.Issues))
		}
		return m, nil

	case launchedMsg:
		if msg.err != nil {
			return m, m.showError("Could not launch", msg.err, "Launch failed")
		}
		return m, m.toasts.Notify(toaster.Payload{Tone: toaster.ToneSuccess, Title: "Launched", Message: msg.item.Name})

	case locationOpenedMsg:
		if msg.err != nil {
			return m, m.showError("Could not open location", msg.err, "Opening the location failed")
		}
		return m, nil

	case iconRefreshedMsg:
		if msg.err != nil {
			return m, m.showError("Could not refresh icon", msg.err, "Refreshing the icon failed")
		}
		return m, m.loadItems()

	case scanRootsMsg:
		return m.openScanForm(msg)

	case startScanMsg:
		return m.startScan(msg.roots)

	case scanDoneMsg:
		return m.finishScan(msg)

	case syncDoneMsg:
		return m.finishSync(msg)

	case clearedMsg:
		return m, tea.Batch(
			m.toasts.Notify(toaster.Payload{Tone: toaster.ToneSuccess, Title: "Items cleared", Message: countText(msg.count, "item", "removed")}),
			m.loadItems(),
		)

	case removedMsg:
		return m, tea.Batch(
			m.toasts.Notify(toaster.Payload{Tone: toaster.ToneSuccess, Title: "Item removed", Message: msg.item.Name}),
			m.loadItems(),
		)

	case settingsSavedMsg:
		m.modals.Stack().Close(modalSettings)
		m.prefs = msg.prefs
		m.hotkeys = msg.hotkeys
		return m, tea.Batch(
			m.toasts.Notify(toaster.Payload{Tone: toaster.ToneSuccess, Title: "Settings saved"}),
			m.applyHotkeys(msg.hotkeys),
		)

	case itemSavedMsg:
		return m.finishSave(msg)

	case itemCreatedMsg:
		return m, tea.Batch(
			m.toasts.Notify(toaster.Payload{Tone: toaster.ToneSuccess, Title: "Item added", Message: msg.item.Name}),
			m.loadItems(),
		)

	case groupCreatedMsg:
		return m, m.toasts.Notify(toaster.Payload{Tone: toaster.ToneSuccess, Title: "Group created", Message: msg.group.Name})

	case pickedMsg:
		return m, m.applyPick(msg)

	case searchMsg:
		m.query = msg.query
		m.selected = 0
		return m, m.loadItems()

	case closeModalMsg:
		m.modals.Stack().Close(msg.id)
		m.releaseModalCapture()
		return m, nil

	case modal.ActionFailedMsg:
		return m, m.showError("Action failed", msg.Err, "The action could not be completed")

	case modal.ClosedMsg:
		log.Debug(log.CatUI, "Modal closed by user", "id", msg.ID)
		m.releaseModalCapture()
		return m, nil

	case scrollarea.DragStartedMsg, scrollarea.DragEndedMsg, toaster.DismissedMsg:
		return m, nil
	}

	// Everything else drives the overlays: action results, spinner ticks,
	// menu placement and form cursor blinks.
	var menuCmd tea.Cmd
	m.modals, cmd = m.modals.Update(msg)
	m.menu, menuCmd = m.menu.Update(msg)
	return m, tea.Batch(cmd, menuCmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.modals.Active() {
		m.modals, cmd = m.modals.Update(msg)
		return m, cmd
	}
	if m.menu.IsOpen() {
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Shell.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Shell.Up):
		m.selectIndex(m.selected - 1)
	case key.Matches(msg, keys.Shell.Down):
		m.selectIndex(m.selected + 1)
	case key.Matches(msg, keys.Scroll.PageUp):
		m.selectIndex(m.selected - max(m.list.Height(), 1))
	case key.Matches(msg, keys.Scroll.PageDown):
		m.selectIndex(m.selected + max(m.list.Height(), 1))
	case key.Matches(msg, keys.Scroll.Top):
		m.selectIndex(0)
	case key.Matches(msg, keys.Scroll.Bottom):
		m.selectIndex(len(m.items) - 1)
	case key.Matches(msg, keys.Scroll.LineUp), key.Matches(msg, keys.Scroll.LineDown):
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	case key.Matches(msg, keys.Shell.Launch):
		if it, ok := m.selectedItem(); ok {
			return m, m.launch(it)
		}
	case key.Matches(msg, keys.Shell.ItemMenu):
		return m.openItemMenuAtSelection()
	case key.Matches(msg, keys.Shell.MainMenu):
		return m.openMainMenu(1, 1)
	case key.Matches(msg, keys.Shell.Settings):
		return m.openSettings()
	case key.Matches(msg, keys.Shell.Scan):
		return m, m.beginScan()
	case key.Matches(msg, keys.Shell.Refresh):
		return m, m.loadItems()
	case key.Matches(msg, keys.Shell.Search):
		return m.openSearch()
	case key.Matches(msg, keys.Shell.Dismiss):
		m.toasts.Queue().Clear()
	case key.Matches(msg, keys.Shell.Help):
		return m.openHelp()
	case key.Matches(msg, keys.Shell.Logs):
		return m.openLogs()
	}
	return m, nil
}

// handleMouse routes a pointer event to the topmost surface: modal, then
// menu, then the list.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.modals.Active() {
		m.modals, cmd = m.modals.Update(msg)
		return m, cmd
	}
	if m.menu.IsOpen() {
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m.handleListMouse(msg)
}

func (m Model) handleEvent(msg backend.EventMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.Name {
	case backend.EventIconsUpdated:
		cmd = m.loadItems()

	case backend.EventScanProgress:
		if p, ok := msg.Payload.(backend.ScanProgress); ok {
			m.reportScanProgress(p)
		}

	case backend.EventWindowShow:
		m.selectIndex(0)
		cmd = m.loadItems()
		if m.prefs.FocusSearchOnShow && !m.modals.Active() {
			var open tea.Cmd
			m, open = m.openSearch()
			cmd = tea.Batch(cmd, open)
		}

	case backend.EventHotkeyTrigger:
		action, _ := msg.Payload.(string)
		log.Debug(log.CatEvents, "Hotkey triggered", "action", action)
		switch action {
		case settings.ActionOpenSettings:
			m, cmd = m.openSettings()
		case settings.ActionQuickSearch:
			m, cmd = m.openSearch()
		}
	}

	if msg.Sub != nil {
		cmd = tea.Batch(cmd, msg.Sub.Listen())
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	view := lipgloss.JoinVertical(lipgloss.Left, m.header(), m.list.View(), m.statusLine())
	view = m.menu.Overlay(view)
	view = m.modals.View(view)
	view = m.toasts.View(view)
	return zone.Scan(view)
}

// Close ends the bus subscription, cancels in-flight actions and releases
// any pointer capture.
func (m *Model) Close() {
	m.list.Cancel()
	m.releaseModalCapture()
	m.cancel()
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.modals.SetSize(width, height)
	m.toasts = m.toasts.SetSize(width, height)
	m.menu = m.menu.SetSize(width, height)
	m.list.SetSize(width, max(height-2, 0))
	m.list.SetOrigin(0, 1)
	m.help.Width = width
	m.renderList()
}

// releaseModalCapture ends a drag inside a modal that closed mid-gesture, so
// the list can take the pointer again.
func (m Model) releaseModalCapture() {
	switch owner := m.capture.Owner(); owner {
	case "", listID:
	case helpID:
		m.helpDoc.Cancel()
	default:
		m.capture.Release(owner)
	}
}

func (m Model) loadItems() tea.Cmd {
	b, ctx, query := m.backend, m.ctx, m.query
	return func() tea.Msg {
		items, err := b.ListItems(ctx, "", query)
		return itemsLoadedMsg{items: items, err: err}
	}
}

func (m Model) loadSettings() tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		return settingsLoadedMsg{prefs: store.Preferences(ctx), hotkeys: store.Hotkeys(ctx)}
	}
}

func (m Model) applyHotkeys(hotkeys map[string]string) tea.Cmd {
	ids := make([]string, 0, len(hotkeys))
	for id := range hotkeys {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	bindings := make([]backend.HotkeyBinding, 0, len(ids))
	for _, id := range ids {
		bindings = append(bindings, backend.HotkeyBinding{ID: id, Keys: hotkeys[id]})
	}

	b, ctx := m.backend, m.ctx
	return func() tea.Msg {
		res, err := b.ApplyHotkeys(ctx, bindings)
		return hotkeysAppliedMsg{result: res, err: err}
	}
}

// showError raises an Error toast with the backend's message for err.
func (m Model) showError(title string, err error, fallback string) tea.Cmd {
	log.ErrorErr(log.CatUI, title, err)
	return m.toasts.Notify(toaster.Payload{
		Tone:    toaster.ToneError,
		Title:   title,
		Message: backend.Message(err, fallback),
	})
}

// Items returns the listed items.
func (m Model) Items() []backend.Item { return slices.Clone(m.items) }

// Selected returns the index of the highlighted item.
func (m Model) Selected() int { return m.selected }

// Query returns the active filter.
func (m Model) Query() string { return m.query }

// Preferences returns the preferences in effect.
func (m Model) Preferences() settings.Preferences { return m.prefs }

// Modals returns the modal store.
func (m Model) Modals() *modal.Stack { return m.modals.Stack() }

// Toasts returns the toast store.
func (m Model) Toasts() *toaster.Queue { return m.toasts.Queue() }

// Menu returns the context menu state.
func (m Model) Menu() contextmenu.Model { return m.menu }

// List returns the item scroll area.
func (m Model) List() scrollarea.Model { return m.list }

// Capture returns the window pointer capture.
func (m Model) Capture() *pointer.Capture { return m.capture }

package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rungrid/rungrid/internal/backend"
	"github.com/rungrid/rungrid/internal/log"
	"github.com/rungrid/rungrid/internal/settings"
	"github.com/rungrid/rungrid/internal/ui/logview"
	"github.com/rungrid/rungrid/internal/ui/modal"
	"github.com/rungrid/rungrid/internal/ui/toaster"
)

const (
	// maxListedIssues caps the hotkey problems spelled out in one toast.
	maxListedIssues = 3
	logHeight       = 14
)

// hotkeyActions is the display order of bindings in the settings form.
var hotkeyActions = []string{settings.ActionToggleApp, settings.ActionQuickSearch, settings.ActionOpenSettings}

var hotkeyLabels = map[string]string{
	settings.ActionToggleApp:    "Toggle launcher hotkey",
	settings.ActionQuickSearch:  "Quick search hotkey",
	settings.ActionOpenSettings: "Open settings hotkey",
}

func (m Model) cancelLabel() string {
	if m.ui.Labels.Cancel != "" {
		return m.ui.Labels.Cancel
	}
	return modal.DefaultLabels().Cancel
}

func (m Model) gotItLabel() string {
	if m.ui.Labels.GotIt != "" {
		return m.ui.Labels.GotIt
	}
	return modal.DefaultLabels().GotIt
}

// open closes any menu and pushes p.
func (m Model) open(p modal.Payload) Model {
	m.menu = m.menu.Close()
	m.modals.Stack().Open(p)
	return m
}

func closeAction(id string) modal.Action {
	return func(context.Context) (tea.Msg, error) {
		return closeModalMsg{id: id}, nil
	}
}

// beginScan reads the roots to offer: the saved ones, else the backend's
// defaults.
func (m Model) beginScan() tea.Cmd {
	b, store, ctx := m.backend, m.store, m.ctx
	return func() tea.Msg {
		if roots, ok := store.ScanRoots(ctx); ok {
			return scanRootsMsg{roots: roots}
		}
		roots, err := b.ListScanRoots(ctx)
		return scanRootsMsg{roots: roots, err: err}
	}
}

func (m Model) openScanForm(msg scanRootsMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg.err != nil {
		cmd = m.showError("Could not read scan roots", msg.err, "Loading scan roots failed")
	}

	form := m.newPickerForm(modalScanForm, modal.Field{
		Key:         "roots",
		Label:       "Folders",
		Placeholder: "/Applications; ~/Desktop",
		Value:       strings.Join(msg.roots, "; "),
	})
	form.pickers["roots"] = m.backend.PickScanRoot
	form.appendTo["roots"] = true
	store := m.store
	m = m.open(modal.Payload{
		ID:             modalScanForm,
		Kind:           modal.KindForm,
		Title:          "Scan shortcuts",
		Description:    "Folders to search, separated by semicolons. Press ctrl+t to add one by browsing.",
		PrimaryLabel:   "Scan",
		SecondaryLabel: m.cancelLabel(),
		Content:        form,
		OnConfirm: func(ctx context.Context) (tea.Msg, error) {
			roots := settings.NormalizeRoots(splitRoots(form.Value("roots")))
			if len(roots) == 0 {
				return nil, errors.New("add at least one folder to scan")
			}
			if err := store.SaveScanRoots(ctx, roots); err != nil {
				return nil, fmt.Errorf("saving scan roots: %w", err)
			}
			return startScanMsg{roots: roots}, nil
		},
	})
	return m, cmd
}

func splitRoots(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '\n' })
}

// startScan shows a progress modal the user cannot dismiss and runs the
// scan. finishScan closes it whatever the outcome.
func (m Model) startScan(roots []string) (Model, tea.Cmd) {
	m = m.open(modal.Payload{
		ID:          modalScanProgress,
		Kind:        modal.KindProgress,
		Title:       "Scanning shortcuts",
		Description: "Preparing...",
		Closable:    modal.Bool(false),
	})

	b, ctx := m.backend, m.ctx
	return m, func() tea.Msg {
		res, err := b.ScanShortcuts(ctx, roots)
		return scanDoneMsg{result: res, err: err}
	}
}

func (m *Model) reportScanProgress(p backend.ScanProgress) {
	if _, ok := m.modals.Stack().Get(modalScanProgress); !ok {
		return
	}
	patch := modal.Patch{}
	if p.Root != "" {
		desc := "Scanning " + p.Root
		if p.RootTotal > 0 {
			desc = fmt.Sprintf("Scanning %s (%d of %d)", p.Root, p.RootIndex, p.RootTotal)
		}
		patch.Description = modal.String(desc)
	}
	if p.Path != "" {
		patch.Path = modal.String(p.Path)
	}
	if p.Percent != nil {
		patch.Progress = modal.Float(*p.Percent)
	}
	m.modals.Stack().Update(modalScanProgress, patch)
}

func (m Model) finishScan(msg scanDoneMsg) (Model, tea.Cmd) {
	m.modals.Stack().Close(modalScanProgress)
	if msg.err != nil {
		return m, m.showError("Scan failed", msg.err, "Scanning shortcuts failed")
	}
	r := msg.result
	log.Info(log.CatUI, "Scan complete", "total", r.Total, "inserted", r.Inserted, "skipped", r.Skipped)
	return m, tea.Batch(
		m.toasts.Notify(toaster.Payload{
			Tone:    toaster.ToneSuccess,
			Title:   "Scan complete",
			Message: fmt.Sprintf("Added %d, skipped %d of %d found.", r.Inserted, r.Skipped, r.Total),
		}),
		m.loadItems(),
	)
}

func (m Model) startSync() (Model, tea.Cmd) {
	m = m.open(modal.Payload{
		ID:          modalSyncProgress,
		Kind:        modal.KindProgress,
		Title:       "Syncing icons",
		Description: "Refreshing icons for every item...",
		Closable:    modal.Bool(false),
	})

	b, ctx := m.backend, m.ctx
	return m, func() tea.Msg {
		n, err := b.SyncIcons(ctx)
		return syncDoneMsg{count: n, err: err}
	}
}

func (m Model) finishSync(msg syncDoneMsg) (Model, tea.Cmd) {
	m.modals.Stack().Close(modalSyncProgress)
	if msg.err != nil {
		return m, m.showError("Icon sync failed", msg.err, "Syncing icons failed")
	}
	return m, tea.Batch(
		m.toasts.Notify(toaster.Payload{Tone: toaster.ToneSuccess, Title: "Icons synced", Message: countText(msg.count, "icon", "updated")}),
		m.loadItems(),
	)
}

func (m Model) confirmClear() (Model, tea.Cmd) {
	b := m.backend
	return m.open(modal.Payload{
		ID:           modalClearConfirm,
		Kind:         modal.KindConfirm,
		Tone:         modal.ToneDanger,
		Title:        "Clear all items?",
		Description:  "Every item is removed from the launcher. This cannot be undone.",
		PrimaryLabel: "Clear",
		OnConfirm: func(ctx context.Context) (tea.Msg, error) {
			n, err := b.ClearItems(ctx)
			if err != nil {
				return nil, err
			}
			return clearedMsg{count: n}, nil
		},
	}), nil
}

func (m Model) confirmRemove(it backend.Item) (Model, tea.Cmd) {
	b := m.backend
	return m.open(modal.Payload{
		ID:           modalRemove,
		Kind:         modal.KindConfirm,
		Tone:         modal.ToneDanger,
		Title:        "Remove item?",
		Description:  it.Name + " will be removed from the launcher.",
		Path:         it.Path,
		PrimaryLabel: "Remove",
		OnConfirm: func(ctx context.Context) (tea.Msg, error) {
			if err := b.DeleteItem(ctx, it.ID); err != nil {
				return nil, err
			}
			return removedMsg{item: it}, nil
		},
	}), nil
}

func settingsFields(p settings.Preferences, hotkeys map[string]string) []modal.Field {
	focus := "no"
	if p.FocusSearchOnShow {
		focus = "yes"
	}
	fields := []modal.Field{
		{Key: "position", Label: "Panel position (center, last, cursor)", Value: string(p.PanelPositionMode)},
		{Key: "launch", Label: "Launch with (single, double)", Value: string(p.LaunchMode)},
		{Key: "close", Label: "Hide panel on (blur, manual)", Value: string(p.PanelCloseMode)},
		{Key: "focus", Label: "Focus search on show (yes, no)", Value: focus},
	}
	for _, id := range hotkeyActions {
		fields = append(fields, modal.Field{
			Key:         "hotkey:" + id,
			Label:       hotkeyLabels[id],
			Placeholder: "Alt+Space",
			Value:       hotkeys[id],
		})
	}
	return fields
}

// parseSettings validates the settings form. Unchanged fields of base, such
// as the last window position, carry over.
func parseSettings(values map[string]string, base settings.Preferences, hotkeys map[string]string) (settings.Preferences, map[string]string, error) {
	p := base
	get := func(k string) string { return strings.ToLower(strings.TrimSpace(values[k])) }

	switch v := settings.PanelPositionMode(get("position")); v {
	case settings.PanelCenter, settings.PanelLast, settings.PanelCursor:
		p.PanelPositionMode = v
	default:
		return base, nil, fmt.Errorf("panel position must be center, last or cursor, got %q", v)
	}
	switch v := settings.LaunchMode(get("launch")); v {
	case settings.LaunchSingle, settings.LaunchDouble:
		p.LaunchMode = v
	default:
		return base, nil, fmt.Errorf("launch mode must be single or double, got %q", v)
	}
	switch v := settings.PanelCloseMode(get("close")); v {
	case settings.CloseOnBlur, settings.CloseManual:
		p.PanelCloseMode = v
	default:
		return base, nil, fmt.Errorf("hide mode must be blur or manual, got %q", v)
	}
	switch get("focus") {
	case "yes", "y", "true", "on":
		p.FocusSearchOnShow = true
	case "no", "n", "false", "off":
		p.FocusSearchOnShow = false
	default:
		return base, nil, fmt.Errorf("focus search must be yes or no, got %q", values["focus"])
	}

	out := make(map[string]string, len(hotkeys))
	for id, k := range hotkeys {
		out[id] = k
	}
	for _, id := range hotkeyActions {
		out[id] = strings.TrimSpace(values["hotkey:"+id])
	}
	return p, out, nil
}

// openSettings edits preferences and hotkeys. The modal stays open until the
// save succeeds, so a validation error can be corrected in place.
func (m Model) openSettings() (Model, tea.Cmd) {
	form := modal.NewForm(settingsFields(m.prefs, m.hotkeys)...)
	store, base, hotkeys := m.store, m.prefs, m.hotkeys
	return m.open(modal.Payload{
		ID:             modalSettings,
		Kind:           modal.KindForm,
		Title:          "Settings",
		Size:           modal.SizeLarge,
		AutoClose:      modal.Bool(false),
		PrimaryLabel:   "Save",
		SecondaryLabel: m.cancelLabel(),
		Content:        form,
		OnConfirm: func(ctx context.Context) (tea.Msg, error) {
			prefs, keys, err := parseSettings(form.Values(), base, hotkeys)
			if err != nil {
				return nil, err
			}
			if err := store.SavePreferences(ctx, prefs); err != nil {
				return nil, fmt.Errorf("saving preferences: %w", err)
			}
			if err := store.SaveHotkeys(ctx, keys); err != nil {
				return nil, fmt.Errorf("saving hotkeys: %w", err)
			}
			return settingsSavedMsg{prefs: prefs, hotkeys: keys}, nil
		},
		OnCancel: closeAction(modalSettings),
	}), nil
}

func (m Model) openSearch() (Model, tea.Cmd) {
	form := modal.NewForm(modal.Field{Key: "query", Label: "Name contains", Value: m.query})
	return m.open(modal.Payload{
		ID:             modalSearch,
		Kind:           modal.KindForm,
		Title:          "Filter items",
		Size:           modal.SizeSmall,
		PrimaryLabel:   "Apply",
		SecondaryLabel: m.cancelLabel(),
		Content:        form,
		OnConfirm: func(context.Context) (tea.Msg, error) {
			return searchMsg{query: strings.TrimSpace(form.Value("query"))}, nil
		},
	}), nil
}

func (m Model) openHelp() (Model, tea.Cmd) {
	return m.open(modal.Payload{
		ID:           modalHelp,
		Kind:         modal.KindCustom,
		Title:        "Keyboard shortcuts",
		Size:         modal.SizeLarge,
		PrimaryLabel: m.gotItLabel(),
		Content:      m.helpDoc,
	}), nil
}

// openLogs shows the recent debug log, newest last.
func (m Model) openLogs() (Model, tea.Cmd) {
	return m.open(modal.Payload{
		ID:           modalLogs,
		Kind:         modal.KindCustom,
		Title:        "Logs",
		Size:         modal.SizeLarge,
		PrimaryLabel: "Close",
		Content:      logview.New(logHeight, logview.WithCapture(m.capture)),
	}), nil
}

// hotkeyWarning lists the first few bindings that failed to register.
func hotkeyWarning(issues []backend.HotkeyIssue) toaster.Payload {
	lines := make([]string, 0, maxListedIssues+1)
	for i, is := range issues {
		if i == maxListedIssues {
			break
		}
		lines = append(lines, fmt.Sprintf("%s (%s): %s", is.ID, is.Keys, is.Reason))
	}
	if extra := len(issues) - maxListedIssues; extra > 0 {
		lines = append(lines, fmt.Sprintf("...and %d more", extra))
	}
	return toaster.Payload{
		Tone:    toaster.ToneWarning,
		Title:   "Some hotkeys were not registered",
		Message: strings.Join(lines, "\n"),
	}
}

func countText(n int, noun, verb string) string {
	if n != 1 {
		noun += "s"
	}
	return fmt.Sprintf("%d %s %s", n, noun, verb)
}

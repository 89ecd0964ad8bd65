package shell

import (
	"github.com/rungrid/rungrid/internal/backend"
	"github.com/rungrid/rungrid/internal/settings"
)

// Modal ids. Fixed ids keep a flow from opening twice.
const (
	modalScanForm     = "scan-form"
	modalScanProgress = "scan-progress"
	modalSyncProgress = "sync-progress"
	modalClearConfirm = "clear-confirm"
	modalRemove       = "remove-confirm"
	modalSettings     = "settings"
	modalSearch       = "search"
	modalHelp         = "help"
	modalLogs         = "logs"
	modalEditItem     = "edit-item"
	modalAddItem      = "add-item"
	modalAddGroup     = "add-group"
)

// Menu item ids.
const (
	menuOpen        = "open"
	menuEdit        = "edit"
	menuLocation    = "location"
	menuRefreshIcon = "refresh-icon"
	menuRemove      = "remove"

	menuAddItem   = "add-item"
	menuAddGroup  = "add-group"
	menuSettings  = "settings"
	menuScan      = "scan"
	menuSyncIcons = "sync-icons"
	menuClear     = "clear"
)

// mainMenuTarget marks a SelectMsg from the main menu.
type mainMenuTarget struct{}

type itemsLoadedMsg struct {
	items []backend.Item
	err   error
}

type settingsLoadedMsg struct {
	prefs   settings.Preferences
	hotkeys map[string]string
}

type hotkeysAppliedMsg struct {
	result backend.HotkeyApplyResult
	err    error
}

type launchedMsg struct {
	item backend.Item
	err  error
}

type locationOpenedMsg struct {
	item backend.Item
	err  error
}

type iconRefreshedMsg struct {
	item backend.Item
	err  error
}

type scanRootsMsg struct {
	roots []string
	err   error
}

type startScanMsg struct {
	roots []string
}

type scanDoneMsg struct {
	result backend.ScanResult
	err    error
}

type syncDoneMsg struct {
	count int
	err   error
}

type clearedMsg struct {
	count int
}

type removedMsg struct {
	item backend.Item
}

type settingsSavedMsg struct {
	prefs   settings.Preferences
	hotkeys map[string]string
}

type searchMsg struct {
	query string
}

// closeModalMsg closes a modal whose AutoClose is off.
type closeModalMsg struct {
	id string
}

type itemSavedMsg struct {
	item backend.Item
}

type itemCreatedMsg struct {
	item backend.Item
}

type groupCreatedMsg struct {
	group backend.Group
}

// pickedMsg carries a picker result to the form field that asked for it.
type pickedMsg struct {
	modal string
	field string
	path  string
	err   error
}

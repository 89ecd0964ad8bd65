// Package backend defines the launcher's command and event boundary: the
// domain types exchanged with the backend, the Commands contract the UI calls
// and the Bus it listens on.
package backend

import "time"

// ItemType classifies a launcher item.
type ItemType string

const (
	ItemTypeApp    ItemType = "app"
	ItemTypeURL    ItemType = "url"
	ItemTypeFolder ItemType = "folder"
	ItemTypeDoc    ItemType = "doc"
	ItemTypeSystem ItemType = "system"
)

// Valid reports whether t is a known type.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeApp, ItemTypeURL, ItemTypeFolder, ItemTypeDoc, ItemTypeSystem:
		return true
	default:
		return false
	}
}

// Item is a launchable entry.
type Item struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Path        string     `json:"path"`
	Type        ItemType   `json:"type"`
	IconPath    string     `json:"icon_path"`
	GroupID     string     `json:"group_id"`
	Tags        []string   `json:"tags"`
	Favorite    bool       `json:"favorite"`
	LaunchCount int64      `json:"launch_count"`
	LastUsedAt  *time.Time `json:"last_used_at"`
	Hidden      bool       `json:"hidden"`
}

// ItemInput creates an item.
type ItemInput struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Type     ItemType `json:"type"`
	IconPath string   `json:"icon_path"`
	GroupID  string   `json:"group_id"`
	Tags     []string `json:"tags"`
	Favorite bool     `json:"favorite"`
	Hidden   bool     `json:"hidden"`
}

// ItemUpdate replaces an item's editable fields.
type ItemUpdate struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Type     ItemType `json:"type"`
	IconPath string   `json:"icon_path"`
	GroupID  string   `json:"group_id"`
	Tags     []string `json:"tags"`
	Favorite bool     `json:"favorite"`
	Hidden   bool     `json:"hidden"`
}

// Group is a tab of items.
type Group struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Order    int    `json:"order"`
	Color    string `json:"color"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

// GroupInput creates a group.
type GroupInput struct {
	Name     string `json:"name"`
	Order    int    `json:"order"`
	Color    string `json:"color"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

// HotkeyBinding maps an action id to a key chord such as "Alt+Space".
type HotkeyBinding struct {
	ID   string `json:"id"`
	Keys string `json:"keys"`
}

// HotkeyIssue is a binding the backend could not register.
type HotkeyIssue struct {
	ID     string `json:"id"`
	Keys   string `json:"keys"`
	Reason string `json:"reason"`
}

// HotkeyApplyResult lists the bindings that failed to register.
type HotkeyApplyResult struct {
	Issues []HotkeyIssue `json:"issues"`
}

// ScanResult summarises a shortcut scan.
type ScanResult struct {
	Total    int `json:"total"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// ScanProgress is the payload of scan:progress events. Every field is
// optional.
type ScanProgress struct {
	Root      string   `json:"root,omitempty"`
	Path      string   `json:"path,omitempty"`
	RootIndex int      `json:"rootIndex,omitempty"`
	RootTotal int      `json:"rootTotal,omitempty"`
	Scanned   int      `json:"scanned,omitempty"`
	Percent   *float64 `json:"percent,omitempty"`
}

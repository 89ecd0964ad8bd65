package backend

import "context"

// Commands is the backend capability set the UI depends on. Every call may
// fail; failures are surfaced to the user and never retried.
type Commands interface {
	ListItems(ctx context.Context, groupID, query string) ([]Item, error)
	CreateItem(ctx context.Context, input ItemInput) (Item, error)
	UpdateItem(ctx context.Context, input ItemUpdate) (Item, error)
	DeleteItem(ctx context.Context, id string) error
	ClearItems(ctx context.Context) (int, error)
	LaunchItem(ctx context.Context, id string) (Item, error)
	OpenItemLocation(ctx context.Context, id string) error
	RefreshItemIcon(ctx context.Context, id string) (Item, error)

	ListGroups(ctx context.Context) ([]Group, error)
	CreateGroup(ctx context.Context, input GroupInput) (Group, error)

	// ScanShortcuts scans roots, or the default roots when roots is nil,
	// emitting scan:progress events while it runs.
	ScanShortcuts(ctx context.Context, roots []string) (ScanResult, error)
	ListScanRoots(ctx context.Context) ([]string, error)
	SyncIcons(ctx context.Context) (int, error)
	ApplyHotkeys(ctx context.Context, bindings []HotkeyBinding) (HotkeyApplyResult, error)

	PickScanRoot(ctx context.Context) (string, error)
	PickTargetPath(ctx context.Context) (string, error)
	PickIconSource(ctx context.Context) (string, error)
}

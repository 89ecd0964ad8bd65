// Package memory is an in-process backend used by the demo shell and tests.
// It keeps items and groups in memory, reports scan progress on the event bus
// and can be told to fail any command.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rungrid/rungrid/internal/backend"
	"github.com/rungrid/rungrid/internal/log"
	"github.com/rungrid/rungrid/internal/pubsub"
)

// Backend implements backend.Commands. Safe for concurrent use.
type Backend struct {
	mu       sync.Mutex
	items    []backend.Item
	groups   []backend.Group
	roots    []string
	findings map[string][]backend.ItemInput
	failures map[string]error
	picks    map[string]string

	bus       *backend.Bus
	scanDelay time.Duration
	now       func() time.Time
	newID     func() string
}

var _ backend.Commands = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithItems seeds the item list.
func WithItems(items ...backend.Item) Option {
	return func(b *Backend) { b.items = append(b.items, items...) }
}

// WithGroups seeds the group list.
func WithGroups(groups ...backend.Group) Option {
	return func(b *Backend) { b.groups = append(b.groups, groups...) }
}

// WithRoots sets the default scan roots.
func WithRoots(roots ...string) Option {
	return func(b *Backend) { b.roots = roots }
}

// WithFindings sets what a scan of root discovers.
func WithFindings(root string, inputs ...backend.ItemInput) Option {
	return func(b *Backend) { b.findings[root] = inputs }
}

// WithScanDelay pauses between roots so progress is visible.
func WithScanDelay(d time.Duration) Option {
	return func(b *Backend) { b.scanDelay = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(fn func() string) Option {
	return func(b *Backend) { b.newID = fn }
}

// New creates a backend emitting events on bus, which may be nil.
func New(bus *backend.Bus, opts ...Option) *Backend {
	b := &Backend{
		findings: make(map[string][]backend.ItemInput),
		failures: make(map[string]error),
		picks:    make(map[string]string),
		bus:      bus,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Fail makes every later call to op return err. A nil err clears it.
func (b *Backend) Fail(op string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.failures, op)
		return
	}
	b.failures[op] = err
}

// SetPick sets what a picker op returns. An empty path means the user
// cancelled.
func (b *Backend) SetPick(op, path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.picks[op] = path
}

func (b *Backend) failure(op string) error {
	if err, ok := b.failures[op]; ok {
		log.Debug(log.CatBackend, "Injected failure", "op", op, "error", err)
		return &backend.Error{Op: op, Message: err.Error(), Err: err}
	}
	return nil
}

func (b *Backend) emit(name pubsub.EventType, payload any) {
	if b.bus != nil {
		b.bus.Emit(name, payload)
	}
}

func (b *Backend) indexOf(id string) int {
	return slices.IndexFunc(b.items, func(it backend.Item) bool { return it.ID == id })
}

func notFound(op, id string) error {
	return backend.Errorf(op, backend.ErrNotFound, "item %s not found", id)
}

// ListItems returns visible items in groupID ("" or "all" for every group)
// whose name contains query, sorted by name.
func (b *Backend) ListItems(_ context.Context, groupID, query string) ([]backend.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("ListItems"); err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]backend.Item, 0, len(b.items))
	for _, it := range b.items {
		if it.Hidden {
			continue
		}
		if groupID != "" && groupID != "all" && it.GroupID != groupID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) {
			continue
		}
		out = append(out, it)
	}
	slices.SortStableFunc(out, func(a, c backend.Item) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(c.Name))
	})
	return out, nil
}

// CreateItem adds an item. Name and path are required; the type defaults to app.
func (b *Backend) CreateItem(_ context.Context, in backend.ItemInput) (backend.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("CreateItem"); err != nil {
		return backend.Item{}, err
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Path) == "" {
		return backend.Item{}, &backend.Error{Op: "CreateItem", Message: "name and path are required"}
	}
	if in.Type == "" {
		in.Type = backend.ItemTypeApp
	}
	if !in.Type.Valid() {
		return backend.Item{}, backend.Errorf("CreateItem", nil, "unknown item type %q", in.Type)
	}

	it := backend.Item{
		ID:       b.newID(),
		Name:     strings.TrimSpace(in.Name),
		Path:     strings.TrimSpace(in.Path),
		Type:     in.Type,
		IconPath: in.IconPath,
		GroupID:  in.GroupID,
		Tags:     slices.Clone(in.Tags),
		Favorite: in.Favorite,
		Hidden:   in.Hidden,
	}
	b.items = append(b.items, it)
	log.Debug(log.CatBackend, "Item created", "id", it.ID, "name", it.Name)
	return it, nil
}

// UpdateItem replaces an item's editable fields.
func (b *Backend) UpdateItem(_ context.Context, in backend.ItemUpdate) (backend.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("UpdateItem"); err != nil {
		return backend.Item{}, err
	}
	i := b.indexOf(in.ID)
	if i < 0 {
		return backend.Item{}, notFound("UpdateItem", in.ID)
	}
	if in.Type != "" && !in.Type.Valid() {
		return backend.Item{}, backend.Errorf("UpdateItem", nil, "unknown item type %q", in.Type)
	}

	it := &b.items[i]
	it.Name = in.Name
	it.Path = in.Path
	if in.Type != "" {
		it.Type = in.Type
	}
	it.IconPath = in.IconPath
	it.GroupID = in.GroupID
	it.Tags = slices.Clone(in.Tags)
	it.Favorite = in.Favorite
	it.Hidden = in.Hidden
	return *it, nil
}

// DeleteItem removes an item.
func (b *Backend) DeleteItem(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("DeleteItem"); err != nil {
		return err
	}
	i := b.indexOf(id)
	if i < 0 {
		return notFound("DeleteItem", id)
	}
	b.items = slices.Delete(b.items, i, i+1)
	return nil
}

// ClearItems removes every item and returns how many there were.
func (b *Backend) ClearItems(_ context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("ClearItems"); err != nil {
		return 0, err
	}
	n := len(b.items)
	b.items = nil
	return n, nil
}

// LaunchItem records a launch.
func (b *Backend) LaunchItem(_ context.Context, id string) (backend.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("LaunchItem"); err != nil {
		return backend.Item{}, err
	}
	i := b.indexOf(id)
	if i < 0 {
		return backend.Item{}, notFound("LaunchItem", id)
	}
	now := b.now()
	b.items[i].LaunchCount++
	b.items[i].LastUsedAt = &now
	log.Info(log.CatBackend, "Item launched", "id", id, "path", b.items[i].Path)
	return b.items[i], nil
}

// OpenItemLocation reveals an item's path. Only existence is checked here.
func (b *Backend) OpenItemLocation(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("OpenItemLocation"); err != nil {
		return err
	}
	if b.indexOf(id) < 0 {
		return notFound("OpenItemLocation", id)
	}
	return nil
}

// RefreshItemIcon points the item at its cached icon.
func (b *Backend) RefreshItemIcon(_ context.Context, id string) (backend.Item, error) {
	b.mu.Lock()
	if err := b.failure("RefreshItemIcon"); err != nil {
		b.mu.Unlock()
		return backend.Item{}, err
	}
	i := b.indexOf(id)
	if i < 0 {
		b.mu.Unlock()
		return backend.Item{}, notFound("RefreshItemIcon", id)
	}
	b.items[i].IconPath = id + ".png"
	it := b.items[i]
	b.mu.Unlock()

	b.emit(backend.EventIconsUpdated, nil)
	return it, nil
}

// ListGroups returns groups by order.
func (b *Backend) ListGroups(_ context.Context) ([]backend.Group, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("ListGroups"); err != nil {
		return nil, err
	}
	out := slices.Clone(b.groups)
	slices.SortStableFunc(out, func(a, c backend.Group) int { return a.Order - c.Order })
	return out, nil
}

// CreateGroup adds a group.
func (b *Backend) CreateGroup(_ context.Context, in backend.GroupInput) (backend.Group, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("CreateGroup"); err != nil {
		return backend.Group{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return backend.Group{}, &backend.Error{Op: "CreateGroup", Message: "group name is required"}
	}
	g := backend.Group{
		ID:       b.newID(),
		Name:     strings.TrimSpace(in.Name),
		Order:    in.Order,
		Color:    in.Color,
		Category: in.Category,
		Icon:     in.Icon,
	}
	b.groups = append(b.groups, g)
	return g, nil
}

// ScanShortcuts walks roots, emitting scan:progress once per root, and adds
// discovered items whose path is not yet known.
func (b *Backend) ScanShortcuts(ctx context.Context, roots []string) (backend.ScanResult, error) {
	b.mu.Lock()
	if err := b.failure("ScanShortcuts"); err != nil {
		b.mu.Unlock()
		return backend.ScanResult{}, err
	}
	if roots == nil {
		roots = slices.Clone(b.roots)
	}
	delay := b.scanDelay
	b.mu.Unlock()

	var res backend.ScanResult
	for i, root := range roots {
		if err := ctx.Err(); err != nil {
			return res, backend.Errorf("ScanShortcuts", err, "scan cancelled")
		}
		if delay > 0 {
			select {
			case <-ctx.Done():
				return res, backend.Errorf("ScanShortcuts", ctx.Err(), "scan cancelled")
			case <-time.After(delay):
			}
		}

		b.mu.Lock()
		found := b.findings[root]
		for _, in := range found {
			res.Total++
			if in.Name == "" || in.Path == "" || slices.ContainsFunc(b.items, func(it backend.Item) bool { return it.Path == in.Path }) {
				res.Skipped++
				continue
			}
			if !in.Type.Valid() {
				in.Type = backend.ItemTypeApp
			}
			b.items = append(b.items, backend.Item{
				ID: b.newID(), Name: in.Name, Path: in.Path, Type: in.Type,
				IconPath: in.IconPath, GroupID: in.GroupID, Tags: slices.Clone(in.Tags),
			})
			res.Inserted++
		}
		b.mu.Unlock()

		pct := float64(i+1) / float64(len(roots)) * 100
		b.emit(backend.EventScanProgress, backend.ScanProgress{
			Root:      root,
			Path:      root,
			RootIndex: i + 1,
			RootTotal: len(roots),
			Scanned:   len(found),
			Percent:   &pct,
		})
	}

	log.Info(log.CatBackend, "Scan finished", "roots", len(roots), "total", res.Total, "inserted", res.Inserted, "skipped", res.Skipped)
	return res, nil
}

// ListScanRoots returns the default scan roots.
func (b *Backend) ListScanRoots(_ context.Context) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("ListScanRoots"); err != nil {
		return nil, err
	}
	return slices.Clone(b.roots), nil
}

// SyncIcons refreshes every item's icon and announces it.
func (b *Backend) SyncIcons(_ context.Context) (int, error) {
	b.mu.Lock()
	if err := b.failure("SyncIcons"); err != nil {
		b.mu.Unlock()
		return 0, err
	}
	for i := range b.items {
		b.items[i].IconPath = b.items[i].ID + ".png"
	}
	n := len(b.items)
	b.mu.Unlock()

	b.emit(backend.EventIconsUpdated, nil)
	return n, nil
}

// ApplyHotkeys validates bindings and reports the ones that cannot register:
// malformed chords and chords already taken by an earlier binding.
func (b *Backend) ApplyHotkeys(_ context.Context, bindings []backend.HotkeyBinding) (backend.HotkeyApplyResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("ApplyHotkeys"); err != nil {
		return backend.HotkeyApplyResult{}, err
	}

	var res backend.HotkeyApplyResult
	taken := make(map[string]string, len(bindings))
	for _, hk := range bindings {
		chord := strings.TrimSpace(hk.Keys)
		if chord == "" {
			continue
		}
		if reason := validateChord(chord); reason != "" {
			res.Issues = append(res.Issues, backend.HotkeyIssue{ID: hk.ID, Keys: hk.Keys, Reason: reason})
			continue
		}
		norm := strings.ToLower(chord)
		if owner, ok := taken[norm]; ok {
			res.Issues = append(res.Issues, backend.HotkeyIssue{ID: hk.ID, Keys: hk.Keys, Reason: fmt.Sprintf("conflicts with %s", owner)})
			continue
		}
		taken[norm] = hk.ID
	}
	return res, nil
}

var modifiers = []string{"ctrl", "alt", "shift", "win", "super", "cmd"}

// validateChord requires at least one modifier and exactly one final key.
func validateChord(chord string) string {
	parts := strings.Split(chord, "+")
	if len(parts) < 2 {
		return "missing modifier"
	}
	for _, p := range parts[:len(parts)-1] {
		if !slices.Contains(modifiers, strings.ToLower(strings.TrimSpace(p))) {
			return fmt.Sprintf("unknown modifier %q", p)
		}
	}
	last := strings.TrimSpace(parts[len(parts)-1])
	if last == "" || slices.Contains(modifiers, strings.ToLower(last)) {
		return "missing key"
	}
	return ""
}

func (b *Backend) pick(op string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure(op); err != nil {
		return "", err
	}
	path := b.picks[op]
	if path == "" {
		return "", &backend.Error{Op: op, Err: backend.ErrCancelled}
	}
	return path, nil
}

// PickScanRoot returns the configured folder pick.
func (b *Backend) PickScanRoot(_ context.Context) (string, error) {
	return b.pick("PickScanRoot")
}

// PickTargetPath returns the configured file pick.
func (b *Backend) PickTargetPath(_ context.Context) (string, error) {
	return b.pick("PickTargetPath")
}

// PickIconSource returns the configured icon pick.
func (b *Backend) PickIconSource(_ context.Context) (string, error) {
	return b.pick("PickIconSource")
}

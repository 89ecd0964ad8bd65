package settings

import (
	"context"
	"encoding/json"
	"maps"
	"slices"
	"strings"

	"github.com/rungrid/rungrid/internal/log"
)

// Hotkey action ids.
const (
	ActionToggleApp    = "toggle-app"
	ActionQuickSearch  = "quick-search"
	ActionOpenSettings = "open-settings"
)

// DefaultHotkeys returns the built-in bindings.
func DefaultHotkeys() map[string]string {
	return map[string]string{
		ActionToggleApp:    "Alt+Space",
		ActionQuickSearch:  "Alt+F",
		ActionOpenSettings: "Ctrl+,",
	}
}

// PanelPositionMode decides where the launcher window opens.
type PanelPositionMode string

const (
	PanelCenter PanelPositionMode = "center"
	PanelLast   PanelPositionMode = "last"
	PanelCursor PanelPositionMode = "cursor"
)

// LaunchMode is the number of activations that launch an item.
type LaunchMode string

const (
	LaunchSingle LaunchMode = "single"
	LaunchDouble LaunchMode = "double"
)

// PanelCloseMode decides whether the launcher hides when it loses focus.
type PanelCloseMode string

const (
	CloseOnBlur PanelCloseMode = "blur"
	CloseManual PanelCloseMode = "manual"
)

// Point is a window position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Preferences are the user's launcher preferences.
type Preferences struct {
	FocusSearchOnShow  bool              `json:"focusSearchOnShow"`
	PanelPositionMode  PanelPositionMode `json:"panelPositionMode"`
	LaunchMode         LaunchMode        `json:"launchMode"`
	PanelCloseMode     PanelCloseMode    `json:"panelCloseMode"`
	LastWindowPosition *Point            `json:"lastWindowPosition,omitempty"`
}

// DefaultPreferences returns the built-in preferences.
func DefaultPreferences() Preferences {
	return Preferences{
		FocusSearchOnShow: true,
		PanelPositionMode: PanelCenter,
		LaunchMode:        LaunchSingle,
		PanelCloseMode:    CloseOnBlur,
	}
}

// Store reads and writes typed settings over a KV.
type Store struct {
	kv KV
}

// NewStore wraps kv.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// raw reads key, treating read failures as absent.
func (s *Store) raw(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		log.Warn(log.CatSettings, "Settings read failed", "key", key, "error", err)
		return "", false
	}
	return v, ok && v != ""
}

func (s *Store) write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, string(data))
}

// Hotkeys returns the defaults overlaid with stored string bindings. Stored
// values that are not strings are ignored.
func (s *Store) Hotkeys(ctx context.Context) map[string]string {
	out := DefaultHotkeys()
	raw, ok := s.raw(ctx, KeyHotkeys)
	if !ok {
		return out
	}

	var stored map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Warn(log.CatSettings, "Ignoring corrupt hotkeys", "error", err)
		return out
	}
	for id, v := range stored {
		var keys string
		if json.Unmarshal(v, &keys) == nil {
			out[id] = keys
		}
	}
	return out
}

// SaveHotkeys stores bindings.
func (s *Store) SaveHotkeys(ctx context.Context, bindings map[string]string) error {
	return s.write(ctx, KeyHotkeys, maps.Clone(bindings))
}

// Preferences returns stored preferences. Each field is validated on its
// own; a missing or invalid field keeps its default.
func (s *Store) Preferences(ctx context.Context) Preferences {
	out := DefaultPreferences()
	raw, ok := s.raw(ctx, KeyPreferences)
	if !ok {
		return out
	}

	var stored map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Warn(log.CatSettings, "Ignoring corrupt preferences", "error", err)
		return out
	}

	var focus bool
	if v, ok := stored["focusSearchOnShow"]; ok && json.Unmarshal(v, &focus) == nil {
		out.FocusSearchOnShow = focus
	}
	var pos PanelPositionMode
	if v, ok := stored["panelPositionMode"]; ok && json.Unmarshal(v, &pos) == nil && slices.Contains([]PanelPositionMode{PanelCenter, PanelLast, PanelCursor}, pos) {
		out.PanelPositionMode = pos
	}
	var launch LaunchMode
	if v, ok := stored["launchMode"]; ok && json.Unmarshal(v, &launch) == nil && slices.Contains([]LaunchMode{LaunchSingle, LaunchDouble}, launch) {
		out.LaunchMode = launch
	}
	var closeMode PanelCloseMode
	if v, ok := stored["panelCloseMode"]; ok && json.Unmarshal(v, &closeMode) == nil && slices.Contains([]PanelCloseMode{CloseOnBlur, CloseManual}, closeMode) {
		out.PanelCloseMode = closeMode
	}
	if v, ok := stored["lastWindowPosition"]; ok {
		var p struct {
			X *float64 `json:"x"`
			Y *float64 `json:"y"`
		}
		if json.Unmarshal(v, &p) == nil && p.X != nil && p.Y != nil {
			out.LastWindowPosition = &Point{X: *p.X, Y: *p.Y}
		}
	}
	return out
}

// SavePreferences stores p.
func (s *Store) SavePreferences(ctx context.Context, p Preferences) error {
	return s.write(ctx, KeyPreferences, p)
}

// ScanRoots returns the stored roots, normalized. The bool is false when none
// are stored; an unparseable value is deleted and reported as absent.
func (s *Store) ScanRoots(ctx context.Context) ([]string, bool) {
	raw, ok := s.raw(ctx, KeyScanRoots)
	if !ok {
		return nil, false
	}

	var roots []string
	if err := json.Unmarshal([]byte(raw), &roots); err != nil || roots == nil {
		log.Warn(log.CatSettings, "Dropping corrupt scan roots", "value", raw)
		if err := s.kv.Delete(ctx, KeyScanRoots); err != nil {
			log.Warn(log.CatSettings, "Deleting scan roots failed", "error", err)
		}
		return nil, false
	}
	return NormalizeRoots(roots), true
}

// SaveScanRoots stores roots after normalizing them.
func (s *Store) SaveScanRoots(ctx context.Context, roots []string) error {
	return s.write(ctx, KeyScanRoots, NormalizeRoots(roots))
}

// NormalizeRoots trims each root, drops empty ones and removes
// case-insensitive duplicates, keeping the first spelling.
func NormalizeRoots(roots []string) []string {
	out := make([]string, 0, len(roots))
	seen := make(map[string]struct{}, len(roots))
	for _, r := range roots {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		k := strings.ToLower(r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

package settings

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestStore(t *testing.T, seed map[string]string) (*Store, *MemoryKV) {
	t.Helper()
	kv := NewMemoryKV()
	for k, v := range seed {
		require.NoError(t, kv.Set(context.Background(), k, v))
	}
	return NewStore(kv), kv
}

func TestHotkeys_Defaults(t *testing.T) {
	s, _ := newTestStore(t, nil)

	require.Equal(t, map[string]string{
		"toggle-app":    "Alt+Space",
		"quick-search":  "Alt+F",
		"open-settings": "Ctrl+,",
	}, s.Hotkeys(context.Background()))
}

func TestHotkeys_StoredStringsOverride(t *testing.T) {
	s, _ := newTestStore(t, map[string]string{
		KeyHotkeys: `{"toggle-app":"Ctrl+Space","quick-search":42,"custom":"Alt+K"}`,
	})

	got := s.Hotkeys(context.Background())

	require.Equal(t, "Ctrl+Space", got[ActionToggleApp])
	require.Equal(t, "Alt+F", got[ActionQuickSearch])
	require.Equal(t, "Alt+K", got["custom"])
}

func TestHotkeys_CorruptFallsBack(t *testing.T) {
	s, _ := newTestStore(t, map[string]string{KeyHotkeys: `{not json`})

	require.Equal(t, DefaultHotkeys(), s.Hotkeys(context.Background()))
}

func TestHotkeys_SaveRoundTrip(t *testing.T) {
	s, kv := newTestStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.SaveHotkeys(ctx, map[string]string{ActionToggleApp: "Alt+R"}))

	raw, ok, err := kv.Get(ctx, KeyHotkeys)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"toggle-app":"Alt+R"}`, raw)
	require.Equal(t, "Alt+R", s.Hotkeys(ctx)[ActionToggleApp])
}

func TestPreferences_Defaults(t *testing.T) {
	s, _ := newTestStore(t, nil)

	require.Equal(t, DefaultPreferences(), s.Preferences(context.Background()))
}

func TestPreferences_FieldsValidatedIndividually(t *testing.T) {
	s, _ := newTestStore(t, map[string]string{
		KeyPreferences: `{"focusSearchOnShow":false,"panelPositionMode":"sideways","launchMode":"double","panelCloseMode":7,"lastWindowPosition":{"x":10,"y":20}}`,
	})

	got := s.Preferences(context.Background())

	require.False(t, got.FocusSearchOnShow)
	require.Equal(t, PanelCenter, got.PanelPositionMode)
	require.Equal(t, LaunchDouble, got.LaunchMode)
	require.Equal(t, CloseOnBlur, got.PanelCloseMode)
	require.Equal(t, &Point{X: 10, Y: 20}, got.LastWindowPosition)
}

func TestPreferences_PartialPositionIgnored(t *testing.T) {
	s, _ := newTestStore(t, map[string]string{KeyPreferences: `{"lastWindowPosition":{"x":10}}`})

	require.Nil(t, s.Preferences(context.Background()).LastWindowPosition)
}

func TestPreferences_CorruptFallsBack(t *testing.T) {
	s, _ := newTestStore(t, map[string]string{KeyPreferences: `[1,2,3]`})

	require.Equal(t, DefaultPreferences(), s.Preferences(context.Background()))
}

func TestPreferences_SaveRoundTrip(t *testing.T) {
	s, kv := newTestStore(t, nil)
	ctx := context.Background()
	p := Preferences{
		FocusSearchOnShow:  false,
		PanelPositionMode:  PanelCursor,
		LaunchMode:         LaunchDouble,
		PanelCloseMode:     CloseManual,
		LastWindowPosition: &Point{X: 1.5, Y: 2},
	}

	require.NoError(t, s.SavePreferences(ctx, p))

	raw, _, _ := kv.Get(ctx, KeyPreferences)
	require.JSONEq(t, `{"focusSearchOnShow":false,"panelPositionMode":"cursor","launchMode":"double","panelCloseMode":"manual","lastWindowPosition":{"x":1.5,"y":2}}`, raw)
	require.Equal(t, p, s.Preferences(ctx))
}

func TestScanRoots_Absent(t *testing.T) {
	s, _ := newTestStore(t, nil)

	roots, ok := s.ScanRoots(context.Background())

	require.False(t, ok)
	require.Nil(t, roots)
}

func TestScanRoots_Normalized(t *testing.T) {
	s, _ := newTestStore(t, map[string]string{KeyScanRoots: `[" C:/Apps ","c:/apps","","D:/Tools"]`})

	roots, ok := s.ScanRoots(context.Background())

	require.True(t, ok)
	require.Equal(t, []string{"C:/Apps", "D:/Tools"}, roots)
}

func TestScanRoots_CorruptDeleted(t *testing.T) {
	s, kv := newTestStore(t, map[string]string{KeyScanRoots: `{"a":1}`})
	ctx := context.Background()

	roots, ok := s.ScanRoots(ctx)

	require.False(t, ok)
	require.Nil(t, roots)
	_, present, err := kv.Get(ctx, KeyScanRoots)
	require.NoError(t, err)
	require.False(t, present)
}

func TestScanRoots_EmptyListIsPresent(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.SaveScanRoots(ctx, []string{"  ", ""}))

	roots, ok := s.ScanRoots(ctx)
	require.True(t, ok)
	require.Empty(t, roots)
}

func TestNormalizeRoots_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := rapid.SliceOf(rapid.SampledFrom([]string{"a", "A", " a ", "", "  ", "b", "B/", "c"})).Draw(t, "roots")

		out := NormalizeRoots(in)

		seen := map[string]bool{}
		for _, r := range out {
			require.NotEmpty(t, r)
			require.Equal(t, r, strings.TrimSpace(r))
			lower := strings.ToLower(r)
			require.False(t, seen[lower], "duplicate %q", r)
			seen[lower] = true
		}
		require.Equal(t, out, NormalizeRoots(out))
	})
}

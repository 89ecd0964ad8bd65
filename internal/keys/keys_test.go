package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestKeyAssignments(t *testing.T) {
	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"modal escape", Modal.Escape, []string{"esc"}},
		{"modal confirm", Modal.Confirm, []string{"enter"}},
		{"modal next button", Modal.NextButton, []string{"tab", "right", "l"}},
		{"modal browse", Modal.Browse, []string{"ctrl+t"}},
		{"menu close", Menu.Close, []string{"esc"}},
		{"menu down", Menu.Down, []string{"j", "down"}},
		{"main menu", Shell.MainMenu, []string{"ctrl+o"}},
		{"item menu", Shell.ItemMenu, []string{"m"}},
		{"page down", Scroll.PageDown, []string{"pgdown", "ctrl+d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestShellHelp_AllBindingsHaveText(t *testing.T) {
	for _, b := range Shell.ShortHelp() {
		require.NotEmpty(t, b.Help().Key)
		require.NotEmpty(t, b.Help().Desc)
	}
	for _, group := range Shell.FullHelp() {
		for _, b := range group {
			require.NotEmpty(t, b.Help().Key)
			require.NotEmpty(t, b.Help().Desc)
		}
	}
}

// Esc must stay reachable for every overlay so no state can trap input.
func TestEscapeAlwaysBound(t *testing.T) {
	require.True(t, Modal.Escape.Enabled())
	require.True(t, Menu.Close.Enabled())
	require.Contains(t, Modal.Escape.Keys(), "esc")
	require.Contains(t, Menu.Close.Keys(), "esc")
}

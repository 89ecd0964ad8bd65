package modal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func typeInto(f *Form, s string) {
	for _, r := range s {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestForm_InitialValuesAndNavigation(t *testing.T) {
	f := NewForm(
		Field{Key: "name", Label: "Name", Value: "Terminal"},
		Field{Key: "path", Label: "Path"},
	)
	require.Equal(t, 0, f.Focused())
	require.Equal(t, "Terminal", f.Value("name"))

	handled, _ := f.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.True(t, handled)
	require.Equal(t, 1, f.Focused())

	handled, _ = f.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.True(t, handled)
	require.Equal(t, 1, f.Focused(), "stays on the last input")

	f.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 0, f.Focused())
}

func TestForm_EnterFallsThroughOnLastInput(t *testing.T) {
	f := NewForm(Field{Key: "a"}, Field{Key: "b"})

	handled, _ := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, handled)

	handled, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, handled)
}

func TestForm_TypingEditsFocusedInput(t *testing.T) {
	f := NewForm(Field{Key: "roots", MaxLength: 4})

	typeInto(f, "C:/Users")

	require.Equal(t, "C:/U", f.Value("roots"))
	require.Equal(t, "", f.Value("unknown"))
}

func TestForm_TabAndEscapeNotConsumed(t *testing.T) {
	f := NewForm(Field{Key: "a"})

	handled, _ := f.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.False(t, handled)
	handled, _ = f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, handled)
}

func TestForm_ViewShowsLabels(t *testing.T) {
	f := NewForm(Field{Key: "name", Label: "Display name"}, Field{Key: "path"})

	out := plain(f.View(40))

	require.Contains(t, out, "Display name")
	require.Contains(t, out, "path", "key is used when the label is empty")
}

func TestForm_Empty(t *testing.T) {
	f := NewForm()

	handled, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, handled)
	require.Nil(t, cmd)
	require.Empty(t, f.Values())
}

func TestForm_SetValueThenKeepTyping(t *testing.T) {
	f := NewForm(Field{Key: "name"}, Field{Key: "path", Value: "old"})
	f.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, "path", f.FocusedKey())

	require.True(t, f.SetValue("path", "/Apps/Mail.app"))
	require.False(t, f.SetValue("missing", "x"))

	typeInto(f, "/x")
	require.Equal(t, "/Apps/Mail.app/x", f.Value("path"), "cursor sits at the end")
	require.Empty(t, f.Value("name"))
}

package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rungrid/rungrid/internal/ui/styles"
)

// Field defines a single form input.
type Field struct {
	Key         string // identifier in Values
	Label       string
	Placeholder string
	Value       string // initial value
	MaxLength   int    // 0 = unlimited
}

// Form is interactive modal content made of labelled text inputs.
// Up/down move between inputs; enter advances until the last input, where
// it falls through to the modal's primary button.
type Form struct {
	fields  []Field
	inputs  []textinput.Model
	focused int
}

// NewForm creates a form with the first input focused.
func NewForm(fields ...Field) *Form {
	f := &Form{fields: fields, inputs: make([]textinput.Model, len(fields))}
	for i, fc := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fc.Placeholder
		if fc.MaxLength > 0 {
			ti.CharLimit = fc.MaxLength
		}
		ti.SetValue(fc.Value)
		if i == 0 {
			ti.Focus()
		}
		f.inputs[i] = ti
	}
	return f
}

// Values returns every input's current value keyed by Field.Key.
func (f *Form) Values() map[string]string {
	values := make(map[string]string, len(f.inputs))
	for i, in := range f.inputs {
		values[f.fields[i].Key] = in.Value()
	}
	return values
}

// Value returns one input's value, or "" for an unknown key.
func (f *Form) Value(key string) string {
	for i, fc := range f.fields {
		if fc.Key == key {
			return f.inputs[i].Value()
		}
	}
	return ""
}

// SetValue replaces one input's value and moves its cursor to the end. It
// reports whether key names an input.
func (f *Form) SetValue(key, value string) bool {
	for i, fc := range f.fields {
		if fc.Key == key {
			f.inputs[i].SetValue(value)
			f.inputs[i].CursorEnd()
			return true
		}
	}
	return false
}

// Focused returns the index of the focused input.
func (f *Form) Focused() int { return f.focused }

// FocusedKey returns the Key of the focused input, or "" for an empty form.
func (f *Form) FocusedKey() string {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[f.focused].Key
}

// Update implements Interactive.
func (f *Form) Update(msg tea.Msg) (bool, tea.Cmd) {
	if len(f.inputs) == 0 {
		return false, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "down", "ctrl+n":
			f.move(1)
			return true, nil
		case "up", "ctrl+p":
			f.move(-1)
			return true, nil
		case "enter":
			if f.focused < len(f.inputs)-1 {
				f.move(1)
				return true, nil
			}
			return false, nil
		case "tab", "shift+tab", "esc":
			return false, nil
		}
		var cmd tea.Cmd
		f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
		return true, cmd
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return false, cmd
}

func (f *Form) move(delta int) {
	next := f.focused + delta
	if next < 0 || next >= len(f.inputs) {
		return
	}
	f.inputs[f.focused].Blur()
	f.focused = next
	f.inputs[f.focused].Focus()
}

// View implements Content.
func (f *Form) View(width int) string {
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	focusedLabel := lipgloss.NewStyle().Foreground(styles.BorderFocusColor).Bold(true)

	var b strings.Builder
	for i, fc := range f.fields {
		if i > 0 {
			b.WriteString("\n")
		}
		label := fc.Label
		if label == "" {
			label = fc.Key
		}
		if i == f.focused {
			b.WriteString(focusedLabel.Render(label))
		} else {
			b.WriteString(labelStyle.Render(label))
		}
		b.WriteString("\n")

		in := f.inputs[i]
		in.Width = max(width-2, 1)
		b.WriteString(styles.SelectionIndicatorStyle.Render("›") + " " + in.View())
	}
	return b.String()
}

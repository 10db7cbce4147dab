package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fincert/internal/ui/theme"
)

// idDigits bounds the length of a question ID entry.
const idDigits = 6

// Field is a labeled single-line entry: free-form answers, or numeric
// question IDs when Digits is set.
type Field struct {
	Label   string
	Digits  bool
	input   textinput.Model
	invalid bool
}

// NewField creates an unfocused text field. limit <= 0 means no limit.
func NewField(label, placeholder string, limit int) Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if limit > 0 {
		ti.CharLimit = limit
	}
	return Field{Label: label, input: ti}
}

// NewIDField creates an unfocused field that only accepts digits.
func NewIDField(label, placeholder string) Field {
	f := NewField(label, placeholder, idDigits)
	f.Digits = true
	return f
}

// Update feeds a message to the input. Digit fields drop any other
// typed text.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.Text != "" {
		if f.Digits && strings.IndexFunc(kmsg.Text, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
			return f, nil
		}
		f.invalid = false
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// Focus focuses the field and returns its cursor command.
func (f *Field) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur removes focus from the field.
func (f *Field) Blur() {
	f.input.Blur()
}

// Focused reports whether the field has focus.
func (f Field) Focused() bool {
	return f.input.Focused()
}

// Value returns the raw entry.
func (f Field) Value() string {
	return f.input.Value()
}

// SetValue replaces the entry.
func (f *Field) SetValue(s string) {
	f.input.SetValue(s)
}

// ID parses the entry as a number. A failed parse marks the field invalid
// until the next keystroke.
func (f *Field) ID() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(f.input.Value()))
	f.invalid = err != nil
	return n, err == nil
}

// View renders "Label: entry", the label highlighted while focused.
func (f Field) View() string {
	view := f.input.View()
	if f.Label != "" {
		label := theme.Unselected
		if f.input.Focused() {
			label = theme.Selected
		}
		view = label.Render(f.Label+": ") + view
	}
	if f.invalid {
		view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return view
}

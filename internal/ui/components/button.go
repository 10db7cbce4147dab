package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fincert/internal/ui/theme"
)

// MenuButton renders one menu item as a bordered, fixed-width button.
type MenuButton struct {
	Label    string
	Width    int
	Selected bool
	Disabled bool
}

// ButtonFor builds the button for item i of m.
func ButtonFor(m Menu, i, width int) MenuButton {
	item := m.Items[i]
	return MenuButton{
		Label:    item.Label,
		Width:    width,
		Selected: i == m.Selected && !item.Disabled,
		Disabled: item.Disabled,
	}
}

// View renders the button. It is three rows tall.
func (b MenuButton) View() string {
	var style lipgloss.Style
	label := b.Label
	switch {
	case b.Disabled:
		style = theme.ButtonDisabled
	case b.Selected:
		style = theme.ButtonSelected
		label = "▸ " + label
	default:
		style = theme.ButtonNormal
	}
	if b.Width > 0 {
		style = style.Width(b.Width)
	}
	return style.Render(label)
}

package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fincert/internal/ui/theme"
)

// Choices is a vertical single-choice list used for O/X and multiple
// choice questions. After Reveal it marks the correct and chosen options.
type Choices struct {
	Options      []string
	Selected     int
	Revealed     bool
	ChosenIndex  int
	CorrectIndex int // -1 when unknown
}

// NewChoices creates a choice list with the cursor on the first option.
func NewChoices(options []string) Choices {
	return Choices{
		Options:      options,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Move shifts the cursor by delta, clamped to the option range.
func (c *Choices) Move(delta int) {
	if c.Revealed || len(c.Options) == 0 {
		return
	}
	c.Selected = max(0, min(len(c.Options)-1, c.Selected+delta))
}

// Pick moves the cursor to index i. It reports false when i is out of range.
func (c *Choices) Pick(i int) bool {
	if c.Revealed || i < 0 || i >= len(c.Options) {
		return false
	}
	c.Selected = i
	return true
}

// Value returns the option under the cursor.
func (c Choices) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected]
}

// Reveal freezes the list and records which option was chosen and which
// one is correct.
func (c *Choices) Reveal(chosen, correct int) {
	c.Revealed = true
	c.ChosenIndex = chosen
	c.CorrectIndex = correct
}

// View renders the options with 1-based numbers.
func (c Choices) View() string {
	var s string
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case c.Revealed && i == c.CorrectIndex:
			style = theme.Correct
		case c.Revealed && i == c.ChosenIndex:
			style = theme.Incorrect
		case c.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		s += style.Render(line) + "\n"
	}
	return s
}

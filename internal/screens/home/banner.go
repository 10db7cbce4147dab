package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fincert/internal/screens/welcome"
	"github.com/abhisek/fincert/internal/ui/components"
	"github.com/abhisek/fincert/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// renderTitle returns the banner, centered at content width.
func renderTitle(cw int, compact bool) string {
	w := cw
	if compact {
		w = 0
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(welcome.RenderBanner(w))
}

// renderStatsBar renders bank and wrong-note counts in a bordered box
// matching the content width.
func renderStatsBar(questions, categories, notes, cw int, compact bool) string {
	countStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	catStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			countStyle.Render(fmt.Sprintf("▤%d", questions)),
			catStyle.Render(fmt.Sprintf("◇%d", categories)),
			noteText(notes, true, noteStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			countStyle.Render(fmt.Sprintf("▤ %d QUESTIONS", questions)),
			catStyle.Render(fmt.Sprintf("◇ %d CATEGORIES", categories)),
			noteText(notes, false, noteStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func noteText(notes int, compact bool, active, dim lipgloss.Style) string {
	if notes == 0 {
		if compact {
			return dim.Render("✎0")
		}
		return dim.Render("✎ NO WRONG NOTES")
	}
	if compact {
		return active.Render(fmt.Sprintf("✎%d", notes))
	}
	return active.Render(fmt.Sprintf("✎ %d WRONG NOTES", notes))
}

// renderButtonMenu renders each menu item as a fixed-width button.
func renderButtonMenu(m components.Menu, cw int) string {
	buttons := make([]string, len(m.Items))
	for i := range m.Items {
		buttons[i] = components.ButtonFor(m, i, buttonWidth).View()
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderListMenu renders menu items as plain lines for terminals where
// bordered buttons would overflow.
func renderListMenu(m components.Menu, cw int) string {
	var lines []string
	for i, item := range m.Items {
		var line string
		switch {
		case item.Disabled:
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + item.Label)
		case i == m.Selected:
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ " + item.Label + " ")
		default:
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + item.Label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderWarning renders a one-line notice above the menu.
func renderWarning(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + text)
}

package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fincert/internal/router"
	"github.com/abhisek/fincert/internal/screen"
	"github.com/abhisek/fincert/internal/session"
	"github.com/abhisek/fincert/internal/ui/layout"
	"github.com/abhisek/fincert/internal/ui/theme"
)

// maxMissedShown caps the missed-question list.
const maxMissedShown = 8

// SummaryScreen displays the result of a finished session.
type SummaryScreen struct {
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.EscapeHandler = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) HandlesEscape() bool {
	return true
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	title := "Session complete!"
	if sum.Label != "" {
		title = fmt.Sprintf("Session complete: %s", sum.Label)
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), title))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Score: %d / %d        Accuracy: %.0f%%",
		sum.Correct, sum.Answered, sum.Accuracy*100)
	if sum.Answered < sum.Total {
		statsLine += fmt.Sprintf("        (%d skipped)", sum.Total-sum.Answered)
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))

	if len(sum.Categories) > 0 {
		b.WriteString(section("Categories", divider, width))
		for _, c := range sum.Categories {
			line := fmt.Sprintf("%-14s %3d/%-3d  %3.0f%%", c.Category, c.Correct, c.Attempted, c.Accuracy()*100)
			style := lipgloss.NewStyle().Foreground(theme.Text)
			if c.Correct == c.Attempted {
				style = style.Foreground(theme.Success)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
			b.WriteString("\n")
		}
	}

	if len(sum.Missed) > 0 {
		b.WriteString("\n")
		b.WriteString(section("Missed", divider, width))
		for i, q := range sum.Missed {
			if i == maxMissedShown {
				b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
					fmt.Sprintf("… and %d more", len(sum.Missed)-maxMissedShown)))
				b.WriteString("\n")
				break
			}
			line := fmt.Sprintf("#%s  %s", q.ID, truncate(q.Text, min(width-16, 56)))
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error), line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(center(theme.Hint,
			"Missed questions were added to your wrong notes."))
	} else if sum.Answered > 0 {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success).Bold(true),
			"Perfect run!"))
	}

	return b.String()
}

func section(title, divider string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(title)) + "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, divider) + "\n\n"
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if n < 2 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package category

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fincert/internal/quiz"
	"github.com/abhisek/fincert/internal/screen"
	sessionscreen "github.com/abhisek/fincert/internal/screens/session"
	"github.com/abhisek/fincert/internal/selector"
	"github.com/abhisek/fincert/internal/ui/components"
	"github.com/abhisek/fincert/internal/ui/layout"
	"github.com/abhisek/fincert/internal/ui/theme"
)

// CategoryScreen lets the learner pick a category to drill.
type CategoryScreen struct {
	svc    *quiz.Service
	menu   components.Menu
	names  []string
	errMsg string
}

var _ screen.Screen = (*CategoryScreen)(nil)
var _ screen.KeyHintProvider = (*CategoryScreen)(nil)

// New creates a category picker over the service's bank.
func New(svc *quiz.Service) *CategoryScreen {
	s := &CategoryScreen{svc: svc, names: svc.Categories()}
	counts := svc.Bank().Count()

	items := make([]components.MenuItem, len(s.names))
	for i, name := range s.names {
		items[i] = components.MenuItem{
			Label: fmt.Sprintf("%s (%d)", name, counts[name]),
			Action: func() tea.Cmd {
				return sessionscreen.Start(svc, selector.ModeCategory, selector.Params{Category: name})
			},
		}
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *CategoryScreen) Init() tea.Cmd {
	return nil
}

func (s *CategoryScreen) Title() string {
	return "Choose a category"
}

func (s *CategoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CategoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(sessionscreen.StartFailedMsg); ok {
		s.errMsg = msg.Err.Error()
		if errors.Is(msg.Err, quiz.ErrNoQuestions) {
			s.errMsg = "This category has no questions."
		}
		return s, nil
	}

	if _, ok := msg.(tea.KeyMsg); ok {
		s.errMsg = ""
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// Selected returns the category under the cursor.
func (s *CategoryScreen) Selected() string {
	if s.menu.Selected < 0 || s.menu.Selected >= len(s.names) {
		return ""
	}
	return s.names[s.menu.Selected]
}

func (s *CategoryScreen) View(width, height int) string {
	if len(s.names) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  The bank has no categories.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Questions are asked in random order."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}
	return b.String()
}

package rangeform

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

var errNotNumber = errors.New("enter whole numbers for both IDs")

// RangeScreen asks for an inclusive question ID range.
type RangeScreen struct {
	svc       *quiz.Service
	inputs    [2]components.Field
	focus     int
	low, high int
	errMsg    string
}

var _ screen.Screen = (*RangeScreen)(nil)
var _ screen.KeyHintProvider = (*RangeScreen)(nil)

// New creates the range form with the start field focused.
func New(svc *quiz.Service) *RangeScreen {
	s := &RangeScreen{svc: svc}
	s.inputs[0] = components.NewIDField("From", "start ID")
	s.inputs[1] = components.NewIDField("To  ", "end ID")
	s.inputs[0].Focus()

	first := true
	for _, q := range svc.Bank().Questions() {
		n, ok := q.ID.Number()
		if !ok {
			continue
		}
		if first || n < s.low {
			s.low = n
		}
		if first || n > s.high {
			s.high = n
		}
		first = false
	}
	return s
}

func (s *RangeScreen) Init() tea.Cmd {
	return s.inputs[0].Focus()
}

func (s *RangeScreen) Title() string {
	return "Questions by ID range"
}

func (s *RangeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch field"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *RangeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionscreen.StartFailedMsg:
		switch {
		case errors.Is(msg.Err, quiz.ErrNoQuestions):
			s.errMsg = "No questions have IDs in that range."
		case errors.Is(msg.Err, selector.ErrInvalidRange):
			s.errMsg = "The start ID must not be greater than the end ID."
		default:
			s.errMsg = msg.Err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "down", "up":
			return s, s.toggleFocus()
		case "enter":
			if s.focus == 0 && s.inputs[1].Value() == "" {
				return s, s.toggleFocus()
			}
			return s, s.submit()
		}
		s.errMsg = ""
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *RangeScreen) toggleFocus() tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = 1 - s.focus
	return s.inputs[s.focus].Focus()
}

func (s *RangeScreen) submit() tea.Cmd {
	start, okStart := s.inputs[0].ID()
	end, okEnd := s.inputs[1].ID()
	if !okStart || !okEnd {
		s.errMsg = errNotNumber.Error()
		return nil
	}
	s.errMsg = ""
	return sessionscreen.Start(s.svc, selector.ModeRange, selector.Params{Start: start, End: end})
}

func (s *RangeScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n")
	if s.high > 0 {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
			fmt.Sprintf("Bank IDs run from %d to %d.", s.low, s.high)))
		b.WriteString("\n\n")
	}

	for _, in := range s.inputs {
		b.WriteString(center(lipgloss.NewStyle(), in.View()))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error), s.errMsg))
	}
	return b.String()
}

package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fincert/internal/grader"
	"github.com/abhisek/fincert/internal/question"
	"github.com/abhisek/fincert/internal/quiz"
	"github.com/abhisek/fincert/internal/router"
	"github.com/abhisek/fincert/internal/screen"
	sess "github.com/abhisek/fincert/internal/session"
	"github.com/abhisek/fincert/internal/ui/components"
	"github.com/abhisek/fincert/internal/ui/layout"
)

var errBlanksIncomplete = errors.New("pick an option for every blank first")

// SessionScreen implements screen.Screen for a running quiz session.
type SessionScreen struct {
	svc   *quiz.Service
	state *sess.Session

	choices components.Choices
	blanks  components.BlankSelector
	input   components.Field

	// gradeYes is true while "I got it" is highlighted in the self-grade prompt.
	gradeYes bool

	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)
var _ screen.EscapeHandler = (*SessionScreen)(nil)

// New creates a SessionScreen for an already started session.
func New(svc *quiz.Service, s *sess.Session) *SessionScreen {
	scr := &SessionScreen{svc: svc, state: s}
	scr.prepare()
	return scr
}

// prepare resets the answer widgets for the current question.
func (s *SessionScreen) prepare() {
	s.errMsg = ""
	s.gradeYes = true
	s.input = components.NewField("Answer", "Type your answer, or leave empty to reveal...", 0)
	s.input.Focus()

	q, ok := s.state.Current()
	if !ok {
		return
	}
	switch q.Kind() {
	case question.KindOX:
		s.choices = components.NewChoices([]string{"O", "X"})
	case question.KindMultipleChoice:
		s.choices = components.NewChoices(q.Options)
	case question.KindStructuredBlank:
		var opts [][]string
		for _, b := range question.ParseBlanks(q.Text) {
			opts = append(opts, b.Options)
		}
		s.blanks = components.NewBlankSelector(opts)
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *SessionScreen) Title() string {
	if l := s.state.Label(); l != "" {
		return "Quiz · " + l
	}
	return "Quiz"
}

// Status shows the running score and position in the header.
func (s *SessionScreen) Status() string {
	return fmt.Sprintf("✔ %d   %d/%d", s.state.Score(), s.state.Ordinal(), s.state.Total())
}

// HandlesEscape keeps Esc inside the screen so leaving can be confirmed.
func (s *SessionScreen) HandlesEscape() bool {
	return true
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}

	if s.state.Phase() == sess.PhaseAnswerRevealed {
		if s.state.Turn().NeedsSelfGrade() {
			return []layout.KeyHint{
				{Key: "Y", Description: "I got it"},
				{Key: "N", Description: "I missed it"},
				{Key: "←→", Description: "Choose"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next question"},
			{Key: "Esc", Description: "Quit"},
		}
	}

	q, _ := s.state.Current()
	switch q.Kind() {
	case question.KindOX:
		return []layout.KeyHint{
			{Key: "O/X", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Choose"},
			{Key: "Esc", Description: "Quit"},
		}
	case question.KindMultipleChoice:
		return []layout.KeyHint{
			{Key: "1-9", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Choose"},
			{Key: "Esc", Description: "Quit"},
		}
	case question.KindStructuredBlank:
		return []layout.KeyHint{
			{Key: "←→", Description: "Option"},
			{Key: "Tab", Description: "Next blank"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Reveal answer"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) View(width, height int) string {
	if s.showingQuitConfirm {
		return renderQuitConfirm(width, height)
	}
	if s.state.Phase() == sess.PhaseAnswerRevealed {
		return s.renderFeedback(width, height)
	}
	return s.renderQuestionView(width, height)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionEndMsg:
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: newSummaryScreenAdapter(msg.Summary)}
		}

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward cursor blinks and the like to the free-form input.
	if s.freeFormActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) freeFormActive() bool {
	q, ok := s.state.Current()
	return ok && s.state.Phase() == sess.PhaseAwaitingAnswer &&
		!s.showingQuitConfirm && q.Kind() == question.KindFreeForm
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Quit confirmation dialog.
	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if key == "esc" {
		s.showingQuitConfirm = true
		return s, nil
	}

	switch s.state.Phase() {
	case sess.PhaseAnswerRevealed:
		return s.handleRevealedKey(key)
	case sess.PhaseAwaitingAnswer:
		return s.handleAnswerKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleAnswerKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	q, _ := s.state.Current()

	switch q.Kind() {
	case question.KindOX:
		switch key {
		case "o", "O":
			s.choices.Pick(0)
			return s.submit(grader.Candidate{Choice: "O"})
		case "x", "X":
			s.choices.Pick(1)
			return s.submit(grader.Candidate{Choice: "X"})
		}
		return s.handleChoiceKey(key)

	case question.KindMultipleChoice:
		return s.handleChoiceKey(key)

	case question.KindStructuredBlank:
		switch key {
		case "left", "h":
			s.blanks.Cycle(-1)
		case "right", "l":
			s.blanks.Cycle(1)
		case "tab", "down":
			s.blanks.Next()
		case "shift+tab", "up":
			s.blanks.Prev()
		case "enter":
			if !s.blanks.Complete() {
				s.errMsg = errBlanksIncomplete.Error()
				return s, nil
			}
			return s.submit(grader.Candidate{Blanks: s.blanks.Values()})
		default:
			if n, ok := digit(key); ok {
				s.blanks.Pick(n - 1)
			}
		}
		return s, nil
	}

	// Free-form.
	if key == "enter" {
		return s.submit(grader.Candidate{Choice: s.input.Value()})
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SessionScreen) handleChoiceKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k":
		s.choices.Move(-1)
	case "down", "j":
		s.choices.Move(1)
	case "enter":
		return s.submit(grader.Candidate{Choice: s.choices.Value()})
	default:
		if n, ok := digit(key); ok && s.choices.Pick(n-1) {
			return s.submit(grader.Candidate{Choice: s.choices.Value()})
		}
	}
	return s, nil
}

func (s *SessionScreen) handleRevealedKey(key string) (screen.Screen, tea.Cmd) {
	if s.state.Turn().NeedsSelfGrade() {
		switch key {
		case "y", "Y":
			return s.selfGrade(true)
		case "n", "N":
			return s.selfGrade(false)
		case "left", "right", "h", "l", "tab":
			s.gradeYes = !s.gradeYes
		case "enter":
			return s.selfGrade(s.gradeYes)
		}
		return s, nil
	}

	switch key {
	case "enter", " ", "space", "right":
		return s.advance()
	}
	return s, nil
}

// submit grades the answer and freezes the choice list on the result.
func (s *SessionScreen) submit(c grader.Candidate) (screen.Screen, tea.Cmd) {
	q, _ := s.state.Current()
	if err := s.svc.Submit(context.Background(), s.state, c); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.errMsg = ""

	switch q.Kind() {
	case question.KindOX:
		correct := 1
		if grader.ExpectedOX(q) == "O" {
			correct = 0
		}
		s.choices.Reveal(s.choices.Selected, correct)
	case question.KindMultipleChoice:
		correct := -1
		if idx, ok := q.Answer.Index(); ok {
			correct = idx - 1
		}
		s.choices.Reveal(s.choices.Selected, correct)
	}
	return s, nil
}

func (s *SessionScreen) selfGrade(correct bool) (screen.Screen, tea.Cmd) {
	if err := s.svc.SelfGrade(context.Background(), s.state, correct); err != nil {
		s.errMsg = err.Error()
	}
	return s, nil
}

func (s *SessionScreen) advance() (screen.Screen, tea.Cmd) {
	if err := s.svc.Advance(context.Background(), s.state); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	if s.state.Phase() == sess.PhaseComplete {
		sum := s.state.Summary()
		return s, func() tea.Msg { return sessionEndMsg{Summary: sum} }
	}
	s.prepare()
	return s, s.input.Focus()
}

// digit parses a single 1-9 key.
func digit(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

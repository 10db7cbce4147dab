package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fincert/internal/grader"
	"github.com/abhisek/fincert/internal/question"
	"github.com/abhisek/fincert/internal/ui/components"
	"github.com/abhisek/fincert/internal/ui/theme"
)

// renderQuestionView renders the active question and its answer widget.
func (s *SessionScreen) renderQuestionView(width, height int) string {
	q, ok := s.state.Current()
	if !ok {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Wrapping up...")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(s.renderInfoLine(q, width))
	b.WriteString("\n\n")
	b.WriteString(s.renderQuestionBody(q, cw, false))
	b.WriteString("\n\n")

	switch q.Kind() {
	case question.KindOX, question.KindMultipleChoice:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	case question.KindStructuredBlank:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Blank %d of %d", s.blanks.Focus+1, len(s.blanks.Options))))
		b.WriteString("\n")
	default:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(s.input.View()))
		b.WriteString("\n")
	}

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

// renderInfoLine renders the category and position line with a progress bar.
func (s *SessionScreen) renderInfoLine(q question.Question, width int) string {
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · #%s", q.CategoryOrDefault(), q.ID))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d",
			s.state.Ordinal(),
			s.state.Total(),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✔"),
			s.state.Score(),
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	bar := components.NewProgressBar("", s.state.Progress(), true, components.ContentWidth(width))

	var b strings.Builder
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	return b.String()
}

// renderQuestionBody renders the optional context card and the prompt.
func (s *SessionScreen) renderQuestionBody(q question.Question, cw int, revealed bool) string {
	var parts []string
	if q.Context != "" {
		parts = append(parts, components.Card(
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(q.Context), cw))
	}

	text := q.Text
	if q.Kind() == question.KindStructuredBlank {
		text = s.renderBlanks(q, revealed)
	}
	parts = append(parts, lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(text))

	return lipgloss.PlaceHorizontal(cw+6, lipgloss.Center, strings.Join(parts, "\n\n"))
}

// renderBlanks replaces each inline marker with the current pick. Before
// the reveal the focused blank is highlighted; after it, each pick is
// colored against the expected answer.
func (s *SessionScreen) renderBlanks(q question.Question, revealed bool) string {
	var expected []string
	if revealed {
		expected = question.SplitAnswerList(q.Answer.String())
	}

	var b strings.Builder
	for _, seg := range question.Segments(q.Text) {
		if seg.Blank < 0 || seg.Blank >= len(s.blanks.Options) {
			b.WriteString(seg.Text)
			continue
		}

		i := seg.Blank
		pick := ""
		if c := s.blanks.Choice[i]; c >= 0 {
			pick = s.blanks.Options[i][c]
		}

		switch {
		case revealed:
			style := theme.Incorrect
			if i < len(expected) && pick == expected[i] {
				style = theme.Correct
			}
			label := pick
			if label == "" {
				label = "___"
			}
			b.WriteString(style.Render("[" + label + "]"))
		case pick != "":
			style := theme.Selected
			if i != s.blanks.Focus {
				style = theme.Body.Underline(true)
			}
			b.WriteString(style.Render("[" + pick + "]"))
		default:
			style := theme.Hint
			if i == s.blanks.Focus {
				style = theme.Pending
			}
			b.WriteString(style.Render("[" + strings.Join(s.blanks.Options[i], " / ") + "]"))
		}
	}
	return b.String()
}

// renderFeedback renders the graded question with its verdict.
func (s *SessionScreen) renderFeedback(width, height int) string {
	q, _ := s.state.Current()
	turn := s.state.Turn()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.renderInfoLine(q, width))
	b.WriteString("\n\n")
	b.WriteString(s.renderQuestionBody(q, cw, true))
	b.WriteString("\n\n")

	switch q.Kind() {
	case question.KindOX, question.KindMultipleChoice:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
		b.WriteString("\n")
	case question.KindFreeForm:
		given := strings.TrimSpace(turn.Answer.Choice)
		if given == "" {
			given = "(no answer)"
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Your answer: " + given))
		b.WriteString("\n\n")
	}

	b.WriteString(verdictBanner(turn.Verdict, turn.Final, width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render("Answer: " + grader.ExpectedText(q)))
	b.WriteString("\n\n")

	if turn.NeedsSelfGrade() {
		b.WriteString(s.renderSelfGradePrompt(width))
		return b.String()
	}

	if q.Explanation != "" {
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	if turn.NoteErr != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render("Could not save to wrong notes: " + turn.NoteErr.Error()))
		b.WriteString("\n\n")
	}

	next := "Press Enter for the next question"
	if s.state.Ordinal() == s.state.Total() {
		next = "Press Enter to see your results"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(next))

	return b.String()
}

// verdictBanner renders the headline for a revealed answer.
func verdictBanner(verdict, final grader.Verdict, width int) string {
	style := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Bold(true)
	switch {
	case final == grader.Correct:
		return style.Foreground(theme.Success).Render("Correct!")
	case final == grader.Incorrect:
		return style.Foreground(theme.Error).Render("Not quite")
	case verdict == grader.Indeterminate:
		return style.Foreground(theme.Accent).Render("Check your answer")
	}
	return ""
}

func (s *SessionScreen) renderSelfGradePrompt(width int) string {
	yes := components.NewButton("Y  I got it", s.gradeYes, nil)
	no := components.NewButton("N  I missed it", !s.gradeYes, nil)
	row := lipgloss.JoinHorizontal(lipgloss.Center, yes.View(), "  ", no.View())

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Did you get it right?"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Answers so far stay in your history and wrong notes."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

package grader

import (
	"fmt"
	"strings"

	"github.com/abhisek/fincert/internal/question"
)

// Verdict is the outcome of grading one submitted answer.
type Verdict string

const (
	Correct       Verdict = "correct"
	Incorrect     Verdict = "incorrect"
	Indeterminate Verdict = "indeterminate" // needs the learner's self-report
)

// Candidate is a learner's submitted answer. Choice carries O/X letters and
// option text; Blanks carries one entry per inline marker, in order.
type Candidate struct {
	Choice string   `json:"choice,omitempty"`
	Blanks []string `json:"blanks,omitempty"`
}

// Empty reports whether nothing was selected or entered.
func (c Candidate) Empty() bool {
	if strings.TrimSpace(c.Choice) != "" {
		return false
	}
	for _, b := range c.Blanks {
		if strings.TrimSpace(b) != "" {
			return false
		}
	}
	return true
}

// Grade compares a candidate against the question's stored answer.
// It never mutates the question.
func Grade(q question.Question, c Candidate) Verdict {
	switch q.Kind() {
	case question.KindOX:
		return gradeOX(q, c)
	case question.KindStructuredBlank:
		return gradeBlanks(q, c)
	case question.KindMultipleChoice:
		return gradeMultipleChoice(q, c)
	case question.KindFreeForm:
		return Indeterminate
	}
	return Indeterminate
}

// ExpectedOX returns "O" if the stored answer contains the letter O anywhere
// (case-insensitive), otherwise "X". An answer text that merely mentions O
// therefore reads as O; banks rely on this, so it is kept as is.
func ExpectedOX(q question.Question) string {
	if strings.Contains(strings.ToUpper(q.Answer.String()), "O") {
		return "O"
	}
	return "X"
}

func gradeOX(q question.Question, c Candidate) Verdict {
	if c.Choice == ExpectedOX(q) {
		return Correct
	}
	return Incorrect
}

// gradeBlanks compares blanks pairwise in order. A count mismatch is flagged
// for manual review rather than marked wrong.
func gradeBlanks(q question.Question, c Candidate) Verdict {
	expected := question.SplitAnswerList(q.Answer.String())
	if len(expected) != len(c.Blanks) {
		return Indeterminate
	}
	for i, want := range expected {
		if strings.TrimSpace(c.Blanks[i]) != want {
			return Incorrect
		}
	}
	return Correct
}

func gradeMultipleChoice(q question.Question, c Candidate) Verdict {
	want, ok := CorrectOption(q)
	if !ok {
		return Incorrect
	}
	found := false
	for _, opt := range q.Options {
		if opt == c.Choice {
			found = true
			break
		}
	}
	if !found {
		return Incorrect
	}
	if c.Choice == want {
		return Correct
	}
	return Incorrect
}

// CorrectOption returns options[answer-1] for a multiple choice question.
func CorrectOption(q question.Question) (string, bool) {
	idx, ok := q.Answer.Index()
	if !ok || idx < 1 || idx > len(q.Options) {
		return "", false
	}
	return q.Options[idx-1], true
}

// ExpectedText renders the correct answer for feedback displays.
func ExpectedText(q question.Question) string {
	switch q.Kind() {
	case question.KindOX:
		return ExpectedOX(q)
	case question.KindMultipleChoice:
		if opt, ok := CorrectOption(q); ok {
			idx, _ := q.Answer.Index()
			return fmt.Sprintf("%d) %s", idx, opt)
		}
	case question.KindStructuredBlank:
		return strings.Join(question.SplitAnswerList(q.Answer.String()), ", ")
	}
	return q.Answer.String()
}

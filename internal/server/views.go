package server

import (
	"github.com/abhisek/fincert/internal/grader"
	"github.com/abhisek/fincert/internal/question"
	"github.com/abhisek/fincert/internal/session"
	"github.com/abhisek/fincert/internal/store"
)

// questionView is a question as the client sees it while answering.
// The answer key and explanation are withheld until the answer is revealed.
type questionView struct {
	ID       question.ID `json:"id"`
	Category string      `json:"category"`
	Kind     string      `json:"kind"`
	Text     string      `json:"question"`
	Context  string      `json:"context,omitempty"`
	Options  []string    `json:"options,omitempty"`
	Blanks   [][]string  `json:"blanks,omitempty"`
}

func newQuestionView(q question.Question) *questionView {
	v := &questionView{
		ID:       q.ID,
		Category: q.CategoryOrDefault(),
		Kind:     q.Kind().String(),
		Text:     q.Text,
		Context:  q.Context,
	}
	switch q.Kind() {
	case question.KindMultipleChoice:
		v.Options = q.Options
	case question.KindOX:
		v.Options = []string{"O", "X"}
	case question.KindStructuredBlank:
		for _, b := range question.ParseBlanks(q.Text) {
			v.Blanks = append(v.Blanks, b.Options)
		}
	}
	return v
}

// resultView is the feedback for a revealed answer.
type resultView struct {
	Answer         grader.Candidate `json:"answer"`
	Verdict        grader.Verdict   `json:"verdict"`
	Final          grader.Verdict   `json:"final,omitempty"`
	Expected       string           `json:"expected"`
	Explanation    string           `json:"explanation,omitempty"`
	SelfGraded     bool             `json:"self_graded"`
	NeedsSelfGrade bool             `json:"needs_self_grade"`
	NoteError      string           `json:"note_error,omitempty"`
}

type categoryView struct {
	Category  string  `json:"category"`
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Accuracy  float64 `json:"accuracy"`
}

type summaryView struct {
	Answered   int            `json:"answered"`
	Correct    int            `json:"correct"`
	Accuracy   float64        `json:"accuracy"`
	DurationMS int64          `json:"duration_ms"`
	Categories []categoryView `json:"categories"`
	Missed     []question.ID  `json:"missed"`
}

// stateView is the full client-visible state of the live session.
type stateView struct {
	SessionID string        `json:"session_id"`
	Label     string        `json:"label"`
	Phase     session.Phase `json:"phase"`
	Position  int           `json:"position"`
	Ordinal   int           `json:"ordinal"`
	Total     int           `json:"total"`
	Score     int           `json:"score"`
	Progress  float64       `json:"progress"`
	Question  *questionView `json:"question,omitempty"`
	Result    *resultView   `json:"result,omitempty"`
	Summary   *summaryView  `json:"summary,omitempty"`
}

func newStateView(s *session.Session) stateView {
	v := stateView{
		SessionID: s.ID(),
		Label:     s.Label(),
		Phase:     s.Phase(),
		Position:  s.Position(),
		Ordinal:   s.Ordinal(),
		Total:     s.Total(),
		Score:     s.Score(),
		Progress:  s.Progress(),
	}

	q, ok := s.Current()
	if ok {
		v.Question = newQuestionView(q)
	}

	if ok && s.Phase() == session.PhaseAnswerRevealed {
		t := s.Turn()
		r := &resultView{
			Answer:         t.Answer,
			Verdict:        t.Verdict,
			Final:          t.Final,
			Expected:       grader.ExpectedText(q),
			Explanation:    q.Explanation,
			SelfGraded:     t.SelfGraded,
			NeedsSelfGrade: t.NeedsSelfGrade(),
		}
		if t.NoteErr != nil {
			r.NoteError = t.NoteErr.Error()
		}
		v.Result = r
	}

	if s.Phase() == session.PhaseComplete {
		v.Summary = newSummaryView(s.Summary())
	}
	return v
}

func newSummaryView(sum session.Summary) *summaryView {
	v := &summaryView{
		Answered:   sum.Answered,
		Correct:    sum.Correct,
		Accuracy:   sum.Accuracy,
		DurationMS: sum.Duration.Milliseconds(),
		Categories: make([]categoryView, 0, len(sum.Categories)),
		Missed:     make([]question.ID, 0, len(sum.Missed)),
	}
	for _, c := range sum.Categories {
		v.Categories = append(v.Categories, categoryView{
			Category:  c.Category,
			Attempted: c.Attempted,
			Correct:   c.Correct,
			Accuracy:  c.Accuracy(),
		})
	}
	for _, q := range sum.Missed {
		v.Missed = append(v.Missed, q.ID)
	}
	return v
}

type statsView struct {
	Totals     store.Totals          `json:"totals"`
	Categories []store.CategoryStat  `json:"categories"`
	MostMissed []store.MissStat      `json:"most_missed"`
	Recent     []store.SessionRecord `json:"recent"`
}

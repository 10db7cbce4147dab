package session

import (
	"sort"
	"time"

	"github.com/abhisek/fincert/internal/question"
)

// CategoryResult tracks per-category performance within a single session.
type CategoryResult struct {
	Category  string
	Attempted int
	Correct   int
}

// Accuracy returns Correct/Attempted, or 0 when nothing was attempted.
func (r CategoryResult) Accuracy() float64 {
	if r.Attempted == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempted)
}

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID  string
	Label      string
	Duration   time.Duration
	Total      int
	Answered   int
	Correct    int
	Accuracy   float64
	Categories []CategoryResult
	Missed     []question.Question
}

// Summary builds a summary of the outcomes committed so far.
func (s *Session) Summary() Summary {
	end := s.endedAt
	if end.IsZero() {
		end = time.Now()
	}

	byCat := make(map[string]*CategoryResult)
	var missed []question.Question
	for _, o := range s.outcomes {
		cat := o.Question.CategoryOrDefault()
		r, ok := byCat[cat]
		if !ok {
			r = &CategoryResult{Category: cat}
			byCat[cat] = r
		}
		r.Attempted++
		if o.Correct() {
			r.Correct++
		} else {
			missed = append(missed, o.Question)
		}
	}

	cats := make([]CategoryResult, 0, len(byCat))
	for _, r := range byCat {
		cats = append(cats, *r)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Category < cats[j].Category })

	var accuracy float64
	if len(s.outcomes) > 0 {
		accuracy = float64(s.score) / float64(len(s.outcomes))
	}

	return Summary{
		SessionID:  s.id,
		Label:      s.label,
		Duration:   end.Sub(s.startedAt),
		Total:      len(s.questions),
		Answered:   len(s.outcomes),
		Correct:    s.score,
		Accuracy:   accuracy,
		Categories: cats,
		Missed:     missed,
	}
}

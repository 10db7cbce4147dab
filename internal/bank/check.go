package bank

import (
	"fmt"
	"strings"

	"github.com/abhisek/fincert/internal/question"
)

// Issue is a non-fatal problem found in a bank.
type Issue struct {
	// Index is the position of the offending record, or -1 for the whole bank.
	Index   int
	ID      question.ID
	Message string
}

func (i Issue) String() string {
	switch {
	case i.ID != "":
		return fmt.Sprintf("question %s: %s", i.ID, i.Message)
	case i.Index >= 0:
		return fmt.Sprintf("record %d: %s", i.Index, i.Message)
	}
	return i.Message
}

// Check reports duplicate IDs, out-of-range multiple choice answers and
// structured blank answers whose count does not match the markers.
func Check(qs []question.Question) []Issue {
	return checkRecords(qs, nil)
}

// checkRecords is Check with issue indexes mapped through pos, the source
// record number of each question. A nil pos means qs is the whole file.
func checkRecords(qs []question.Question, pos []int) []Issue {
	var issues []Issue
	seen := make(map[question.ID]int, len(qs))

	record := func(i int) int {
		if pos != nil {
			return pos[i]
		}
		return i
	}
	add := func(i int, q question.Question, format string, args ...any) {
		issues = append(issues, Issue{Index: record(i), ID: q.ID, Message: fmt.Sprintf(format, args...)})
	}

	for i, q := range qs {
		if q.ID == "" {
			add(i, q, "missing id")
		} else if first, dup := seen[q.ID]; dup {
			add(i, q, "duplicate id (first at record %d)", first)
		} else {
			seen[q.ID] = record(i)
		}

		if strings.TrimSpace(q.Text) == "" {
			add(i, q, "empty question text")
		}

		switch q.Kind() {
		case question.KindMultipleChoice:
			idx, ok := q.Answer.Index()
			if !ok || idx < 1 || idx > len(q.Options) {
				add(i, q, "answer %q is not an option number between 1 and %d", q.Answer, len(q.Options))
			}
		case question.KindStructuredBlank:
			markers := len(question.ParseBlanks(q.Text))
			answers := len(question.SplitAnswerList(q.Answer.String()))
			if markers != answers {
				add(i, q, "%d blanks but %d answers", markers, answers)
			}
		case question.KindOX:
			if strings.TrimSpace(q.Answer.String()) == "" {
				add(i, q, "empty O/X answer")
			}
		case question.KindFreeForm:
		}
	}
	return issues
}

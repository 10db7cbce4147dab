package selector

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/abhisek/fincert/internal/question"
)

// DefaultRandomCount is the subset size used when a random selection has no count.
const DefaultRandomCount = 20

var (
	ErrInvalidRange = errors.New("invalid ID range: start is greater than end")
	ErrUnknownMode  = errors.New("unknown selection mode")
)

// Mode is the way a session's questions are chosen.
type Mode string

const (
	ModeAll        Mode = "all"
	ModeCategory   Mode = "category"
	ModeRandom     Mode = "random"
	ModeRange      Mode = "range"
	ModeWrongNotes Mode = "wrong-notes"
)

// ParseMode parses a mode name as typed on the command line or sent over HTTP.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return ModeAll, nil
	case "category", "topic":
		return ModeCategory, nil
	case "random":
		return ModeRandom, nil
	case "range", "exam":
		return ModeRange, nil
	case "wrong-notes", "wrong", "notes", "review":
		return ModeWrongNotes, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Params carries the per-mode filter values.
type Params struct {
	Category string // ModeCategory
	Count    int    // ModeRandom; <= 0 means DefaultRandomCount
	Start    int    // ModeRange, inclusive
	End      int    // ModeRange, inclusive
	SortByID bool   // ModeAll
}

// NoteSource supplies the current wrong-note list.
type NoteSource interface {
	Load() ([]question.Question, error)
}

// Selection is the ordered question list for a new session.
type Selection struct {
	Mode      Mode
	Questions []question.Question
}

// Empty reports whether the selection matched nothing.
func (s Selection) Empty() bool {
	return len(s.Questions) == 0
}

// Selector builds session question lists. It never mutates its input.
type Selector struct {
	rng   *rand.Rand
	notes NoteSource
}

// New creates a Selector. A fixed-seed rng makes every selection reproducible.
func New(rng *rand.Rand, notes NoteSource) *Selector {
	return &Selector{rng: rng, notes: notes}
}

// Select returns the ordered questions for mode. Empty results are not
// errors; invalid parameters are reported without filtering anything.
func (s *Selector) Select(all []question.Question, mode Mode, p Params) (Selection, error) {
	sel := Selection{Mode: mode}

	switch mode {
	case ModeAll:
		sel.Questions = question.Clone(all)
		if p.SortByID {
			question.SortByID(sel.Questions)
		}
		return sel, nil

	case ModeCategory:
		if strings.TrimSpace(p.Category) == "" {
			return sel, nil
		}
		sel.Questions = filter(all, func(q question.Question) bool {
			return q.CategoryOrDefault() == p.Category
		})

	case ModeRandom:
		sel.Questions = s.sample(all, p.Count)

	case ModeRange:
		if p.Start > p.End {
			return sel, fmt.Errorf("%w (%d > %d)", ErrInvalidRange, p.Start, p.End)
		}
		sel.Questions = filter(all, func(q question.Question) bool {
			n, ok := q.ID.Number()
			return ok && n >= p.Start && n <= p.End
		})
		question.SortByID(sel.Questions)
		return sel, nil

	case ModeWrongNotes:
		if s.notes != nil {
			notes, err := s.notes.Load()
			if err == nil {
				sel.Questions = question.Clone(notes)
			}
		}

	default:
		return sel, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	s.shuffle(sel.Questions)
	return sel, nil
}

// sample draws n questions without replacement, or returns all of them when
// the pool is not larger than n.
func (s *Selector) sample(all []question.Question, n int) []question.Question {
	if n <= 0 {
		n = DefaultRandomCount
	}
	if len(all) <= n {
		return question.Clone(all)
	}
	perm := s.rng.Perm(len(all))
	out := make([]question.Question, n)
	for i := 0; i < n; i++ {
		out[i] = all[perm[i]]
	}
	return out
}

func (s *Selector) shuffle(qs []question.Question) {
	s.rng.Shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})
}

func filter(all []question.Question, keep func(question.Question) bool) []question.Question {
	var out []question.Question
	for _, q := range all {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

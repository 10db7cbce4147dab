// Package quiz wires the question bank, selector, session state machine,
// wrong-note store and attempt history together for the presentation layers.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/fincert/internal/bank"
	"github.com/abhisek/fincert/internal/grader"
	"github.com/abhisek/fincert/internal/question"
	"github.com/abhisek/fincert/internal/selector"
	"github.com/abhisek/fincert/internal/session"
	"github.com/abhisek/fincert/internal/store"
)

var (
	// ErrNoQuestions means the requested selection is empty.
	ErrNoQuestions = errors.New("no questions available")

	// ErrUnknownExam means no exam preset has the requested name.
	ErrUnknownExam = errors.New("unknown exam preset")
)

// Exam is a named, fixed ID range from a past exam sitting.
type Exam struct {
	Name  string `json:"name" mapstructure:"name"`
	Start int    `json:"start" mapstructure:"start"`
	End   int    `json:"end" mapstructure:"end"`
}

// NoteStore is the wrong-note persistence the service needs.
type NoteStore interface {
	Load() ([]question.Question, error)
	Add(q question.Question) (bool, error)
	Clear() error
	Len() int
}

// Deps holds the service dependencies. History and Logger are optional.
type Deps struct {
	Bank     *bank.Bank
	Selector *selector.Selector
	Notes    NoteStore
	History  store.HistoryRepo
	Exams    []Exam
	Logger   *zap.Logger

	// RandomCount is the random-mode size used when a request gives none.
	RandomCount int
}

// Service runs quiz sessions.
type Service struct {
	bank     *bank.Bank
	selector *selector.Selector
	notes    NoteStore
	history  store.HistoryRepo
	exams    []Exam
	logger   *zap.Logger
	count    int

	// mu guards the selector's random source.
	mu sync.Mutex
}

// NewService creates a Service.
func NewService(d Deps) *Service {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	b := d.Bank
	if b == nil {
		b = bank.New(nil)
	}
	return &Service{
		bank:     b,
		selector: d.Selector,
		notes:    d.Notes,
		history:  d.History,
		exams:    d.Exams,
		logger:   logger,
		count:    d.RandomCount,
	}
}

// Start selects questions for mode and begins a session.
func (s *Service) Start(ctx context.Context, mode selector.Mode, p selector.Params) (*session.Session, error) {
	return s.start(ctx, string(mode), mode, p)
}

// StartExam begins a session over the named exam preset's ID range.
func (s *Service) StartExam(ctx context.Context, name string) (*session.Session, error) {
	exam, ok := s.Exam(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExam, name)
	}
	return s.start(ctx, exam.Name, selector.ModeRange, selector.Params{Start: exam.Start, End: exam.End})
}

func (s *Service) start(ctx context.Context, label string, mode selector.Mode, p selector.Params) (*session.Session, error) {
	if mode == selector.ModeRandom && p.Count <= 0 {
		p.Count = s.count
	}

	s.mu.Lock()
	sel, err := s.selector.Select(s.bank.Questions(), mode, p)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("select questions: %w", err)
	}
	if sel.Empty() {
		return nil, ErrNoQuestions
	}

	// History writes outlive the request that started the session.
	hctx := context.WithoutCancel(ctx)

	var notes session.WrongNotes
	if s.notes != nil {
		notes = s.notes
	}
	sess := session.New(sel.Questions, session.Options{
		Label:  label,
		Notes:  notes,
		Logger: s.logger,
		OnCommit: func(o session.Outcome) {
			s.recordAttempt(hctx, o)
		},
	})

	if s.history != nil {
		err := s.history.StartSession(hctx, store.SessionRecord{
			ID:        sess.ID(),
			Label:     label,
			Total:     sess.Total(),
			StartedAt: sess.StartedAt(),
		})
		if err != nil {
			s.logger.Warn("history: session not recorded", zap.String("session", sess.ID()), zap.Error(err))
		}
	}

	s.logger.Info("session started",
		zap.String("session", sess.ID()),
		zap.String("mode", string(mode)),
		zap.String("label", label),
		zap.Int("questions", sess.Total()))
	return sess, nil
}

// Submit grades an answer for the current question.
func (s *Service) Submit(_ context.Context, sess *session.Session, c grader.Candidate) error {
	return sess.Submit(c)
}

// SelfGrade records the learner's own verdict.
func (s *Service) SelfGrade(_ context.Context, sess *session.Session, correct bool) error {
	return sess.ResolveSelfGrade(correct)
}

// Advance moves to the next question and closes the history record when
// the session completes.
func (s *Service) Advance(ctx context.Context, sess *session.Session) error {
	if err := sess.Advance(); err != nil {
		return err
	}
	if sess.Phase() != session.PhaseComplete {
		return nil
	}

	sum := sess.Summary()
	s.logger.Info("session complete",
		zap.String("session", sess.ID()),
		zap.Int("correct", sum.Correct),
		zap.Int("answered", sum.Answered),
		zap.Duration("duration", sum.Duration))

	if s.history != nil {
		err := s.history.EndSession(context.WithoutCancel(ctx), sess.ID(), sum.Answered, sum.Correct, time.Now())
		if err != nil {
			s.logger.Warn("history: session end not recorded", zap.String("session", sess.ID()), zap.Error(err))
		}
	}
	return nil
}

func (s *Service) recordAttempt(ctx context.Context, o session.Outcome) {
	if s.history == nil {
		return
	}
	err := s.history.AppendAttempt(ctx, store.Attempt{
		SessionID:  o.SessionID,
		QuestionID: o.Question.ID.String(),
		Category:   o.Question.CategoryOrDefault(),
		Kind:       o.Question.Kind().String(),
		Answer:     CandidateText(o.Answer),
		Verdict:    string(o.Verdict),
		Correct:    o.Correct(),
		SelfGraded: o.SelfGraded,
	})
	if err != nil {
		s.logger.Warn("history: attempt not recorded",
			zap.String("session", o.SessionID),
			zap.Stringer("question", o.Question.ID),
			zap.Error(err))
	}
}

// CandidateText renders a candidate for logs and history.
func CandidateText(c grader.Candidate) string {
	if len(c.Blanks) > 0 {
		return strings.Join(c.Blanks, ", ")
	}
	return c.Choice
}

// Bank returns the loaded question bank.
func (s *Service) Bank() *bank.Bank { return s.bank }

// Total returns the number of questions in the bank.
func (s *Service) Total() int { return s.bank.Len() }

// Categories returns the bank's categories.
func (s *Service) Categories() []string { return s.bank.Categories() }

// Exams returns the configured exam presets.
func (s *Service) Exams() []Exam {
	out := make([]Exam, len(s.exams))
	copy(out, s.exams)
	return out
}

// Exam looks up an exam preset by name.
func (s *Service) Exam(name string) (Exam, bool) {
	for _, e := range s.exams {
		if e.Name == name {
			return e, true
		}
	}
	return Exam{}, false
}

// History returns the attempt history, or nil when disabled.
func (s *Service) History() store.HistoryRepo { return s.history }

// WrongNotes returns the current wrong notes.
func (s *Service) WrongNotes() ([]question.Question, error) {
	if s.notes == nil {
		return nil, nil
	}
	return s.notes.Load()
}

// WrongNoteCount returns the number of stored wrong notes.
func (s *Service) WrongNoteCount() int {
	if s.notes == nil {
		return 0
	}
	return s.notes.Len()
}

// ClearWrongNotes empties the wrong-note store.
func (s *Service) ClearWrongNotes() error {
	if s.notes == nil {
		return nil
	}
	return s.notes.Clear()
}

package session

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/fincert/internal/grader"
	"github.com/abhisek/fincert/internal/question"
)

var (
	ErrAlreadyRevealed  = errors.New("session: answer already revealed")
	ErrNotRevealed      = errors.New("session: answer not revealed yet")
	ErrNotCommitted     = errors.New("session: current question not graded yet")
	ErrNotSelfGraded    = errors.New("session: question was graded automatically")
	ErrAlreadyCommitted = errors.New("session: outcome already recorded")
	ErrEmptyAnswer      = errors.New("session: no answer selected")
	ErrSessionComplete  = errors.New("session: complete")
)

// WrongNotes receives questions the learner missed.
type WrongNotes interface {
	Add(q question.Question) (bool, error)
}

// Options configures a Session. All fields are optional.
type Options struct {
	// Label names the selection, e.g. "random" or an exam preset.
	Label string

	Notes WrongNotes

	// OnCommit is called once for every committed question.
	OnCommit func(Outcome)

	Logger *zap.Logger
}

// Session is one run through an ordered list of questions.
// It is not safe for concurrent use.
type Session struct {
	id        string
	label     string
	questions []question.Question
	position  int
	score     int
	phase     Phase
	turn      Turn
	outcomes  []Outcome
	startedAt time.Time
	endedAt   time.Time

	notes    WrongNotes
	onCommit func(Outcome)
	logger   *zap.Logger
}

// New starts a session over a snapshot of questions.
func New(questions []question.Question, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		id:        uuid.New().String(),
		label:     opts.Label,
		questions: question.Clone(questions),
		phase:     PhaseAwaitingAnswer,
		startedAt: time.Now(),
		notes:     opts.Notes,
		onCommit:  opts.OnCommit,
		logger:    logger,
	}
	if len(s.questions) == 0 {
		s.finish()
	}
	return s
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Label() string        { return s.label }
func (s *Session) Phase() Phase         { return s.phase }
func (s *Session) Position() int        { return s.position }
func (s *Session) Score() int           { return s.score }
func (s *Session) Total() int           { return len(s.questions) }
func (s *Session) Turn() Turn           { return s.turn }
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Current returns the question at the current position. ok is false once
// the session is complete.
func (s *Session) Current() (question.Question, bool) {
	if s.phase == PhaseComplete || s.position >= len(s.questions) {
		return question.Question{}, false
	}
	return s.questions[s.position], true
}

// Outcomes returns the committed results so far, in answer order.
func (s *Session) Outcomes() []Outcome {
	out := make([]Outcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}

// Submit grades c against the current question and reveals the result.
// Automatic verdicts are committed immediately; Indeterminate ones wait for
// ResolveSelfGrade.
func (s *Session) Submit(c grader.Candidate) error {
	switch s.phase {
	case PhaseComplete:
		return ErrSessionComplete
	case PhaseAnswerRevealed:
		return ErrAlreadyRevealed
	}

	q := s.questions[s.position]
	if err := checkCandidate(q, c); err != nil {
		return err
	}

	verdict := grader.Grade(q, c)
	s.turn.Answer = c
	s.turn.Verdict = verdict
	s.phase = PhaseAnswerRevealed

	if verdict != grader.Indeterminate {
		s.commit(verdict, false)
	}
	return nil
}

// ResolveSelfGrade records the learner's own judgement for a question the
// grader could not decide. It succeeds at most once per question.
func (s *Session) ResolveSelfGrade(correct bool) error {
	switch {
	case s.phase == PhaseComplete:
		return ErrSessionComplete
	case s.phase != PhaseAnswerRevealed:
		return ErrNotRevealed
	case s.turn.Verdict != grader.Indeterminate:
		return ErrNotSelfGraded
	case s.turn.Commit == CommitCommitted:
		return ErrAlreadyCommitted
	}

	verdict := grader.Incorrect
	if correct {
		verdict = grader.Correct
	}
	s.commit(verdict, true)
	return nil
}

// commit applies verdict to score or wrong notes. Only the first call per
// question has any effect; it reports whether anything changed.
func (s *Session) commit(verdict grader.Verdict, selfGraded bool) bool {
	if s.turn.Commit == CommitCommitted {
		return false
	}
	s.turn.Commit = CommitCommitted
	s.turn.Final = verdict
	s.turn.SelfGraded = selfGraded

	q := s.questions[s.position]
	if verdict == grader.Correct {
		s.score++
	} else if s.notes != nil {
		if _, err := s.notes.Add(q); err != nil {
			s.turn.NoteErr = err
			s.logger.Warn("wrong note not saved",
				zap.String("session", s.id),
				zap.Stringer("question", q.ID),
				zap.Error(err))
		}
	}

	outcome := Outcome{
		SessionID:  s.id,
		Position:   s.position,
		Question:   q,
		Answer:     s.turn.Answer,
		Verdict:    verdict,
		SelfGraded: selfGraded,
		NoteErr:    s.turn.NoteErr,
	}
	s.outcomes = append(s.outcomes, outcome)

	s.logger.Debug("question committed",
		zap.String("session", s.id),
		zap.Stringer("question", q.ID),
		zap.String("verdict", string(verdict)),
		zap.Bool("self_graded", selfGraded),
		zap.Int("score", s.score))

	if s.onCommit != nil {
		s.onCommit(outcome)
	}
	return true
}

// Advance moves to the next question once the current one is committed.
func (s *Session) Advance() error {
	switch {
	case s.phase == PhaseComplete:
		return ErrSessionComplete
	case s.phase != PhaseAnswerRevealed:
		return ErrNotRevealed
	case s.turn.Commit != CommitCommitted:
		return ErrNotCommitted
	}

	s.position++
	s.turn = Turn{}
	if s.position >= len(s.questions) {
		s.finish()
		return nil
	}
	s.phase = PhaseAwaitingAnswer
	return nil
}

func (s *Session) finish() {
	s.phase = PhaseComplete
	s.endedAt = time.Now()
}

func checkCandidate(q question.Question, c grader.Candidate) error {
	switch q.Kind() {
	case question.KindOX, question.KindMultipleChoice:
		if strings.TrimSpace(c.Choice) == "" {
			return ErrEmptyAnswer
		}
	case question.KindStructuredBlank:
		if c.Empty() {
			return ErrEmptyAnswer
		}
	case question.KindFreeForm:
		// Revealing without typing anything is allowed.
	}
	return nil
}

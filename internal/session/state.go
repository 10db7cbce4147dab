package session

import (
	"github.com/abhisek/fincert/internal/grader"
	"github.com/abhisek/fincert/internal/question"
)

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseAwaitingAnswer Phase = iota // Waiting for the learner's answer
	PhaseAnswerRevealed              // Showing the result of the current question
	PhaseComplete                    // All questions answered; terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseAnswerRevealed:
		return "answer-revealed"
	case PhaseComplete:
		return "complete"
	}
	return "unknown"
}

// MarshalText lets phases appear by name in JSON responses.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// CommitState guards the one-time scoring of a question.
type CommitState int

const (
	CommitPending CommitState = iota
	CommitCommitted
)

// Turn is the transient state of the question being answered.
// It is reset on every Advance.
type Turn struct {
	// Answer is the submitted candidate.
	Answer grader.Candidate

	// Verdict is what the grader returned for Answer.
	Verdict grader.Verdict

	// Final is the verdict that was scored: the grader's, or the learner's
	// self-report when the grader returned Indeterminate.
	Final grader.Verdict

	// SelfGraded is true when Final came from ResolveSelfGrade.
	SelfGraded bool

	// Commit records whether Final has been applied to score and wrong notes.
	Commit CommitState

	// NoteErr holds a wrong-note write failure, if any. Scoring is unaffected.
	NoteErr error
}

// NeedsSelfGrade reports whether the learner still has to judge the answer.
func (t Turn) NeedsSelfGrade() bool {
	return t.Verdict == grader.Indeterminate && t.Commit == CommitPending
}

// Outcome is the committed result of one question.
type Outcome struct {
	SessionID  string
	Position   int
	Question   question.Question
	Answer     grader.Candidate
	Verdict    grader.Verdict
	SelfGraded bool
	NoteErr    error
}

// Correct reports whether the outcome was scored as correct.
func (o Outcome) Correct() bool {
	return o.Verdict == grader.Correct
}

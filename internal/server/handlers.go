package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/abhisek/fincert/internal/grader"
	"github.com/abhisek/fincert/internal/question"
	"github.com/abhisek/fincert/internal/quiz"
	"github.com/abhisek/fincert/internal/selector"
	"github.com/abhisek/fincert/internal/session"
)

var (
	errNoSession   = errors.New("no active session")
	errInvalidJSON = errors.New("invalid json")
	errNoHistory   = errors.New("history is disabled")
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errNoSession), errors.Is(err, errNoHistory):
		return http.StatusNotFound
	case errors.Is(err, quiz.ErrNoQuestions):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errInvalidJSON),
		errors.Is(err, session.ErrEmptyAnswer),
		errors.Is(err, selector.ErrInvalidRange),
		errors.Is(err, selector.ErrUnknownMode),
		errors.Is(err, quiz.ErrUnknownExam):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrAlreadyRevealed),
		errors.Is(err, session.ErrNotRevealed),
		errors.Is(err, session.ErrNotCommitted),
		errors.Is(err, session.ErrNotSelfGraded),
		errors.Is(err, session.ErrAlreadyCommitted),
		errors.Is(err, session.ErrSessionComplete):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeError(w, status, err)
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return errInvalidJSON
}

type bankCategory struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type bankView struct {
	Total      int            `json:"total"`
	Categories []bankCategory `json:"categories"`
	Exams      []quiz.Exam    `json:"exams"`
	WrongNotes int            `json:"wrong_notes"`
	Issues     []string       `json:"issues,omitempty"`
}

func (s *Server) handleBank(w http.ResponseWriter, _ *http.Request) {
	b := s.svc.Bank()
	counts := b.Count()

	v := bankView{
		Total:      b.Len(),
		Categories: make([]bankCategory, 0, len(counts)),
		Exams:      s.svc.Exams(),
		WrongNotes: s.svc.WrongNoteCount(),
	}
	for _, c := range b.Categories() {
		v.Categories = append(v.Categories, bankCategory{Name: c, Count: counts[c]})
	}
	for _, is := range b.Issues() {
		v.Issues = append(v.Issues, is.String())
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	h := s.svc.History()
	if h == nil {
		s.fail(w, r, errNoHistory)
		return
	}
	ctx := r.Context()

	var (
		v   statsView
		err error
	)
	if v.Totals, err = h.Totals(ctx); err != nil {
		s.fail(w, r, err)
		return
	}
	if v.Categories, err = h.CategoryAccuracy(ctx); err != nil {
		s.fail(w, r, err)
		return
	}
	if v.MostMissed, err = h.MostMissed(ctx, 10); err != nil {
		s.fail(w, r, err)
		return
	}
	if v.Recent, err = h.RecentSessions(ctx, 10); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type startRequest struct {
	Mode     string `json:"mode"`
	Exam     string `json:"exam"`
	Category string `json:"category"`
	Count    int    `json:"count"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	SortByID bool   `json:"sort_by_id"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	var (
		sess *session.Session
		err  error
	)
	if req.Exam != "" {
		sess, err = s.svc.StartExam(r.Context(), req.Exam)
	} else {
		var mode selector.Mode
		if mode, err = selector.ParseMode(req.Mode); err == nil {
			sess, err = s.svc.Start(r.Context(), mode, selector.Params{
				Category: req.Category,
				Count:    req.Count,
				Start:    req.Start,
				End:      req.End,
				SortByID: req.SortByID,
			})
		}
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess
	writeJSON(w, http.StatusCreated, newStateView(sess))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.current()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateView(sess))
}

func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.current(); err != nil {
		s.fail(w, r, err)
		return
	}
	s.sess = nil
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var c grader.Candidate
	if err := decode(r, &c); err != nil {
		s.fail(w, r, err)
		return
	}
	s.withSession(w, r, func(sess *session.Session) error {
		return s.svc.Submit(r.Context(), sess, c)
	})
}

type selfGradeRequest struct {
	Correct *bool `json:"correct"`
}

func (s *Server) handleSelfGrade(w http.ResponseWriter, r *http.Request) {
	var req selfGradeRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Correct == nil {
		s.fail(w, r, errInvalidJSON)
		return
	}
	s.withSession(w, r, func(sess *session.Session) error {
		return s.svc.SelfGrade(r.Context(), sess, *req.Correct)
	})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session.Session) error {
		return s.svc.Advance(r.Context(), sess)
	})
}

// withSession runs fn against the live session under the lock and replies
// with the resulting state.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.current()
	if err == nil {
		err = fn(sess)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateView(sess))
}

func (s *Server) handleWrongNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.svc.WrongNotes()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if notes == nil {
		notes = []question.Question{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleClearWrongNotes(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.ClearWrongNotes(); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fincert/internal/store"
)

// stubRepo implements store.HistoryRepo with canned results.
type stubRepo struct {
	totals   store.Totals
	cats     []store.CategoryStat
	missed   []store.MissStat
	sessions []store.SessionRecord
	err      error
}

func (r *stubRepo) StartSession(context.Context, store.SessionRecord) error { return nil }
func (r *stubRepo) EndSession(context.Context, string, int, int, time.Time) error {
	return nil
}
func (r *stubRepo) AppendAttempt(context.Context, store.Attempt) error { return nil }
func (r *stubRepo) RecentSessions(context.Context, int) ([]store.SessionRecord, error) {
	return r.sessions, nil
}
func (r *stubRepo) CategoryAccuracy(context.Context) ([]store.CategoryStat, error) {
	return r.cats, nil
}
func (r *stubRepo) MostMissed(context.Context, int) ([]store.MissStat, error) {
	return r.missed, nil
}
func (r *stubRepo) Totals(context.Context) (store.Totals, error) { return r.totals, r.err }
func (r *stubRepo) Reset(context.Context) error                  { return nil }

func loaded(t *testing.T, repo store.HistoryRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	s.Update(s.Init()())
	return s
}

func TestHistoryView(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := loaded(t, &stubRepo{
		totals: store.Totals{Sessions: 2, Attempts: 10, Correct: 7},
		cats:   []store.CategoryStat{{Category: "채권", Attempts: 10, Correct: 7}},
		missed: []store.MissStat{{QuestionID: "42", Category: "채권", Attempts: 3, Misses: 2}},
		sessions: []store.SessionRecord{
			{ID: "b", Label: "random", Total: 5, Answered: 2, Score: 1, StartedAt: start.Add(time.Hour)},
			{ID: "a", Label: "all", Total: 8, Answered: 8, Score: 6, StartedAt: start, EndedAt: start.Add(90 * time.Second)},
		},
	})

	view := s.View(100, 40)
	for _, want := range []string{"2 sessions", "70% correct", "채권", "#42", "missed 2 of 3", "(unfinished)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 40), "8 questions in 1:30") {
		t.Error("expanded session should show its duration")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selection should stop at the last session, got %d", s.selected)
	}
}

func TestHistoryEmpty(t *testing.T) {
	s := loaded(t, &stubRepo{})
	if !strings.Contains(s.View(80, 20), "No sessions yet") {
		t.Error("expected empty state")
	}
}

func TestHistoryError(t *testing.T) {
	s := loaded(t, &stubRepo{err: errors.New("database is locked")})
	if !strings.Contains(s.View(80, 20), "database is locked") {
		t.Error("expected the load error")
	}
}

func TestHistoryLoading(t *testing.T) {
	s := New(&stubRepo{})
	if !strings.Contains(s.View(80, 20), "Loading") {
		t.Error("expected loading state before the first load")
	}
}

func TestHistoryDisabled(t *testing.T) {
	s := loaded(t, nil)
	if !strings.Contains(s.View(80, 20), "disabled") {
		t.Error("nil repo should report history disabled")
	}
}

package home

import (
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fincert/internal/bank"
	"github.com/abhisek/fincert/internal/question"
	"github.com/abhisek/fincert/internal/quiz"
	"github.com/abhisek/fincert/internal/router"
	"github.com/abhisek/fincert/internal/screens/notice"
	sessionscreen "github.com/abhisek/fincert/internal/screens/session"
	"github.com/abhisek/fincert/internal/selector"
	"github.com/abhisek/fincert/internal/wrongnote"
)

func newTestHome(t *testing.T) (*HomeScreen, *wrongnote.Store) {
	t.Helper()
	notes := wrongnote.New(filepath.Join(t.TempDir(), "wrong_notes.json"), nil)
	svc := quiz.NewService(quiz.Deps{
		Bank: bank.New([]question.Question{
			{ID: "1", Category: "채권", Type: "OX", Text: "a", Answer: "O"},
			{ID: "2", Category: "주식", Type: "OX", Text: "b", Answer: "X"},
		}),
		Selector: selector.New(rand.New(rand.NewSource(1)), notes),
		Notes:    notes,
		Exams:    []quiz.Exam{{Name: "제30회", Start: 1, End: 2}},
	})
	return New(svc), notes
}

func labels(h *HomeScreen) []string {
	var out []string
	for _, it := range h.menu.Items {
		out = append(out, it.Label)
	}
	return out
}

func itemIndex(t *testing.T, h *HomeScreen, prefix string) int {
	t.Helper()
	for i, it := range h.menu.Items {
		if strings.HasPrefix(it.Label, prefix) {
			return i
		}
	}
	t.Fatalf("no menu item %q in %v", prefix, labels(h))
	return -1
}

func TestMenuItems(t *testing.T) {
	h, _ := newTestHome(t)

	got := strings.Join(labels(h), "|")
	want := "ALL QUESTIONS|BY CATEGORY|RANDOM DRILL|BY ID RANGE|EXAM 제30회|WRONG NOTES (0)|HISTORY & STATS|CLEAR WRONG NOTES|QUIT"
	if got != want {
		t.Errorf("menu = %s\nwant   %s", got, want)
	}

	for _, prefix := range []string{"WRONG NOTES", "CLEAR WRONG NOTES", "HISTORY"} {
		if !h.menu.Items[itemIndex(t, h, prefix)].Disabled {
			t.Errorf("%s should be disabled", prefix)
		}
	}
	if h.Status() != "✎ 0 notes" {
		t.Errorf("unexpected status %q", h.Status())
	}
}

func TestResumeRefreshesNotes(t *testing.T) {
	h, notes := newTestHome(t)
	h.menu.Select(2)

	if _, err := notes.Add(question.Question{ID: "1", Type: "OX", Text: "a", Answer: "O"}); err != nil {
		t.Fatal(err)
	}
	h.Resume()

	i := itemIndex(t, h, "WRONG NOTES")
	if h.menu.Items[i].Label != "WRONG NOTES (1)" || h.menu.Items[i].Disabled {
		t.Errorf("wrong notes item not refreshed: %+v", h.menu.Items[i])
	}
	if h.menu.Selected != 2 {
		t.Errorf("cursor should stay put, got %d", h.menu.Selected)
	}
}

func TestStartAllPushesSession(t *testing.T) {
	h, _ := newTestHome(t)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a start command")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Errorf("expected PushScreenMsg, got %T", cmd())
	}
}

func TestStartFailedShowsNotice(t *testing.T) {
	h, _ := newTestHome(t)

	_, cmd := h.Update(sessionscreen.StartFailedMsg{Err: quiz.ErrNoQuestions})
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*notice.NoticeScreen); !ok {
		t.Fatalf("expected a notice, got %T", push.Screen)
	}
	if !strings.Contains(push.Screen.View(80, 20), "No questions match") {
		t.Error("expected a friendly message")
	}
}

func TestClearNotes(t *testing.T) {
	h, notes := newTestHome(t)
	if _, err := notes.Add(question.Question{ID: "2", Type: "OX", Text: "b", Answer: "X"}); err != nil {
		t.Fatal(err)
	}
	h.Resume()

	h.menu.Select(itemIndex(t, h, "CLEAR WRONG NOTES"))
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected confirm screen, got %T", cmd())
	}

	push.Screen.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if notes.Len() != 0 {
		t.Errorf("notes should be cleared, got %d", notes.Len())
	}
}

func TestViewRendersStats(t *testing.T) {
	h, _ := newTestHome(t)
	for _, size := range [][2]int{{120, 60}, {80, 18}} {
		view := h.View(size[0], size[1])
		if !strings.Contains(view, "ALL QUESTIONS") {
			t.Errorf("%dx%d: menu missing", size[0], size[1])
		}
	}
	if !strings.Contains(h.View(120, 60), "2 QUESTIONS") {
		t.Error("stats bar should show the bank size")
	}
}

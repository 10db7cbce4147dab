package notice

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fincert/internal/router"
)

func TestNoticeAnyKeyPops(t *testing.T) {
	n := New("Oops", "No wrong notes yet.")
	if !strings.Contains(n.View(80, 20), "No wrong notes yet.") {
		t.Error("message should be visible")
	}

	_, cmd := n.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestNoticeIgnoresEscape(t *testing.T) {
	n := New("Oops", "msg")
	if _, cmd := n.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("esc is popped by the app, the notice must not pop twice")
	}
}

func TestConfirmYes(t *testing.T) {
	called := false
	n := NewConfirm("Clear", "Clear all wrong notes?", func() tea.Cmd {
		called = true
		return nil
	})

	if _, cmd := n.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}); cmd != nil {
		t.Error("other keys should be ignored by a confirm")
	}

	_, cmd := n.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if cmd == nil {
		t.Fatal("expected a command on y")
	}
	if !called {
		t.Error("onYes should run on y")
	}
}

func TestConfirmNo(t *testing.T) {
	called := false
	n := NewConfirm("Clear", "Clear?", func() tea.Cmd {
		called = true
		return nil
	})
	_, cmd := n.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	if cmd == nil {
		t.Fatal("expected a pop on n")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
	if called {
		t.Error("onYes must not run on n")
	}
	if hints := n.KeyHints(); len(hints) != 2 {
		t.Errorf("confirm hints = %d, want 2", len(hints))
	}
}

package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fincert/internal/bank"
	"github.com/abhisek/fincert/internal/question"
	"github.com/abhisek/fincert/internal/router"
	"github.com/abhisek/fincert/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func testBank() *bank.Bank {
	return bank.New([]question.Question{
		{ID: "1", Category: "채권", Type: "OX", Text: "q1", Answer: "O"},
		{ID: "2", Category: "주식", Text: "q2", Options: []string{"a", "b"}, Answer: "5"},
	})
}

func newTestWelcomeWithCounter(b *bank.Bank) (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(b, factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) (screen.Screen, tea.Cmd) {
	var s screen.Screen = w
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		s, cmd = s.Update(tickMsg(time.Now()))
	}
	return s, cmd
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcomeWithCounter(testBank())

	view := w.View(80, 24)
	if strings.Contains(view, "certification drill") {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 3)
	if w.elapsed != 300*time.Millisecond {
		t.Errorf("expected elapsed 300ms, got %v", w.elapsed)
	}
	view = w.View(80, 24)
	if !strings.Contains(view, "certification drill") {
		t.Error("tagline should be visible after phase 1")
	}
	if strings.Contains(view, "press any key") {
		t.Error("hint should wait for phase 2")
	}

	sendTicks(w, 5)
	view = w.View(80, 24)
	if !strings.Contains(view, "2 questions in 2 categories") {
		t.Errorf("bank status missing:\n%s", view)
	}
	if !strings.Contains(view, "1 bank problem(s)") {
		t.Errorf("bank issue missing:\n%s", view)
	}
}

func TestEmptyBankStatus(t *testing.T) {
	b, _ := bank.Load("/nonexistent/database.json")
	w, _ := newTestWelcomeWithCounter(b)
	sendTicks(w, 10)

	view := w.View(100, 30)
	if !strings.Contains(view, "No questions loaded from /nonexistent/database.json") {
		t.Errorf("expected empty bank notice:\n%s", view)
	}
}

func TestKeypressDuringAnimationSkipsToTransition(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter(testBank())

	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress during animation should trigger transition")
	}
	msg := cmd()
	if _, ok := msg.(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestTicksStopAfterAnimation(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter(testBank())

	_, cmd := sendTicks(w, 30)
	if cmd != nil {
		t.Error("ticks should stop once the animation is done")
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter(testBank())

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcomeWithCounter(testBank())
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}

func TestCompactBanner(t *testing.T) {
	if got := RenderBanner(40); !strings.Contains(got, bannerCompact) {
		t.Errorf("narrow terminals should get the compact banner, got %q", got)
	}
}

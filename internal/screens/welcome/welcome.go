package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fincert/internal/bank"
	"github.com/abhisek/fincert/internal/router"
	"github.com/abhisek/fincert/internal/screen"
	"github.com/abhisek/fincert/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 300 * time.Millisecond
	phase2End    = 800 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

// maxIssuesShown caps the bank problems listed on the splash.
const maxIssuesShown = 3

type tickMsg time.Time

// WelcomeScreen shows the banner and the loaded bank's status before
// transitioning to the home screen.
type WelcomeScreen struct {
	bank         *bank.Bank
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(b *bank.Bank, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		bank:        b,
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the rest of the animation.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	if w.elapsed >= phase1End {
		sections = append(sections, RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Financial certification drill"))
	}

	if w.elapsed >= phase2End {
		sections = append(sections, "", w.bankStatus())
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue"))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// bankStatus summarizes the loaded bank and lists the first few problems.
func (w *WelcomeScreen) bankStatus() string {
	if w.bank == nil || w.bank.Len() == 0 {
		msg := "No questions loaded."
		if w.bank != nil && w.bank.Path() != "" {
			msg = fmt.Sprintf("No questions loaded from %s.", w.bank.Path())
		}
		return lipgloss.NewStyle().Foreground(theme.Error).Render(msg)
	}

	lines := []string{lipgloss.NewStyle().Foreground(theme.Secondary).Render(
		fmt.Sprintf("%d questions in %d categories", w.bank.Len(), len(w.bank.Categories())))}

	issues := w.bank.Issues()
	if len(issues) > 0 {
		warn := lipgloss.NewStyle().Foreground(theme.Accent)
		lines = append(lines, warn.Render(fmt.Sprintf("%d bank problem(s):", len(issues))))
		for i, is := range issues {
			if i == maxIssuesShown {
				lines = append(lines, warn.Render(fmt.Sprintf("  … and %d more", len(issues)-maxIssuesShown)))
				break
			}
			lines = append(lines, warn.Render("  "+is.String()))
		}
	}
	return strings.Join(lines, "\n")
}

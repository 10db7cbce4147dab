package home

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fincert/internal/quiz"
	"github.com/abhisek/fincert/internal/router"
	"github.com/abhisek/fincert/internal/screen"
	"github.com/abhisek/fincert/internal/screens/category"
	"github.com/abhisek/fincert/internal/screens/history"
	"github.com/abhisek/fincert/internal/screens/notice"
	"github.com/abhisek/fincert/internal/screens/rangeform"
	sessionscreen "github.com/abhisek/fincert/internal/screens/session"
	"github.com/abhisek/fincert/internal/selector"
	"github.com/abhisek/fincert/internal/ui/components"
	"github.com/abhisek/fincert/internal/ui/layout"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	svc   *quiz.Service
	menu  components.Menu
	notes int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc *quiz.Service) *HomeScreen {
	h := &HomeScreen{svc: svc}
	h.refresh()
	return h
}

// refresh rebuilds the menu from the current bank and wrong-note counts,
// keeping the cursor where it was when possible.
func (h *HomeScreen) refresh() {
	prev := h.menu.Selected
	h.notes = h.svc.WrongNoteCount()
	h.menu = components.NewMenu(h.menuItems())
	if prev > 0 {
		h.menu.Select(prev)
	}
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	svc := h.svc
	empty := svc.Total() == 0

	push := func(s screen.Screen) tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}

	items := []components.MenuItem{
		{Label: "ALL QUESTIONS", Disabled: empty, Action: func() tea.Cmd {
			return sessionscreen.Start(svc, selector.ModeAll, selector.Params{SortByID: true})
		}},
		{Label: "BY CATEGORY", Disabled: empty, Action: func() tea.Cmd {
			return push(category.New(svc))
		}},
		{Label: "RANDOM DRILL", Disabled: empty, Action: func() tea.Cmd {
			return sessionscreen.Start(svc, selector.ModeRandom, selector.Params{})
		}},
		{Label: "BY ID RANGE", Disabled: empty, Action: func() tea.Cmd {
			return push(rangeform.New(svc))
		}},
	}

	for _, e := range svc.Exams() {
		name := e.Name
		items = append(items, components.MenuItem{
			Label:    "EXAM " + name,
			Disabled: empty,
			Action: func() tea.Cmd {
				return sessionscreen.StartExam(svc, name)
			},
		})
	}

	items = append(items,
		components.MenuItem{
			Label:    fmt.Sprintf("WRONG NOTES (%d)", h.notes),
			Disabled: h.notes == 0,
			Action: func() tea.Cmd {
				return sessionscreen.Start(svc, selector.ModeWrongNotes, selector.Params{})
			},
		},
		components.MenuItem{
			Label:    "HISTORY & STATS",
			Disabled: svc.History() == nil,
			Action: func() tea.Cmd {
				return push(history.New(svc.History()))
			},
		},
		components.MenuItem{
			Label:    "CLEAR WRONG NOTES",
			Disabled: h.notes == 0,
			Action: func() tea.Cmd {
				return push(notice.NewConfirm("Clear wrong notes",
					fmt.Sprintf("Remove all %d wrong notes?", h.notes),
					h.clearNotes))
			},
		},
		components.MenuItem{
			Label:  "QUIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
	return items
}

func (h *HomeScreen) clearNotes() tea.Cmd {
	if err := h.svc.ClearWrongNotes(); err != nil {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: notice.New("Clear wrong notes",
				"Could not clear wrong notes: "+err.Error())}
		}
	}
	return nil
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes counts after a session or a notes change.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(sessionscreen.StartFailedMsg); ok {
		return h, func() tea.Msg {
			return router.PushScreenMsg{Screen: notice.New("Cannot start", startFailure(msg.Err))}
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// startFailure turns a session start error into a message for the learner.
func startFailure(err error) string {
	switch {
	case errors.Is(err, quiz.ErrNoQuestions):
		return "No questions match this selection."
	case errors.Is(err, selector.ErrInvalidRange):
		return "The start ID must not be greater than the end ID."
	}
	return err.Error()
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	compact := layout.IsCompactWidth(width) ||
		layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(h.svc.Total(), len(h.svc.Categories()), h.notes, cw, compact))

	if h.svc.Total() == 0 {
		sections = append(sections, renderWarning("No questions loaded. Check the bank path (fincert --bank).", cw))
	}

	// Bordered buttons take three rows each.
	if compact || height < len(h.menu.Items)*3+16 {
		sections = append(sections, renderListMenu(h.menu, cw))
	} else {
		sections = append(sections, renderButtonMenu(h.menu, cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Status() string {
	return fmt.Sprintf("✎ %d notes", h.notes)
}

package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fincert/internal/screen"
	"github.com/abhisek/fincert/internal/store"
	"github.com/abhisek/fincert/internal/ui/components"
	"github.com/abhisek/fincert/internal/ui/layout"
	"github.com/abhisek/fincert/internal/ui/theme"
)

const (
	recentLimit = 20
	missedLimit = 5

	// passMark is the per-subject accuracy needed to pass.
	passMark = 0.4
)

type historyLoadedMsg struct {
	Totals     store.Totals
	Categories []store.CategoryStat
	Missed     []store.MissStat
	Sessions   []store.SessionRecord
	Err        error
}

// HistoryScreen displays overall accuracy, trouble spots, and past sessions.
type HistoryScreen struct {
	repo       store.HistoryRepo
	totals     store.Totals
	categories []store.CategoryStat
	missed     []store.MissStat
	sessions   []store.SessionRecord
	selected   int
	expanded   map[int]bool
	loaded     bool
	errMsg     string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.HistoryRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		return load(context.Background(), repo)
	}
}

func load(ctx context.Context, repo store.HistoryRepo) historyLoadedMsg {
	var msg historyLoadedMsg
	if repo == nil {
		msg.Err = fmt.Errorf("history is disabled")
		return msg
	}

	if msg.Totals, msg.Err = repo.Totals(ctx); msg.Err != nil {
		return msg
	}
	if msg.Categories, msg.Err = repo.CategoryAccuracy(ctx); msg.Err != nil {
		return msg
	}
	if msg.Missed, msg.Err = repo.MostMissed(ctx, missedLimit); msg.Err != nil {
		return msg
	}
	msg.Sessions, msg.Err = repo.RecentSessions(ctx, recentLimit)
	return msg
}

func (s *HistoryScreen) Title() string {
	return "History & Stats"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.totals = msg.Totals
			s.categories = msg.Categories
			s.missed = msg.Missed
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if s.totals.Sessions == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start practicing!")
	}

	cw := components.ContentWidth(width)
	center := func(text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
	}
	heading := func(title string) string {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim).Render(title)) + "\n" +
			center(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")

	var accuracy float64
	if s.totals.Attempts > 0 {
		accuracy = float64(s.totals.Correct) / float64(s.totals.Attempts)
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(
		fmt.Sprintf("%d sessions    %d answers    %.0f%% correct",
			s.totals.Sessions, s.totals.Attempts, accuracy*100))))
	b.WriteString("\n\n")

	if len(s.categories) > 0 {
		b.WriteString(heading("Accuracy by category"))
		for _, c := range s.categories {
			label := fmt.Sprintf("%-10s %3d/%-3d", c.Category, c.Correct, c.Attempts)
			bar := components.NewAccuracyBar(label, c.Accuracy(), passMark, cw)
			b.WriteString(center(bar.View()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(s.missed) > 0 {
		b.WriteString(heading("Most missed"))
		for _, m := range s.missed {
			line := fmt.Sprintf("#%-6s %-10s missed %d of %d", m.QuestionID, m.Category, m.Misses, m.Attempts)
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error).Render(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(heading("Recent sessions"))
	for i, rec := range s.sessions {
		b.WriteString(center(s.renderSession(i, rec)))
		b.WriteString("\n")
		if s.expanded[i] {
			b.WriteString(center(renderDetails(rec)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderSession(i int, rec store.SessionRecord) string {
	prefix := "  "
	if i == s.selected {
		prefix = "▸ "
	}

	var pct float64
	if rec.Answered > 0 {
		pct = float64(rec.Score) / float64(rec.Answered) * 100
	}
	line := fmt.Sprintf("%s%s  %-14s %3d/%-3d %3.0f%%",
		prefix, rec.StartedAt.Local().Format("Jan 02 15:04"), rec.Label, rec.Score, rec.Answered, pct)
	if !rec.Finished() {
		line += "  (unfinished)"
	}

	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	return style.Render(line)
}

func renderDetails(rec store.SessionRecord) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if !rec.Finished() {
		return dim.Render(fmt.Sprintf("    %d of %d questions answered before leaving", rec.Answered, rec.Total))
	}
	d := rec.EndedAt.Sub(rec.StartedAt)
	return dim.Render(fmt.Sprintf("    %d questions in %d:%02d",
		rec.Total, int(d.Minutes()), int(d.Seconds())%60))
}

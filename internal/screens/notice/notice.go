package notice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fincert/internal/router"
	"github.com/abhisek/fincert/internal/screen"
	"github.com/abhisek/fincert/internal/ui/layout"
	"github.com/abhisek/fincert/internal/ui/theme"
)

// NoticeScreen shows a short message, optionally asking for a yes/no
// confirmation. It pops itself once answered.
type NoticeScreen struct {
	title   string
	message string
	onYes   func() tea.Cmd
}

var _ screen.Screen = (*NoticeScreen)(nil)
var _ screen.KeyHintProvider = (*NoticeScreen)(nil)

// New creates a notice that any key dismisses.
func New(title, message string) *NoticeScreen {
	return &NoticeScreen{title: title, message: message}
}

// NewConfirm creates a yes/no prompt. onYes runs after the prompt closes.
func NewConfirm(title, message string, onYes func() tea.Cmd) *NoticeScreen {
	return &NoticeScreen{title: title, message: message, onYes: onYes}
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Title() string {
	return n.title
}

func (n *NoticeScreen) KeyHints() []layout.KeyHint {
	if n.onYes == nil {
		return []layout.KeyHint{{Key: "Any key", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Y", Description: "Yes"},
		{Key: "N", Description: "No"},
	}
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return n, nil
	}
	pop := func() tea.Msg { return router.PopScreenMsg{} }

	if n.onYes == nil {
		if kmsg.String() == "esc" {
			// The app pops on Esc already.
			return n, nil
		}
		return n, pop
	}

	switch kmsg.String() {
	case "y", "Y":
		return n, tea.Sequence(pop, n.onYes())
	case "n", "N":
		return n, pop
	}
	return n, nil
}

func (n *NoticeScreen) View(width, height int) string {
	body := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(n.message)

	prompt := "press any key to go back"
	if n.onYes != nil {
		prompt = "[Y] Yes    [N] No"
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		body,
		"",
		theme.Hint.Render(prompt),
	)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

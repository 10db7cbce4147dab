package session

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fincert/internal/quiz"
	"github.com/abhisek/fincert/internal/router"
	"github.com/abhisek/fincert/internal/selector"
	sess "github.com/abhisek/fincert/internal/session"
)

// Start returns a command that selects questions for mode and pushes the
// quiz screen, or reports StartFailedMsg.
func Start(svc *quiz.Service, mode selector.Mode, p selector.Params) tea.Cmd {
	return func() tea.Msg {
		s, err := svc.Start(context.Background(), mode, p)
		return started(svc, s, err)
	}
}

// StartExam is Start for a named exam preset.
func StartExam(svc *quiz.Service, name string) tea.Cmd {
	return func() tea.Msg {
		s, err := svc.StartExam(context.Background(), name)
		return started(svc, s, err)
	}
}

func started(svc *quiz.Service, s *sess.Session, err error) tea.Msg {
	if err != nil {
		return StartFailedMsg{Err: err}
	}
	return router.PushScreenMsg{Screen: New(svc, s)}
}

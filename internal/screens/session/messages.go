package session

import (
	sess "github.com/abhisek/fincert/internal/session"
)

// StartFailedMsg reports that a session could not be started. The screen
// that asked for the session decides how to show it.
type StartFailedMsg struct {
	Err error
}

// sessionEndMsg is sent once the last question has been advanced past.
type sessionEndMsg struct {
	Summary sess.Summary
}

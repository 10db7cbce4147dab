package session

import (
	"github.com/abhisek/fincert/internal/screen"
	"github.com/abhisek/fincert/internal/screens/summary"
	sess "github.com/abhisek/fincert/internal/session"
)

// newSummaryScreenAdapter creates a summary screen from session data.
func newSummaryScreenAdapter(s sess.Summary) screen.Screen {
	return summary.New(s)
}

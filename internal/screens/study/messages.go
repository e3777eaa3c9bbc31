package study

import (
	"github.com/ksuda/kioku/internal/session"
)

// deckReadyMsg is sent when the deck has been assembled and the session
// start event persisted.
type deckReadyMsg struct {
	State *session.State
	Err   error
}

// gradePersistedMsg is sent after a grade has been written to the store.
type gradePersistedMsg struct {
	Err error
}

// studyEndMsg is sent to trigger the session end flow.
type studyEndMsg struct {
	abandoned bool
}

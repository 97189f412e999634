package tui

import (
	"github.com/nikostojak/repertoire/internal/session"
)

// planReadyMsg is sent when the learner state is loaded and a plan is built.
type planReadyMsg struct {
	Plan  *session.Plan
	State session.State
	Err   error
}

// sessionSavedMsg is sent when the finished session has been persisted.
type sessionSavedMsg struct {
	State   session.State
	Summary *session.Summary
	Err     error
}

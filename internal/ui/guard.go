package ui

import "jobpilot-client/internal/session"

type View int

const (
	// ViewLoading is the neutral view shown while the initial session
	// restore has not settled. Protected content must never render in this
	// state, not even for a frame.
	ViewLoading View = iota
	ViewLogin
	ViewMain
)

// Gate decides what may render for a protected destination given the current
// session state.
func Gate(status session.Status) View {
	switch status {
	case session.StatusAuthenticating:
		return ViewLoading
	case session.StatusAuthenticated:
		return ViewMain
	default:
		return ViewLogin
	}
}

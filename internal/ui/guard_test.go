package ui_test

import (
	"testing"

	"jobpilot-client/internal/session"
	"jobpilot-client/internal/ui"
)

func TestGate_AuthenticatingBlocksProtectedViews(t *testing.T) {
	// The restore check must settle before anything protected renders.
	if got := ui.Gate(session.StatusAuthenticating); got != ui.ViewLoading {
		t.Errorf("Gate(authenticating) = %v, want ViewLoading", got)
	}
}

func TestGate_Settled(t *testing.T) {
	if got := ui.Gate(session.StatusUnauthenticated); got != ui.ViewLogin {
		t.Errorf("Gate(unauthenticated) = %v, want ViewLogin", got)
	}
	if got := ui.Gate(session.StatusAuthenticated); got != ui.ViewMain {
		t.Errorf("Gate(authenticated) = %v, want ViewMain", got)
	}
}

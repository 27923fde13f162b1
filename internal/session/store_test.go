package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/zalando/go-keyring"

	"jobpilot-client/internal/api"
	"jobpilot-client/internal/session"
)

type fakeBackend struct {
	loginFn    func(ctx context.Context, username, password string) (string, error)
	registerFn func(ctx context.Context, email, password, fullName string) error
	meFn       func(ctx context.Context) (api.UserProfile, error)
}

func (f *fakeBackend) Login(ctx context.Context, u, p string) (string, error) {
	return f.loginFn(ctx, u, p)
}
func (f *fakeBackend) Register(ctx context.Context, e, p, n string) error {
	return f.registerFn(ctx, e, p, n)
}
func (f *fakeBackend) Me(ctx context.Context) (api.UserProfile, error) {
	return f.meFn(ctx)
}

type memTokens struct {
	mu  sync.Mutex
	tok string
}

func (m *memTokens) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tok, nil
}
func (m *memTokens) Save(tok string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok = tok
	return nil
}
func (m *memTokens) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok = ""
	return nil
}
func (m *memTokens) get() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tok
}

func newStore(tokens session.TokenStore, b session.Backend) *session.Store {
	s := session.New(tokens)
	s.Bind(b)
	return s
}

// ── Restore ────────────────────────────────────────────────────────────────

func TestRestore_NoToken(t *testing.T) {
	called := false
	s := newStore(&memTokens{}, &fakeBackend{
		meFn: func(ctx context.Context) (api.UserProfile, error) {
			called = true
			return api.UserProfile{}, nil
		},
	})

	s.Restore(context.Background())

	if s.Status() != session.StatusUnauthenticated {
		t.Errorf("status = %v, want unauthenticated", s.Status())
	}
	if called {
		t.Error("no persisted token should mean no profile fetch")
	}
}

func TestRestore_InvalidToken_SilentLogout(t *testing.T) {
	tokens := &memTokens{tok: "stale"}
	s := newStore(tokens, &fakeBackend{
		meFn: func(ctx context.Context) (api.UserProfile, error) {
			return api.UserProfile{}, &api.Error{Op: "fetch profile", Status: 401}
		},
	})

	s.Restore(context.Background())

	if s.Status() != session.StatusUnauthenticated {
		t.Errorf("status = %v, want unauthenticated", s.Status())
	}
	if tokens.get() != "" {
		t.Errorf("stale token should be discarded, still have %q", tokens.get())
	}
	if s.Token() != "" {
		t.Errorf("in-memory token should be cleared, got %q", s.Token())
	}
}

func TestRestore_ValidToken(t *testing.T) {
	s := newStore(&memTokens{tok: "good"}, &fakeBackend{
		meFn: func(ctx context.Context) (api.UserProfile, error) {
			return api.UserProfile{ID: 7, FullName: "Alice"}, nil
		},
	})

	s.Restore(context.Background())

	if s.Status() != session.StatusAuthenticated {
		t.Fatalf("status = %v, want authenticated", s.Status())
	}
	if s.User().FullName != "Alice" {
		t.Errorf("user = %+v", s.User())
	}
	if s.Token() != "good" {
		t.Errorf("token = %q", s.Token())
	}
}

// ── Login ──────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	tokens := &memTokens{}
	s := newStore(tokens, &fakeBackend{
		loginFn: func(ctx context.Context, u, p string) (string, error) {
			return "fresh", nil
		},
		meFn: func(ctx context.Context) (api.UserProfile, error) {
			return api.UserProfile{FullName: "Alice"}, nil
		},
	})

	if err := s.Login(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.Status() != session.StatusAuthenticated {
		t.Errorf("status = %v, want authenticated", s.Status())
	}
	if tokens.get() != "fresh" {
		t.Errorf("persisted token = %q, want %q", tokens.get(), "fresh")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	tokens := &memTokens{}
	s := newStore(tokens, &fakeBackend{
		loginFn: func(ctx context.Context, u, p string) (string, error) {
			return "", &api.Error{Op: "log in", Status: 401}
		},
	})

	err := s.Login(context.Background(), "alice", "wrongpass")
	if err == nil {
		t.Fatal("expected error for 401")
	}
	if !api.IsStatus(err, 401) {
		t.Errorf("err = %v, want 401", err)
	}
	if s.Status() != session.StatusUnauthenticated {
		t.Errorf("status = %v, want unauthenticated", s.Status())
	}
	if tokens.get() != "" {
		t.Errorf("nothing should be persisted, got %q", tokens.get())
	}
}

// ── logout beats an in-flight login ────────────────────────────────────────

func TestLogout_WinsOverInflightLogin(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	tokens := &memTokens{}
	s := newStore(tokens, &fakeBackend{
		loginFn: func(ctx context.Context, u, p string) (string, error) {
			close(started)
			<-release
			return "late-token", nil
		},
		meFn: func(ctx context.Context) (api.UserProfile, error) {
			return api.UserProfile{FullName: "Alice"}, nil
		},
	})

	errc := make(chan error, 1)
	go func() { errc <- s.Login(context.Background(), "alice", "pw") }()

	<-started
	s.Logout()
	close(release)

	select {
	case err := <-errc:
		if !errors.Is(err, session.ErrSuperseded) {
			t.Errorf("err = %v, want ErrSuperseded", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("login never returned")
	}

	if s.Status() != session.StatusUnauthenticated {
		t.Errorf("status = %v, want unauthenticated", s.Status())
	}
	if tokens.get() != "" {
		t.Errorf("superseded login must not persist, got %q", tokens.get())
	}
	if s.Token() != "" {
		t.Errorf("token = %q, want empty", s.Token())
	}
}

// ── Register ───────────────────────────────────────────────────────────────

func TestRegister_DoesNotAuthenticate(t *testing.T) {
	s := newStore(&memTokens{}, &fakeBackend{
		registerFn: func(ctx context.Context, e, p, n string) error { return nil },
	})

	if err := s.Register(context.Background(), "a@b.c", "pw", "Alice"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if s.Status() != session.StatusUnauthenticated {
		t.Errorf("register must not log the user in, status = %v", s.Status())
	}
}

// ── keyring slot ───────────────────────────────────────────────────────────

func TestKeyringTokens_RoundTrip(t *testing.T) {
	keyring.MockInit()

	var ks session.KeyringTokens
	if tok, err := ks.Load(); err != nil || tok != "" {
		t.Fatalf("empty slot: tok=%q err=%v", tok, err)
	}
	if err := ks.Save("abc"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if tok, _ := ks.Load(); tok != "abc" {
		t.Errorf("Load = %q, want abc", tok)
	}
	if err := ks.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := ks.Clear(); err != nil {
		t.Errorf("clearing an empty slot should be a no-op, got %v", err)
	}
	if tok, _ := ks.Load(); tok != "" {
		t.Errorf("Load after Clear = %q", tok)
	}
}

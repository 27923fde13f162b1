package session

import (
	"context"
	"errors"
	"log"
	"sync"

	"jobpilot-client/internal/api"
)

type Status int

const (
	StatusUnauthenticated Status = iota
	StatusAuthenticating
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// ErrSuperseded means a later session mutation (typically a logout) landed
// while this one was in flight; its result was discarded.
var ErrSuperseded = errors.New("session mutation superseded")

// Backend is the slice of the API client the store needs.
type Backend interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, email, password, fullName string) error
	Me(ctx context.Context) (api.UserProfile, error)
}

// Store is the process-wide session state: exactly one exists, constructed in
// main and passed by handle. Mutations are serialized by a sequence number
// taken at dispatch and re-checked at commit, so whichever mutation was
// issued last wins regardless of network timing.
type Store struct {
	mu      sync.Mutex
	backend Backend
	tokens  TokenStore
	seq     uint64

	status Status
	token  string
	user   api.UserProfile
}

func New(tokens TokenStore) *Store {
	return &Store{tokens: tokens}
}

// Bind attaches the API client. Done once in main, after the client has been
// built with this store as its token source.
func (s *Store) Bind(b Backend) { s.backend = b }

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Store) User() api.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Store) IsAuthenticated() bool { return s.Status() == StatusAuthenticated }

func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// commit runs fn only if seq is still the newest mutation.
func (s *Store) commit(seq uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return false
	}
	fn()
	return true
}

// Restore re-establishes a session from the persisted token. Failure here is
// normal (expired token, backend down) and is treated as "no session": the
// token is discarded, the store settles Unauthenticated, and nothing is
// surfaced to the user.
func (s *Store) Restore(ctx context.Context) {
	seq := s.begin()
	s.commit(seq, func() { s.status = StatusAuthenticating })

	tok, err := s.tokens.Load()
	if err != nil || tok == "" {
		if err != nil {
			log.Printf("[session] token load: %v", err)
		}
		s.commit(seq, func() { s.status = StatusUnauthenticated })
		return
	}

	// Stage the token so the profile fetch can authenticate.
	if !s.commit(seq, func() { s.token = tok }) {
		return
	}

	user, err := s.backend.Me(ctx)
	if err != nil {
		log.Printf("[session] restore: %v", err)
		s.commit(seq, func() {
			s.token = ""
			s.status = StatusUnauthenticated
			if err := s.tokens.Clear(); err != nil {
				log.Printf("[session] clear token: %v", err)
			}
		})
		return
	}

	s.commit(seq, func() {
		s.user = user
		s.status = StatusAuthenticated
	})
}

// Login exchanges credentials for a token, persists it, fetches the profile
// and commits Authenticated. On any failure the store is left as it was and
// nothing is persisted.
func (s *Store) Login(ctx context.Context, username, password string) error {
	seq := s.begin()

	tok, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if !s.commit(seq, func() {
		s.token = tok
		if err := s.tokens.Save(tok); err != nil {
			log.Printf("[session] save token: %v", err)
		}
	}) {
		return ErrSuperseded
	}

	user, err := s.backend.Me(ctx)
	if err != nil {
		s.commit(seq, func() {
			s.token = ""
			if cerr := s.tokens.Clear(); cerr != nil {
				log.Printf("[session] clear token: %v", cerr)
			}
		})
		return err
	}

	if !s.commit(seq, func() {
		s.user = user
		s.status = StatusAuthenticated
	}) {
		return ErrSuperseded
	}
	return nil
}

// Register creates an account. It never authenticates; the caller routes to
// the login flow on success.
func (s *Store) Register(ctx context.Context, email, password, fullName string) error {
	return s.backend.Register(ctx, email, password, fullName)
}

// Logout clears the session synchronously. It always wins over any mutation
// still in flight, and never fails; a keyring error is logged and dropped.
func (s *Store) Logout() {
	seq := s.begin()
	s.commit(seq, func() {
		s.token = ""
		s.user = api.UserProfile{}
		s.status = StatusUnauthenticated
		if err := s.tokens.Clear(); err != nil {
			log.Printf("[session] clear token: %v", err)
		}
	})
}

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobpilot-client/internal/api"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(srv *httptest.Server, token string) *api.Client {
	return api.New(api.Options{
		Host:           srv.URL,
		RequestsPerSec: 1000,
		Tokens:         staticTokens(token),
	})
}

// ── NormalizeBase ──────────────────────────────────────────────────────────

func TestNormalizeBase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"http://localhost:8000", "http://localhost:8000/api/v1"},
		{"http://localhost:8000/", "http://localhost:8000/api/v1"},
		{"http://localhost:8000/api/v1", "http://localhost:8000/api/v1"},
		{"http://localhost:8000/api/v1/", "http://localhost:8000/api/v1"},
		{"  http://host  ", "http://host/api/v1"},
	}
	for _, c := range cases {
		if got := api.NormalizeBase(c.in); got != c.want {
			t.Errorf("NormalizeBase(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// ── auth header ────────────────────────────────────────────────────────────

func TestAuthHeader_AttachedWhenTokenPresent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":1,"email":"a@b.c","full_name":"A"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv, "tok123")
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if got != "Bearer tok123" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer tok123")
	}
}

func TestAuthHeader_OmittedWhenNoToken(t *testing.T) {
	var got string
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, present = r.Header.Get("Authorization"), r.Header.Values("Authorization") != nil
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(srv, "")
	if _, err := c.Jobs(context.Background(), api.JobsParams{Limit: 20}); err != nil {
		t.Fatalf("Jobs: %v", err)
	}
	if present || got != "" {
		t.Errorf("Authorization header should be absent, got %q", got)
	}
}

// ── query params ───────────────────────────────────────────────────────────

func TestJobs_ParamEncoding(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"data":[],"total":0}`))
	}))
	defer srv.Close()

	c := newTestClient(srv, "t")
	_, err := c.Jobs(context.Background(), api.JobsParams{
		Keyword: "engineer",
		Skip:    20,
		Limit:   20,
	})
	if err != nil {
		t.Fatalf("Jobs: %v", err)
	}

	if got := query["keyword"]; len(got) != 1 || got[0] != "engineer" {
		t.Errorf("keyword = %v, want [engineer]", got)
	}
	if got := query["skip"]; len(got) != 1 || got[0] != "20" {
		t.Errorf("skip = %v, want [20]", got)
	}
	if _, ok := query["location"]; ok {
		t.Error("empty location must not be serialized")
	}
}

// ── error mapping ──────────────────────────────────────────────────────────

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv, "t")
	_, err := c.Jobs(context.Background(), api.JobsParams{Limit: 20})
	if err == nil {
		t.Fatal("expected error for 500")
	}
	if !api.IsStatus(err, 500) {
		t.Errorf("IsStatus(err, 500) = false, err = %v", err)
	}
	if api.IsNetwork(err) {
		t.Errorf("a 500 is not a network error: %v", err)
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := newTestClient(srv, "t")
	_, err := c.Jobs(context.Background(), api.JobsParams{Limit: 20})
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	if !api.IsNetwork(err) {
		t.Errorf("IsNetwork(err) = false, err = %v", err)
	}
}

// ── login form encoding ────────────────────────────────────────────────────

func TestLogin_FormEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		if r.PostForm.Get("username") != "alice" || r.PostForm.Get("password") != "secret" {
			t.Errorf("form = %v", r.PostForm)
		}
		w.Write([]byte(`{"access_token":"tok"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv, "")
	tok, err := c.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tok != "tok" {
		t.Errorf("token = %q, want %q", tok, "tok")
	}
}

// Package test holds cross-package flow tests wiring the full stack:
// Redis-backed credential store, session manager, authorized transport,
// notification poller, and CRUD gateways against one fake backend.
package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	labelkit "github.com/labelreader/labelkit"
	"github.com/labelreader/labelkit/gateway"
	"github.com/labelreader/labelkit/notify"
)

// platformBackend fakes the whole remote API with token checking: only
// requests bearing the issued token reach the protected routes.
type platformBackend struct {
	srv    *httptest.Server
	token  atomic.Value // string
	unread atomic.Int64
	revoke atomic.Bool
}

func newPlatformBackend(t *testing.T) *platformBackend {
	t.Helper()

	b := &platformBackend{}
	b.token.Store("")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req labelkit.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.token.Store("T1")
		_ = json.NewEncoder(w).Encode(labelkit.AuthResponse{
			AccessToken:  "T1",
			RefreshToken: "R1",
			User:         labelkit.Identity{ID: 1, Email: req.Email, UserType: labelkit.UserTypeArtist},
		})
	})

	authorized := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			want, _ := b.token.Load().(string)
			if b.revoke.Load() || want == "" || r.Header.Get("Authorization") != "Bearer "+want {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("GET /notifications/unread-count", authorized(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strconv.FormatInt(b.unread.Load(), 10)))
	}))
	mux.HandleFunc("PUT /notifications/{id}/read", authorized(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	mux.HandleFunc("GET /artist/submissions", authorized(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(gateway.SubmissionPage{})
	}))

	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func newStack(t *testing.T) (*labelkit.Manager, *platformBackend, *atomic.Int32) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	backend := newPlatformBackend(t)
	var redirects atomic.Int32

	m, err := labelkit.New().
		WithBaseURL(backend.srv.URL).
		WithRedis(rdb).
		WithHTTPClient(backend.srv.Client()).
		WithRedirectHandler(func() { redirects.Add(1) }).
		Build(context.Background())
	if err != nil {
		t.Fatalf("build manager: %v", err)
	}
	t.Cleanup(m.Close)

	return m, backend, &redirects
}

func TestLoginThenAuthorizedCRUDAndPolling(t *testing.T) {
	m, backend, _ := newStack(t)
	ctx := context.Background()

	if _, err := m.Login(ctx, labelkit.LoginRequest{Email: "a@x.com", Password: "secret123"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	// Gateway call rides the authorized client; the backend rejects
	// anything without the bearer header.
	subs := gateway.NewSubmissions(m.Client(), backend.srv.URL)
	if _, err := subs.List(ctx, 0, 10); err != nil {
		t.Fatalf("authorized list: %v", err)
	}

	backend.unread.Store(3)
	poller := notify.NewPoller(m.Client(), backend.srv.URL, time.Hour)
	defer poller.Stop()

	count, err := poller.Refresh(ctx)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected unread 3, got %d", count)
	}

	if err := poller.MarkRead(ctx, 42); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if got := poller.UnreadCount(); got != 2 {
		t.Fatalf("expected optimistic decrement to 2, got %d", got)
	}
}

func TestRevokedTokenForcesLogoutAcrossTheStack(t *testing.T) {
	m, backend, redirects := newStack(t)
	ctx := context.Background()

	if _, err := m.Login(ctx, labelkit.LoginRequest{Email: "a@x.com", Password: "secret123"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	backend.revoke.Store(true)

	// Any gateway call now sees a 401; the shared authorizer reacts.
	subs := gateway.NewSubmissions(m.Client(), backend.srv.URL)
	if _, err := subs.List(ctx, 0, 10); err == nil {
		t.Fatal("expected error from revoked token")
	}

	if m.IsAuthenticated() {
		t.Fatal("expected forced logout after 401")
	}
	if m.Current() != nil {
		t.Fatal("expected nil identity after forced logout")
	}
	if got := redirects.Load(); got != 1 {
		t.Fatalf("expected one redirect signal, got %d", got)
	}
}

func TestSessionSurvivesRestartViaRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	backend := newPlatformBackend(t)
	ctx := context.Background()

	build := func() *labelkit.Manager {
		m, err := labelkit.New().
			WithBaseURL(backend.srv.URL).
			WithRedis(rdb).
			WithHTTPClient(backend.srv.Client()).
			Build(ctx)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		return m
	}

	first := build()
	if _, err := first.Login(ctx, labelkit.LoginRequest{Email: "a@x.com", Password: "secret123"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	first.Close()

	// A fresh manager over the same store picks the session back up.
	second := build()
	defer second.Close()

	if !second.IsAuthenticated() || second.AccessToken() != "T1" {
		t.Fatal("expected session restored after restart")
	}
	if current := second.Current(); current == nil || current.ID != 1 {
		t.Fatalf("expected restored identity, got %+v", current)
	}
}

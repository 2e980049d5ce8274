package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/mansaluxe/realty-backend/internal/dto"
	"github.com/mansaluxe/realty-backend/internal/session"
)

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(dto.ErrorResponse{Error: true, Message: "Invalid email or password"})
			return
		}
		json.NewEncoder(w).Encode(dto.AuthResponse{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			ExpiresIn:    900,
			User: dto.AdminUserView{
				ID:    uuid.New(),
				Email: req.Email,
				Name:  "Ops",
				Role:  "super_admin",
			},
		})
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.MessageResponse{Message: "Logged out"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSignInPersistsState(t *testing.T) {
	srv := newAuthServer(t)
	dir := t.TempDir()

	c := New(srv.URL, dir)
	sess, err := c.SignIn(context.Background(), "ops@example.com", "secret")
	if err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}
	if sess.AccessToken != "access-token" {
		t.Fatalf("access token = %q", sess.AccessToken)
	}

	for _, name := range []string{tokenFile, principalFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected persisted %s: %v", name, err)
		}
	}

	// A fresh client over the same state dir resumes the session.
	resumed := New(srv.URL, dir)
	got, err := resumed.GetSession(context.Background())
	if err != nil {
		t.Fatalf("GetSession() failed: %v", err)
	}
	if got == nil || got.Identity.Email != "ops@example.com" {
		t.Fatalf("restored session = %+v", got)
	}
}

func TestSignInRejected(t *testing.T) {
	srv := newAuthServer(t)
	c := New(srv.URL, t.TempDir())

	if _, err := c.SignIn(context.Background(), "ops@example.com", "wrong"); err == nil {
		t.Fatal("SignIn() with bad password must fail")
	}
	if sess, _ := c.GetSession(context.Background()); sess != nil {
		t.Fatalf("failed sign-in must leave no session, got %+v", sess)
	}
}

func TestSignOutClearsPersistedState(t *testing.T) {
	srv := newAuthServer(t)
	dir := t.TempDir()
	c := New(srv.URL, dir)

	if _, err := c.SignIn(context.Background(), "ops@example.com", "secret"); err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}
	if err := c.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut() failed: %v", err)
	}

	for _, name := range []string{tokenFile, principalFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Fatalf("%s should be removed on sign-out", name)
		}
	}
	if sess, _ := c.GetSession(context.Background()); sess != nil {
		t.Fatalf("signed-out client returned session %+v", sess)
	}
}

func TestOnSessionChangeReplaysCurrent(t *testing.T) {
	srv := newAuthServer(t)
	c := New(srv.URL, t.TempDir())

	calls := 0
	var last *session.Session
	unsubscribe := c.OnSessionChange(func(s *session.Session) {
		calls++
		last = s
	})
	defer unsubscribe()

	if calls != 1 {
		t.Fatalf("subscriber must be replayed immediately, calls = %d", calls)
	}
	if last != nil {
		t.Fatal("signed-out client must replay nil")
	}

	if _, err := c.SignIn(context.Background(), "ops@example.com", "secret"); err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("subscriber must see the sign-in, calls = %d", calls)
	}
}

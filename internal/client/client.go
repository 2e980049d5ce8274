// Package client is the HTTP consumer of the admin API. It implements
// the session provider and role resolver interfaces against the live
// server, persisting the signed-in state on disk so a new process
// starts where the previous one left off.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mansaluxe/realty-backend/internal/dto"
	"github.com/mansaluxe/realty-backend/internal/models"
	"github.com/mansaluxe/realty-backend/internal/session"
)

// Persisted state file names under the state directory. Both are
// removed together on sign-out.
const (
	tokenFile     = "admin_token"
	principalFile = "admin_user"
)

var ErrNotSignedIn = errors.New("not signed in")

type Client struct {
	baseURL  string
	http     *http.Client
	stateDir string

	mu        sync.Mutex
	current   *session.Session
	principal *dto.AdminUserView
	subs      map[int]func(*session.Session)
	nextSub   int
}

func New(baseURL, stateDir string) *Client {
	c := &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 15 * time.Second},
		stateDir: stateDir,
		subs:     make(map[int]func(*session.Session)),
	}
	c.restore()
	return c
}

// persistedToken is the on-disk shape of the token file.
type persistedToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// restore loads the persisted session, silently starting signed-out on
// any read or decode failure.
func (c *Client) restore() {
	var tok persistedToken
	if !readState(filepath.Join(c.stateDir, tokenFile), &tok) {
		return
	}
	var principal dto.AdminUserView
	if !readState(filepath.Join(c.stateDir, principalFile), &principal) {
		return
	}

	c.current = &session.Session{
		Identity: session.Identity{
			ID:    principal.ID,
			Email: principal.Email,
			Name:  principal.Name,
		},
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.ExpiresAt,
	}
	c.principal = &principal
}

// SignIn authenticates against the server and persists the session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	var resp dto.AuthResponse
	err := c.post(ctx, "/api/auth/login", dto.LoginRequest{Email: email, Password: password}, &resp, "")
	if err != nil {
		return nil, err
	}
	return c.adopt(&resp)
}

// SignOut revokes the refresh token server-side (best effort) and
// clears all persisted state.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()

	if current != nil && current.RefreshToken != "" {
		_ = c.post(ctx, "/api/auth/logout", dto.LogoutRequest{RefreshToken: current.RefreshToken}, nil, "")
	}

	c.mu.Lock()
	c.current = nil
	c.principal = nil
	os.Remove(filepath.Join(c.stateDir, tokenFile))
	os.Remove(filepath.Join(c.stateDir, principalFile))
	subs := c.snapshotSubs()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(nil)
	}
	return nil
}

// GetSession returns the current session, refreshing it first when the
// access token has expired. Returns (nil, nil) when signed out.
func (c *Client) GetSession(ctx context.Context) (*session.Session, error) {
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()

	if current == nil {
		return nil, nil
	}
	if time.Now().Before(current.ExpiresAt) {
		return current, nil
	}

	var resp dto.AuthResponse
	err := c.post(ctx, "/api/auth/refresh", dto.RefreshRequest{RefreshToken: current.RefreshToken}, &resp, "")
	if err != nil {
		// A dead refresh token means the session is over, not an error.
		_ = c.SignOut(ctx)
		return nil, nil
	}
	return c.adopt(&resp)
}

// OnSessionChange registers fn and immediately replays the current
// session to it, signed-out included.
func (c *Client) OnSessionChange(fn func(*session.Session)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	current := c.current
	c.mu.Unlock()

	fn(current)

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Resolve fetches the admin role for the signed-in identity from the
// server. (nil, nil) when the server reports no admin record.
func (c *Client) Resolve(ctx context.Context, identityID uuid.UUID) (*models.AdminUser, error) {
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()
	if current == nil {
		return nil, ErrNotSignedIn
	}

	var view dto.AdminUserView
	status, err := c.get(ctx, "/api/auth/me", &view, current.AccessToken)
	if status == http.StatusForbidden || status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	userID := identityID
	admin := &models.AdminUser{
		ID:     view.ID,
		UserID: &userID,
		Email:  view.Email,
		Role:   view.Role,
	}
	if view.Name != "" {
		name := view.Name
		admin.Name = &name
	}
	return admin, nil
}

// Token returns the current bearer token for direct API calls.
func (c *Client) Token() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return "", ErrNotSignedIn
	}
	return c.current.AccessToken, nil
}

// Principal returns the cached signed-in principal view.
func (c *Client) Principal() (*dto.AdminUserView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.principal == nil {
		return nil, ErrNotSignedIn
	}
	view := *c.principal
	return &view, nil
}

// adopt installs a fresh token pair as the current session, persists
// it and notifies subscribers.
func (c *Client) adopt(resp *dto.AuthResponse) (*session.Session, error) {
	sess := &session.Session{
		Identity: session.Identity{
			ID:    resp.User.ID,
			Email: resp.User.Email,
			Name:  resp.User.Name,
		},
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}

	c.mu.Lock()
	c.current = sess
	principal := resp.User
	c.principal = &principal

	if err := os.MkdirAll(c.stateDir, 0o700); err == nil {
		writeState(filepath.Join(c.stateDir, tokenFile), persistedToken{
			AccessToken:  sess.AccessToken,
			RefreshToken: sess.RefreshToken,
			ExpiresAt:    sess.ExpiresAt,
		})
		writeState(filepath.Join(c.stateDir, principalFile), principal)
	}
	subs := c.snapshotSubs()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(sess)
	}
	return sess, nil
}

// snapshotSubs copies the subscriber list; callers invoke outside the
// lock. Must be called with mu held.
func (c *Client) snapshotSubs() []func(*session.Session) {
	subs := make([]func(*session.Session), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return subs
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}, token string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	_, err = c.do(req, out)
	return err
}

func (c *Client) get(ctx context.Context, path string, out interface{}, token string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) (int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, err
	}

	if resp.StatusCode >= 400 {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return resp.StatusCode, fmt.Errorf("%s (HTTP %d)", apiErr.Message, resp.StatusCode)
		}
		return resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func readState(path string, out interface{}) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func writeState(path string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = os.WriteFile(path, raw, 0o600)
}

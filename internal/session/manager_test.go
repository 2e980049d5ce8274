package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mansaluxe/realty-backend/internal/models"
)

// fakeProvider is an in-memory identity provider with controllable
// behavior and a working subscription mechanism.
type fakeProvider struct {
	mu       sync.Mutex
	session  *Session
	signInFn func(email, password string) (*Session, error)
	signOuts int
	subs     []func(*Session)
	replay   bool
}

func (f *fakeProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	f.mu.Lock()
	fn := f.signInFn
	f.mu.Unlock()
	if fn == nil {
		return nil, errors.New("sign-in not configured")
	}
	sess, err := fn(email, password)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.session = sess
	f.mu.Unlock()
	return sess, nil
}

func (f *fakeProvider) SignOut(ctx context.Context) error {
	f.mu.Lock()
	f.session = nil
	f.signOuts++
	f.mu.Unlock()
	return nil
}

func (f *fakeProvider) GetSession(ctx context.Context) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session, nil
}

func (f *fakeProvider) OnSessionChange(fn func(*Session)) func() {
	f.mu.Lock()
	f.subs = append(f.subs, fn)
	current := f.session
	replay := f.replay
	f.mu.Unlock()
	if replay {
		fn(current)
	}
	return func() {}
}

func (f *fakeProvider) fire(sess *Session) {
	f.mu.Lock()
	f.session = sess
	subs := append([]func(*Session){}, f.subs...)
	f.mu.Unlock()
	for _, fn := range subs {
		fn(sess)
	}
}

func (f *fakeProvider) signOutCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signOuts
}

// fakeResolver resolves roles from a static map; nil-valued entries
// and missing identities both mean "no admin row".
type fakeResolver struct {
	admins map[uuid.UUID]*models.AdminUser
	delay  time.Duration
	err    error
}

func (f *fakeResolver) Resolve(ctx context.Context, identityID uuid.UUID) (*models.AdminUser, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.admins[identityID], nil
}

func adminFor(id uuid.UUID, role string) *models.AdminUser {
	return &models.AdminUser{ID: uuid.New(), UserID: &id, Email: "ops@example.com", Role: role}
}

func sessionFor(id uuid.UUID) *Session {
	return &Session{
		Identity:    Identity{ID: id, Email: "ops@example.com", Name: "Ops"},
		AccessToken: "token",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

// waitForState polls until the predicate holds or the deadline passes.
func waitForState(t *testing.T, m *Manager, pred func(State) bool) State {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if state := m.Snapshot(); pred(state) {
			return state
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("state never satisfied predicate, last: %+v", m.Snapshot())
	return State{}
}

func TestManagerStartsLoading(t *testing.T) {
	m := NewManager(&fakeProvider{}, &fakeResolver{})
	defer m.Close()

	if state := m.Snapshot(); !state.Loading {
		t.Fatal("a fresh manager must report loading")
	}
}

func TestManagerResolvesSignedOut(t *testing.T) {
	provider := &fakeProvider{replay: true}
	m := NewManager(provider, &fakeResolver{})
	defer m.Close()

	m.Start(context.Background())
	state := waitForState(t, m, func(s State) bool { return !s.Loading })

	if state.IsAuthenticated() {
		t.Fatal("no session should resolve to signed-out")
	}
}

func TestManagerReplayAndFetchConverge(t *testing.T) {
	id := uuid.New()
	provider := &fakeProvider{replay: true, session: sessionFor(id)}
	resolver := &fakeResolver{admins: map[uuid.UUID]*models.AdminUser{id: adminFor(id, models.RoleSuperAdmin)}}

	// Both init sources observe the same session; applying it twice in
	// either order must land on the same state.
	m := NewManager(provider, resolver)
	defer m.Close()
	m.Start(context.Background())

	state := waitForState(t, m, func(s State) bool { return !s.Loading && s.AdminUser != nil })
	if !state.IsAuthenticated() || !state.IsAdmin() {
		t.Fatalf("expected authenticated admin, got %+v", state)
	}
	if state.Identity.ID != id {
		t.Fatalf("identity = %s, want %s", state.Identity.ID, id)
	}
}

func TestManagerRoleTimeoutFailsClosed(t *testing.T) {
	id := uuid.New()
	provider := &fakeProvider{replay: true, session: sessionFor(id)}
	resolver := &fakeResolver{
		delay:  500 * time.Millisecond,
		admins: map[uuid.UUID]*models.AdminUser{id: adminFor(id, models.RoleSuperAdmin)},
	}

	m := NewManager(provider, resolver, WithRoleTimeout(20*time.Millisecond))
	defer m.Close()
	m.Start(context.Background())

	state := waitForState(t, m, func(s State) bool { return !s.Loading })
	if state.IsAdmin() {
		t.Fatal("timed-out role resolution must not grant admin")
	}
	if !state.IsAuthenticated() {
		t.Fatal("timeout affects only the role, not the identity")
	}
}

func TestManagerResolverErrorFailsClosed(t *testing.T) {
	id := uuid.New()
	provider := &fakeProvider{replay: true, session: sessionFor(id)}
	resolver := &fakeResolver{err: errors.New("resolver down")}

	m := NewManager(provider, resolver)
	defer m.Close()
	m.Start(context.Background())

	state := waitForState(t, m, func(s State) bool { return !s.Loading })
	if state.IsAdmin() {
		t.Fatal("resolver failure must not grant admin")
	}
}

func TestManagerLoginAdmin(t *testing.T) {
	id := uuid.New()
	provider := &fakeProvider{
		signInFn: func(email, password string) (*Session, error) {
			return sessionFor(id), nil
		},
	}
	resolver := &fakeResolver{admins: map[uuid.UUID]*models.AdminUser{id: adminFor(id, models.RoleEditor)}}

	m := NewManager(provider, resolver)
	defer m.Close()

	if err := m.Login(context.Background(), "ops@example.com", "secret"); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	state := m.Snapshot()
	if !state.IsAdmin() || state.Loading {
		t.Fatalf("expected settled admin state, got %+v", state)
	}
}

func TestManagerLoginNonAdminForcedOut(t *testing.T) {
	id := uuid.New()
	provider := &fakeProvider{
		signInFn: func(email, password string) (*Session, error) {
			return sessionFor(id), nil
		},
	}
	// The identity authenticates but holds only the viewer tier.
	resolver := &fakeResolver{admins: map[uuid.UUID]*models.AdminUser{id: adminFor(id, models.RoleViewer)}}

	m := NewManager(provider, resolver)
	defer m.Close()

	err := m.Login(context.Background(), "viewer@example.com", "secret")
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("Login() error = %v, want ErrAccessDenied", err)
	}
	if provider.signOutCount() != 1 {
		t.Fatalf("denied login must force a sign-out, got %d", provider.signOutCount())
	}
	state := m.Snapshot()
	if state.IsAuthenticated() || state.Loading {
		t.Fatalf("denied login must leave a settled signed-out state, got %+v", state)
	}
}

func TestManagerLoginBadCredentials(t *testing.T) {
	provider := &fakeProvider{
		signInFn: func(email, password string) (*Session, error) {
			return nil, errors.New("invalid email or password")
		},
	}
	m := NewManager(provider, &fakeResolver{})
	defer m.Close()

	if err := m.Login(context.Background(), "x@example.com", "wrong"); err == nil {
		t.Fatal("Login() with bad credentials must fail")
	}
	if state := m.Snapshot(); state.Loading {
		t.Fatal("failed login must clear the loading flag")
	}
}

func TestManagerLogoutClearsState(t *testing.T) {
	id := uuid.New()
	provider := &fakeProvider{
		signInFn: func(email, password string) (*Session, error) {
			return sessionFor(id), nil
		},
	}
	resolver := &fakeResolver{admins: map[uuid.UUID]*models.AdminUser{id: adminFor(id, models.RoleSuperAdmin)}}

	m := NewManager(provider, resolver)
	defer m.Close()

	if err := m.Login(context.Background(), "ops@example.com", "secret"); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	m.Logout(context.Background())

	state := m.Snapshot()
	if state.IsAuthenticated() || state.AdminUser != nil {
		t.Fatalf("logout must clear the principal, got %+v", state)
	}
}

func TestManagerClosedIgnoresUpdates(t *testing.T) {
	id := uuid.New()
	provider := &fakeProvider{replay: true}
	m := NewManager(provider, &fakeResolver{})
	m.Start(context.Background())
	waitForState(t, m, func(s State) bool { return !s.Loading })

	m.Close()
	provider.fire(sessionFor(id))

	// Give any stray callback a moment to land, then verify nothing
	// changed.
	time.Sleep(20 * time.Millisecond)
	if state := m.Snapshot(); state.IsAuthenticated() {
		t.Fatalf("closed manager must ignore session changes, got %+v", state)
	}
}

func TestManagerSubscribersNotified(t *testing.T) {
	id := uuid.New()
	provider := &fakeProvider{
		signInFn: func(email, password string) (*Session, error) {
			return sessionFor(id), nil
		},
	}
	resolver := &fakeResolver{admins: map[uuid.UUID]*models.AdminUser{id: adminFor(id, models.RoleSuperAdmin)}}

	m := NewManager(provider, resolver)
	defer m.Close()

	var mu sync.Mutex
	var seen []State
	unsubscribe := m.Subscribe(func(s State) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	if err := m.Login(context.Background(), "ops@example.com", "secret"); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	mu.Lock()
	count := len(seen)
	mu.Unlock()
	if count == 0 {
		t.Fatal("subscriber never notified")
	}
	mu.Lock()
	last := seen[count-1]
	mu.Unlock()
	if !last.IsAdmin() {
		t.Fatalf("final notification should carry the admin state, got %+v", last)
	}

	unsubscribe()
	m.Logout(context.Background())
	mu.Lock()
	after := len(seen)
	mu.Unlock()
	if after != count {
		t.Fatal("unsubscribed observer must not receive further updates")
	}
}

package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mansaluxe/realty-backend/internal/models"
)

// ErrAccessDenied is returned by Login when the identity authenticates
// but holds no administrative role.
var ErrAccessDenied = errors.New("access denied")

const defaultRoleTimeout = 5 * time.Second

// Manager is the single source of truth for the signed-in principal.
// Two initialization sources race on start: the provider's
// session-change subscription (with its initial replay) and a direct
// session fetch. Both funnel through applySession, which is idempotent,
// so arrival order does not matter. After Close, no state mutation is
// applied.
type Manager struct {
	provider IdentityProvider
	resolver RoleResolver
	timeout  time.Duration

	mu      sync.Mutex
	state   State
	closed  bool
	unsub   func()
	nextSub int
	subs    map[int]func(State)
}

type Option func(*Manager)

// WithRoleTimeout overrides the role-resolution deadline.
func WithRoleTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

func NewManager(provider IdentityProvider, resolver RoleResolver, opts ...Option) *Manager {
	m := &Manager{
		provider: provider,
		resolver: resolver,
		timeout:  defaultRoleTimeout,
		state:    State{Loading: true},
		subs:     make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start wires both initialization sources. It returns immediately; the
// direct fetch proceeds in the background.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	// Subscribe outside the lock: providers replay the current session
	// synchronously, and that callback takes the lock itself.
	unsub := m.provider.OnSessionChange(func(sess *Session) {
		m.applySession(ctx, sess)
	})

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		unsub()
		return
	}
	m.unsub = unsub
	m.mu.Unlock()

	// Some providers do not replay on subscribe; fetch directly too.
	go func() {
		sess, err := m.provider.GetSession(ctx)
		if err != nil {
			slog.Error("session fetch failed", "error", err)
			m.setNotLoading()
			return
		}
		m.applySession(ctx, sess)
	}()
}

// Close tears the manager down. In-flight callbacks become no-ops.
func (m *Manager) Close() {
	m.mu.Lock()
	unsub := m.unsub
	m.closed = true
	m.unsub = nil
	m.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers an observer invoked on every state change. The
// returned function unsubscribes.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Login delegates credential verification to the provider, then
// immediately re-checks the admin role: a valid identity without an
// administrative tier is force-signed-out and rejected, so the caller
// never observes an authenticated-but-non-admin state.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.setState(func(s *State) { s.Loading = true })

	sess, err := m.provider.SignIn(ctx, email, password)
	if err != nil {
		m.setState(func(s *State) { s.Loading = false })
		return err
	}

	admin := m.resolveRole(ctx, sess)
	if admin == nil || !models.IsAdminRole(admin.Role) {
		if err := m.provider.SignOut(ctx); err != nil {
			slog.Error("sign-out after denied login failed", "error", err)
		}
		m.setState(func(s *State) {
			s.Identity = nil
			s.Session = nil
			s.AdminUser = nil
			s.Loading = false
		})
		return ErrAccessDenied
	}

	identity := sess.Identity
	m.setState(func(s *State) {
		s.Identity = &identity
		s.Session = sess
		s.AdminUser = admin
		s.Loading = false
	})
	return nil
}

// Logout signs out best-effort: provider failures are logged, never
// returned, and local state is always cleared.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.provider.SignOut(ctx); err != nil {
		slog.Error("sign-out failed", "error", err)
	}
	m.setState(func(s *State) {
		s.Identity = nil
		s.Session = nil
		s.AdminUser = nil
		s.Loading = false
	})
}

// applySession handles one observation of the current session, from
// either initialization source. Applying the same session twice, in
// either order, converges to the same state.
func (m *Manager) applySession(ctx context.Context, sess *Session) {
	if sess == nil {
		m.setState(func(s *State) {
			s.Identity = nil
			s.Session = nil
			s.AdminUser = nil
			s.Loading = false
		})
		return
	}

	identity := sess.Identity
	m.setState(func(s *State) {
		s.Identity = &identity
		s.Session = sess
	})

	admin := m.resolveRole(ctx, sess)
	m.setState(func(s *State) {
		// Ignore a stale resolution if the identity changed meanwhile.
		if s.Identity == nil || s.Identity.ID != identity.ID {
			s.Loading = false
			return
		}
		s.AdminUser = admin
		s.Loading = false
	})
}

// resolveRole races the resolver against the timeout and fails closed:
// timeout or error means "not an admin", logged, never surfaced. The
// abandoned lookup keeps running; its result is discarded.
func (m *Manager) resolveRole(ctx context.Context, sess *Session) *models.AdminUser {
	type result struct {
		admin *models.AdminUser
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		admin, err := m.resolver.Resolve(ctx, sess.Identity.ID)
		ch <- result{admin, err}
	}()

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.err != nil {
			slog.Error("role resolution failed", "user_id", sess.Identity.ID, "error", res.err)
			return nil
		}
		return res.admin
	case <-timer.C:
		slog.Error("role resolution timed out", "user_id", sess.Identity.ID, "timeout", m.timeout)
		return nil
	}
}

// setState applies a mutation under the lock unless the manager is
// closed, then notifies subscribers outside the lock.
func (m *Manager) setState(mutate func(*State)) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	mutate(&m.state)
	snapshot := m.state
	subs := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// setNotLoading clears the loading flag without touching identity.
func (m *Manager) setNotLoading() {
	m.setState(func(s *State) { s.Loading = false })
}

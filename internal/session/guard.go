package session

import "github.com/mansaluxe/realty-backend/internal/models"

// Outcome is a route-guard decision.
type Outcome int

const (
	// OutcomeLoading renders a placeholder; never redirect while the
	// initial session resolution is in flight.
	OutcomeLoading Outcome = iota
	// OutcomeRedirectToLogin sends an unauthenticated visitor to the
	// login screen, preserving the requested path.
	OutcomeRedirectToLogin
	// OutcomeAccessDenied renders an access-denied view; the principal
	// is authenticated, just under-privileged.
	OutcomeAccessDenied
	// OutcomeAllow renders the protected content.
	OutcomeAllow
)

// LoginPath is where unauthenticated visitors are redirected.
const LoginPath = "/admin/login"

// Requirement narrows access beyond plain authentication.
type Requirement struct {
	Role       string
	Permission string
}

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Outcome    Outcome
	RedirectTo string
	// From is the originally requested path, preserved so the login
	// flow can return the visitor there.
	From string
}

// Evaluate gates one navigation. It is a pure function of the state
// and requirement; checks run in a fixed order: loading, then
// authentication, then admin tier, then role and permission.
func Evaluate(state State, req Requirement, target string) Decision {
	if state.Loading {
		return Decision{Outcome: OutcomeLoading}
	}
	if !state.IsAuthenticated() {
		return Decision{Outcome: OutcomeRedirectToLogin, RedirectTo: LoginPath, From: target}
	}
	if !state.IsAdmin() {
		return Decision{Outcome: OutcomeAccessDenied}
	}
	if req.Role != "" {
		if state.AdminUser == nil || state.AdminUser.Role != req.Role {
			return Decision{Outcome: OutcomeAccessDenied}
		}
	}
	if req.Permission != "" {
		if !models.HasPermission(state.Permissions(), req.Permission) {
			return Decision{Outcome: OutcomeAccessDenied}
		}
	}
	return Decision{Outcome: OutcomeAllow}
}

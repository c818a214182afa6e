// Package nav decides whether a requested view may render, based on the
// current auth state. It owns no state of its own; every Resolve call reads
// the state fresh.
package nav

import "github.com/pharmadesk/pharmacy-client/internal/core/ports"

// Action tells the shell what to do with a requested path.
type Action int

const (
	// ShowPlaceholder means the initial session restore is still in flight;
	// render nothing and make no redirect decision yet.
	ShowPlaceholder Action = iota
	// RenderPublic renders the requested entry view (login or signup).
	RenderPublic
	// RenderProtected renders the requested view inside the application shell.
	RenderProtected
	// Redirect navigates to Decision.Target instead of rendering.
	Redirect
)

const (
	LoginPath  = "/login"
	SignupPath = "/signup"
	// DefaultPath is the landing view for an already-authenticated user who
	// navigates to an entry view.
	DefaultPath = "/dashboard"
)

// Decision is the outcome of resolving one navigation.
type Decision struct {
	Action Action
	Target string
}

// Guard gates navigation. Protected views are unreachable without an active
// session, and an authenticated user visiting login or signup is sent forward
// instead of re-authenticating.
type Guard struct {
	auth ports.AuthStateSource
}

func NewGuard(auth ports.AuthStateSource) *Guard {
	return &Guard{auth: auth}
}

// Resolve maps a requested path to a rendering decision.
func (g *Guard) Resolve(path string) Decision {
	st := g.auth.State()

	switch {
	case st.Loading:
		return Decision{Action: ShowPlaceholder}
	case isPublic(path):
		if st.IsAuthenticated {
			return Decision{Action: Redirect, Target: DefaultPath}
		}
		return Decision{Action: RenderPublic}
	case st.IsAuthenticated:
		return Decision{Action: RenderProtected}
	default:
		return Decision{Action: Redirect, Target: LoginPath}
	}
}

func isPublic(path string) bool {
	return path == LoginPath || path == SignupPath
}

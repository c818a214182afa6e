package ports

import "github.com/pharmadesk/pharmacy-client/internal/core/domain"

// AuthStateSource exposes the current auth state to navigation. Reads are
// atomic with respect to session mutations: observers never see a
// half-updated state.
type AuthStateSource interface {
	State() domain.AuthState
}

package ports

import "github.com/pharmadesk/pharmacy-client/internal/core/domain"

// SessionStore persists the session across process restarts. Load returns
// (nil, nil) when no valid session is stored; partial or corrupt records are
// reported as absent, never as errors. Clear is idempotent.
type SessionStore interface {
	Load() (*domain.Session, error)
	Save(sess *domain.Session) error
	Clear() error
}

package ports

import "context"

// Requester is the single point of egress to the backend. Implementations
// attach the bearer credential to every request and intercept unauthorized
// responses globally.
type Requester interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string) error
}

// TokenSource supplies the credential attached to outgoing requests. It is
// consulted at send time, so there is no mutable default header anywhere.
type TokenSource interface {
	Token() string
}

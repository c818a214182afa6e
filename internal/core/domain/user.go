package domain

// UserProfile is the identity payload returned by the backend at sign-in.
// The client carries it through to the UI without interpreting its fields.
type UserProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Session is the durable record of an authenticated identity. Token and User
// are set and cleared together; a record holding only one of the two is
// invalid and must be treated as absent.
type Session struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}

// Valid reports whether the session carries both halves of the invariant.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// AuthState is the in-memory view of the Session consumed by the navigation
// layer. Loading is true only until the initial session read completes, and
// never returns to true afterwards.
type AuthState struct {
	IsAuthenticated bool
	User            *UserProfile
	Loading         bool
}

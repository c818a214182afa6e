package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/pharmadesk/pharmacy-client/internal/api/metrics"
	"github.com/pharmadesk/pharmacy-client/internal/core/domain"
	"github.com/pharmadesk/pharmacy-client/internal/core/ports"
)

const (
	loginFallbackMessage  = "Login failed"
	signupFallbackMessage = "Signup failed"
)

// LoginResult is the outcome surfaced to the login form. Login never returns
// a Go error; every failure is folded into the Message.
type LoginResult struct {
	Success bool
	Message string
}

// AuthManager is the single source of truth for who is logged in. One
// instance is constructed at startup and handed to the navigation guard and
// the HTTP client; there is no package-level session state.
//
// It implements ports.TokenSource (the client reads the token at send time)
// and ports.AuthStateSource (the guard reads the derived state).
type AuthManager struct {
	store    ports.SessionStore
	client   ports.Requester
	log      zerolog.Logger
	validate *inputValidator

	mu    sync.RWMutex
	token string
	state domain.AuthState

	initOnce sync.Once
	navigate func(path string)
}

// NewAuthManager builds the manager in the Loading state. The requester is
// attached separately because the client itself needs the manager as its
// token source.
func NewAuthManager(store ports.SessionStore, log zerolog.Logger) *AuthManager {
	return &AuthManager{
		store:    store,
		log:      log,
		validate: newInputValidator(),
		state:    domain.AuthState{Loading: true},
		navigate: func(string) {},
	}
}

// AttachRequester wires the HTTP client used for signin and signup.
func (m *AuthManager) AttachRequester(client ports.Requester) {
	m.client = client
}

// SetNavigator registers the navigation side effect used when a session is
// force-cleared. Navigating while already on the login view is a no-op for
// the caller, so the hook may fire repeatedly.
func (m *AuthManager) SetNavigator(fn func(path string)) {
	if fn != nil {
		m.navigate = fn
	}
}

// Token implements ports.TokenSource.
func (m *AuthManager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// State implements ports.AuthStateSource.
func (m *AuthManager) State() domain.AuthState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Initialize restores the persisted session. It runs at most once; Loading
// drops to false on completion whatever the outcome and never rises again.
// A stored token whose exp claim is already past is discarded up front
// instead of waiting for the first 401.
func (m *AuthManager) Initialize() {
	m.initOnce.Do(func() {
		sess, err := m.store.Load()
		switch {
		case err != nil:
			m.log.Warn().Err(err).Msg("could not read stored session")
		case !sess.Valid():
			// No session, or a partial record the store already discarded.
		case tokenExpired(sess.Token, time.Now()):
			_ = m.store.Clear()
			metrics.SessionEventsTotal.WithLabelValues("expired").Inc()
			m.log.Info().Msg("stored session expired, discarded")
		default:
			m.mu.Lock()
			m.token = sess.Token
			m.state.IsAuthenticated = true
			m.state.User = sess.User
			m.mu.Unlock()
			metrics.SessionEventsTotal.WithLabelValues("restored").Inc()
			m.log.Debug().Str("username", sess.User.Username).Msg("session restored")
		}

		m.mu.Lock()
		m.state.Loading = false
		m.mu.Unlock()
	})
}

type signinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signinResponse struct {
	AccessToken string `json:"accessToken"`
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

type loginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Login exchanges credentials for a session. On success the session is
// persisted and the state updated before the result is returned; on any
// failure the prior session and state are left untouched.
func (m *AuthManager) Login(ctx context.Context, username, password string) LoginResult {
	if err := m.validate.Struct(loginInput{Username: username, Password: password}); err != nil {
		return LoginResult{Message: err.Error()}
	}

	var resp signinResponse
	err := m.client.Post(ctx, "/auth/signin", signinRequest{Username: username, Password: password}, &resp)
	if err != nil {
		msg := loginFallbackMessage
		var reqErr *domain.RequestError
		if errors.As(err, &reqErr) {
			msg = reqErr.Message
		}
		m.log.Debug().Err(err).Str("username", username).Msg("login rejected")
		return LoginResult{Message: msg}
	}

	sess := &domain.Session{
		Token: resp.AccessToken,
		User: &domain.UserProfile{
			ID:       resp.ID,
			Username: resp.Username,
			Email:    resp.Email,
			Role:     resp.Role,
		},
	}
	if !sess.Valid() {
		m.log.Warn().Msg("signin response missing token")
		return LoginResult{Message: loginFallbackMessage}
	}

	// Persist before exposing the new state so there is no window where the
	// app believes itself authenticated with nothing on disk.
	if err := m.store.Save(sess); err != nil {
		m.log.Error().Err(err).Msg("could not persist session")
		return LoginResult{Message: loginFallbackMessage}
	}

	m.mu.Lock()
	m.token = sess.Token
	m.state.IsAuthenticated = true
	m.state.User = sess.User
	m.mu.Unlock()

	metrics.SessionEventsTotal.WithLabelValues("login").Inc()
	m.log.Info().Str("username", resp.Username).Msg("logged in")
	return LoginResult{Success: true}
}

// Logout clears the persisted session and resets the state. It makes no
// backend call and cannot fail.
func (m *AuthManager) Logout() {
	m.clearSession()
	metrics.SessionEventsTotal.WithLabelValues("logout").Inc()
	m.log.Info().Msg("logged out")
}

// HandleUnauthorized is registered with the HTTP client and fires on every
// 401 from an authenticated endpoint. It is idempotent: later calls find the
// session already gone and only repeat the navigation.
func (m *AuthManager) HandleUnauthorized() {
	m.clearSession()
	metrics.SessionEventsTotal.WithLabelValues("expired").Inc()
	m.navigate("/login")
}

func (m *AuthManager) clearSession() {
	_ = m.store.Clear()
	m.mu.Lock()
	m.token = ""
	m.state.IsAuthenticated = false
	m.state.User = nil
	m.mu.Unlock()
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	Message string `json:"message"`
}

type signupInput struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Signup registers a new account and returns the backend's confirmation
// message. It does not create a session; the user signs in afterwards.
func (m *AuthManager) Signup(ctx context.Context, username, email, password string) (string, error) {
	if err := m.validate.Struct(signupInput{Username: username, Email: email, Password: password}); err != nil {
		return "", err
	}

	var resp signupResponse
	err := m.client.Post(ctx, "/auth/signup", signupRequest{Username: username, Email: email, Password: password}, &resp)
	if err != nil {
		var reqErr *domain.RequestError
		if errors.As(err, &reqErr) {
			return "", errors.New(reqErr.Message)
		}
		return "", err
	}
	if resp.Message == "" {
		resp.Message = signupFallbackMessage
	}
	return resp.Message, nil
}

// tokenExpired inspects the exp claim without verifying the signature; the
// client does not hold the signing key, the backend stays the authority.
// Opaque tokens and tokens without exp are kept.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pharmadesk/pharmacy-client/internal/core/domain"
	"github.com/pharmadesk/pharmacy-client/internal/infrastructure/api"
	"github.com/pharmadesk/pharmacy-client/internal/infrastructure/session"
	"github.com/pharmadesk/pharmacy-client/internal/nav"
)

// fakeBackend is a minimal stand-in for the pharmacy REST API.
type fakeBackend struct {
	*echo.Echo
	revoked atomic.Bool
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{Echo: echo.New()}

	b.POST("/api/auth/signin", func(c echo.Context) error {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid payload"})
		}
		if req.Username != "admin" || req.Password != "admin123" {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"accessToken": "T", "id": 1, "username": "admin",
			"email": "a@x.com", "role": "ADMIN",
		})
	})

	b.GET("/api/medicines", func(c echo.Context) error {
		if b.revoked.Load() || c.Request().Header.Get("Authorization") != "Bearer T" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "token expired"})
		}
		return c.JSON(http.StatusOK, []domain.Medicine{
			{ID: 1, Name: "Paracetamol", Company: "MediCorp", Price: 5.99, Quantity: 150, ExpiryDate: "2025-12-31"},
		})
	})

	return b
}

func TestAuthFlow_EndToEnd(t *testing.T) {
	backend := newFakeBackend()
	srv := httptest.NewServer(backend)
	defer srv.Close()

	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	auth := NewAuthManager(store, zerolog.Nop())
	client := api.NewClient(srv.URL+"/api", 2*time.Second, auth, zerolog.Nop())
	auth.AttachRequester(client)
	client.SetUnauthorizedHandler(auth.HandleUnauthorized)

	var redirects []string
	auth.SetNavigator(func(path string) { redirects = append(redirects, path) })

	guard := nav.NewGuard(auth)
	medicines := NewMedicineService(client)
	ctx := context.Background()

	auth.Initialize()

	// Fresh start: protected views are unreachable.
	if d := guard.Resolve("/medicines"); d.Action != nav.Redirect || d.Target != nav.LoginPath {
		t.Fatalf("expected login redirect, got %+v", d)
	}

	// Wrong credentials surface the backend message and leave no session.
	if res := auth.Login(ctx, "admin", "nope"); res.Success || res.Message != "Invalid credentials" {
		t.Fatalf("unexpected login result: %+v", res)
	}
	if sess, _ := store.Load(); sess != nil {
		t.Fatalf("rejected login must not persist a session")
	}

	// Successful login persists the session and opens the shell.
	if res := auth.Login(ctx, "admin", "admin123"); !res.Success {
		t.Fatalf("login failed: %s", res.Message)
	}
	sess, err := store.Load()
	if err != nil || sess == nil || sess.Token != "T" || sess.User.Username != "admin" {
		t.Fatalf("unexpected persisted session: %+v, %v", sess, err)
	}
	if d := guard.Resolve("/medicines"); d.Action != nav.RenderProtected {
		t.Fatalf("expected protected render, got %+v", d)
	}

	// The token is attached and the list loads.
	meds, err := medicines.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(meds) != 1 || meds[0].Name != "Paracetamol" {
		t.Fatalf("unexpected medicines: %+v", meds)
	}

	// Backend revokes the token: the next call clears everything and
	// forces navigation to the login view.
	backend.revoked.Store(true)
	if _, err := medicines.List(ctx); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if sess, _ := store.Load(); sess != nil {
		t.Fatalf("expected session cleared after 401")
	}
	if len(redirects) != 1 || redirects[0] != "/login" {
		t.Fatalf("expected redirect to /login, got %v", redirects)
	}
	if d := guard.Resolve("/medicines"); d.Action != nav.Redirect || d.Target != nav.LoginPath {
		t.Fatalf("expected login redirect after forced clear, got %+v", d)
	}

	// Repeated 401s repeat the side effects without looping.
	if _, err := medicines.List(ctx); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if len(redirects) != 2 {
		t.Fatalf("expected one redirect per failing response, got %v", redirects)
	}
}

// A restart with the session already on disk comes up authenticated and the
// stored token rides along on the next request.
func TestAuthFlow_RestoreAcrossRestart(t *testing.T) {
	backend := newFakeBackend()
	srv := httptest.NewServer(backend)
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewFileStore(path)
	if err := store.Save(&domain.Session{
		Token: "T",
		User:  &domain.UserProfile{ID: 1, Username: "admin", Email: "a@x.com", Role: "ADMIN"},
	}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	auth := NewAuthManager(store, zerolog.Nop())
	client := api.NewClient(srv.URL+"/api", 2*time.Second, auth, zerolog.Nop())
	auth.AttachRequester(client)
	client.SetUnauthorizedHandler(auth.HandleUnauthorized)
	auth.Initialize()

	st := auth.State()
	if !st.IsAuthenticated || st.User.Username != "admin" {
		t.Fatalf("expected restored state, got %+v", st)
	}

	meds, err := NewMedicineService(client).List(context.Background())
	if err != nil {
		t.Fatalf("list with restored token failed: %v", err)
	}
	if len(meds) != 1 {
		t.Fatalf("unexpected medicines: %+v", meds)
	}
}

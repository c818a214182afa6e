package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pharmadesk/pharmacy-client/internal/core/domain"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)

	sess := &domain.Session{
		Token: "T",
		User:  &domain.UserProfile{ID: 1, Username: "admin", Email: "a@x.com", Role: "ADMIN"},
	}
	if err := store.Save(sess); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got == nil || got.Token != "T" {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.User.Username != "admin" || got.User.Role != "ADMIN" {
		t.Fatalf("unexpected profile: %+v", got.User)
	}
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := newTestStore(t)

	sess, err := store.Load()
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if sess != nil {
		t.Fatalf("expected nil session, got %+v", sess)
	}
}

func TestFileStore_LoadDiscardsPartialRecord(t *testing.T) {
	store := newTestStore(t)

	// Token without user violates the session invariant.
	if err := os.WriteFile(store.path, []byte(`{"token":"T"}`), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	sess, err := store.Load()
	if err != nil || sess != nil {
		t.Fatalf("expected partial record discarded, got %+v, %v", sess, err)
	}
}

func TestFileStore_LoadDiscardsCorruptFile(t *testing.T) {
	store := newTestStore(t)

	if err := os.WriteFile(store.path, []byte("not-json"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	sess, err := store.Load()
	if err != nil || sess != nil {
		t.Fatalf("expected corrupt record discarded, got %+v, %v", sess, err)
	}
}

func TestFileStore_SaveRejectsInvalidSession(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(&domain.Session{Token: "T"}); err != domain.ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestFileStore_SaveFilePermissions(t *testing.T) {
	store := newTestStore(t)

	sess := &domain.Session{Token: "T", User: &domain.UserProfile{ID: 1, Username: "admin"}}
	if err := store.Save(sess); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	info, err := os.Stat(store.path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 permissions, got %o", perm)
	}
}

func TestFileStore_ClearIdempotent(t *testing.T) {
	store := newTestStore(t)

	sess := &domain.Session{Token: "T", User: &domain.UserProfile{ID: 1, Username: "admin"}}
	if err := store.Save(sess); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}

	if sess, _ := store.Load(); sess != nil {
		t.Fatalf("expected no session after clear")
	}
}

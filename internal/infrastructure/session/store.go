// Package session persists the authenticated session on the local disk so it
// survives process restarts, the way the browser original kept it in
// localStorage.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pharmadesk/pharmacy-client/internal/core/domain"
)

// FileStore keeps the session as a JSON document with owner-only permissions.
// Writes go through a temp file and rename so a crash never leaves a
// half-written record behind.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the stored session. A missing file, unreadable JSON, or a record
// violating the token-and-user-together invariant all report no session.
func (s *FileStore) Load() (*domain.Session, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, nil
	}
	if !sess.Valid() {
		return nil, nil
	}
	return &sess, nil
}

// Save persists a valid session atomically.
func (s *FileStore) Save(sess *domain.Session) error {
	if !sess.Valid() {
		return domain.ErrNoSession
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Clear removes the stored session. Clearing an absent session succeeds.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

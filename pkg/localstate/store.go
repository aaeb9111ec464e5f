// Package localstate persists the client's local state on disk: the auth
// token, the last-known user object, and the ids of bookings this device has
// already reviewed. It plays the part browser local storage plays for the web
// client; the reviewed-booking list is a best-effort hint, not a server fact.
package localstate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	pkgerrors "github.com/servicepro/servicepro-client/pkg/errors"
)

const (
	tokenFile    = "token"
	userFile     = "user.json"
	reviewedFile = "reviewed_bookings.json"
)

// Store reads and writes state files under a single directory.
type Store struct {
	mu  sync.Mutex
	dir string
}

func New(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "state dir is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create state dir")
	}
	return &Store{dir: dir}, nil
}

// Token returns the persisted bearer token, or "" when absent. The signature
// matches the api client's TokenSource option.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(tokenFile, []byte(token))
}

// User unmarshals the persisted last-known user into out. Returns false when
// no user is persisted or the stored JSON is unreadable.
func (s *Store) User(out any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (s *Store) SetUser(user any) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal user")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(userFile, raw)
}

// Clear removes the persisted token and user. Reviewed-booking hints are kept
// so a returning login on the same device still suppresses duplicate review
// prompts.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear state")
		}
	}
	return firstErr
}

// HasReviewed reports whether this device recorded a review for the booking.
func (s *Store) HasReviewed(bookingID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.reviewedLocked() {
		if id == bookingID {
			return true
		}
	}
	return false
}

// MarkReviewed records a submitted review for the booking.
func (s *Store) MarkReviewed(bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.reviewedLocked()
	for _, id := range ids {
		if id == bookingID {
			return nil
		}
	}
	ids = append(ids, bookingID)
	raw, err := json.Marshal(ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal reviewed bookings")
	}
	return s.write(reviewedFile, raw)
}

func (s *Store) reviewedLocked() []string {
	raw, err := os.ReadFile(filepath.Join(s.dir, reviewedFile))
	if err != nil {
		return nil
	}
	var ids []string
	if json.Unmarshal(raw, &ids) != nil {
		return nil
	}
	return ids
}

// write lands content atomically so a crash mid-write never leaves a torn
// token or user file behind.
func (s *Store) write(name string, content []byte) error {
	target := filepath.Join(s.dir, name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, content, 0o600); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write state file")
	}
	if err := os.Rename(tmp, target); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace state file")
	}
	return nil
}

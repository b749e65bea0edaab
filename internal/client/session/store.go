/*
Package session owns the terminal client's authenticated identity.

The Store is the single writer of session state. It keeps the current Identity
and its bearer token in memory and mirrors every change into a JSON file under
the user's config directory, so a signed-in session survives restarts. The
file is a best-effort cache, not a source of truth: unreadable or malformed
content degrades to "signed out" instead of surfacing an error.
*/
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"placerank/internal/app/account"
	"placerank/internal/pkg/logx"
)

// DefaultPath returns the standard location of the session file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "placerank", "session.json"), nil
}

// state is the persisted session envelope.
type state struct {
	Token string           `json:"token"`
	User  account.Identity `json:"user"`
}

// Store holds the current session, if any, and persists it to a file.
// All other components read the session through Current and the predicates;
// every mutation goes through Login, Logout, UpdateIdentity, or Replace.
type Store struct {
	mu sync.RWMutex

	path    string
	current *state

	// loading is true until Load has run once. The gate checks it first so a
	// restored session is never mistaken for "signed out" mid-restore.
	loading bool
}

// NewStore creates a Store bound to the given session file path.
// The store reports loading until Load is called.
func NewStore(path string) *Store {
	return &Store{
		path:    path,
		loading: true,
	}
}

// Load reads the persisted session, if one exists. Absence and malformed
// content both leave the store signed out; malformed content is logged and
// the stale file removed. Load always clears the loading flag.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() { s.loading = false }()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logx.Warn("Session file unreadable, starting signed out", "path", s.path, "error", err)
		}
		return
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil || st.Token == "" || !st.User.Role.Valid() {
		logx.Warn("Session file malformed, starting signed out", "path", s.path)
		if removeErr := os.Remove(s.path); removeErr != nil {
			logx.Warn("Failed to remove malformed session file", "path", s.path, "error", removeErr)
		}
		return
	}

	s.current = &st
}

// Loading reports whether the initial Load has not yet completed.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Login sets the current session and persists it verbatim. The store does
// not validate the identity; that is the sign-in flow's responsibility.
func (s *Store) Login(token string, identity account.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &state{Token: token, User: identity}
	s.persist()
}

// Logout clears the session and removes the persisted file. It is a no-op
// when already signed out.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}

	s.current = nil

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logx.Warn("Failed to remove session file on sign out", "path", s.path, "error", err)
	}
}

// UpdateIdentity shallow-merges the partial update onto the current Identity
// and persists the merged result. Without a session it is a silent no-op.
func (s *Store) UpdateIdentity(update account.ProfileUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}

	s.current.User = update.Apply(s.current.User)
	s.persist()
}

// Replace swaps in a full identity returned by the server (for example after
// a profile update round trip) and persists it. An empty token keeps the
// current one.
func (s *Store) Replace(token string, identity account.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}

	if token != "" {
		s.current.Token = token
	}
	s.current.User = identity
	s.persist()
}

// Current returns a copy of the current Identity. The second return is false
// when signed out. Callers never receive a reference into the store's state.
func (s *Store) Current() (account.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return account.Identity{}, false
	}
	return s.current.User, true
}

// Token returns the bearer token of the current session, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// IsAuthenticated reports whether a session is loaded.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// IsIndividual reports whether the session belongs to an individual account.
func (s *Store) IsIndividual() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.User.Role == account.RoleIndividual
}

// IsOrganization reports whether the session belongs to an organization account.
func (s *Store) IsOrganization() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.User.Role == account.RoleOrganization
}

// persist writes the current session to the session file. Callers hold the
// write lock. Persistence failures are logged, never returned: the in-memory
// session stays usable for the rest of the run.
func (s *Store) persist() {
	data, err := json.Marshal(s.current)
	if err != nil {
		logx.Error(err, "Failed to encode session", "path", s.path)
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		logx.Error(err, "Failed to create session directory", "path", s.path)
		return
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		logx.Error(err, "Failed to write session file", "path", s.path)
	}
}

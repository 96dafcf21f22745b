// ABOUTME: Process-wide authentication state for the petcare front-ends
// ABOUTME: Mirrors the current token and user name to durable storage

package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/markalston/petcare-cli/internal/debuglog"
	"github.com/markalston/petcare-cli/internal/token"
)

// Persistence keys.
const (
	TokenKey    = "auth_token"
	UserNameKey = "user_name"
)

// Persistence is the durable key/value store behind a session.
type Persistence interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// State is the authentication state of the store.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is a point-in-time copy of the store's state.
type Session struct {
	Token    string `json:"-"`
	UserName string `json:"user_name,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
}

// Authenticated reports whether the snapshot carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store holds the single active session. Construct it once at startup,
// call Restore, then hand it to the views. Only Login, Logout and Restore
// change it.
type Store struct {
	persist   Persistence
	inspector *token.Inspector

	restoreOnce sync.Once

	mu       sync.RWMutex
	token    string
	userName string
	isAdmin  bool
}

// New creates an unauthenticated store.
func New(persist Persistence, inspector *token.Inspector) *Store {
	if inspector == nil {
		inspector = token.NewInspector(nil)
	}
	return &Store{
		persist:   persist,
		inspector: inspector,
	}
}

// Restore loads the persisted session, once per store. A missing or
// unreadable record leaves the store unauthenticated; an expired one is
// erased.
func (s *Store) Restore() State {
	s.restoreOnce.Do(s.restore)
	return s.State()
}

func (s *Store) restore() {
	savedToken, ok := s.read(TokenKey)
	if !ok {
		return
	}
	savedUser, ok := s.read(UserNameKey)
	if !ok {
		return
	}

	if s.inspector.IsExpired(savedToken) {
		debuglog.Log("session: persisted token for %q expired, clearing", savedUser)
		if err := s.erase(); err != nil {
			debuglog.Error("session restore", err)
		}
		return
	}

	s.mu.Lock()
	s.token = savedToken
	s.userName = savedUser
	s.isAdmin = s.inspector.HasAuthority(savedToken, token.AdminAuthority)
	s.mu.Unlock()

	debuglog.Log("session: restored %q (admin=%t)", savedUser, s.IsAdmin())
}

// read treats storage failures the same as a missing key.
func (s *Store) read(key string) (string, bool) {
	if s.persist == nil {
		return "", false
	}
	value, found, err := s.persist.Get(key)
	if err != nil {
		debuglog.Warn("session: reading %s: %v", key, err)
		return "", false
	}
	if !found || value == "" {
		return "", false
	}
	return value, true
}

// Login makes tok the active session, replacing any previous one. The
// in-memory state changes even when persisting fails; the returned error
// only means the session will not survive a restart. A failed write erases
// the persisted record so the token and user name are stored as a pair or
// not at all.
func (s *Store) Login(tok, userName string) error {
	isAdmin := s.inspector.HasAuthority(tok, token.AdminAuthority)

	s.mu.Lock()
	s.token = tok
	s.userName = userName
	s.isAdmin = isAdmin
	s.mu.Unlock()

	debuglog.Log("session: login %q (admin=%t)", userName, isAdmin)

	if s.persist == nil {
		return nil
	}
	err := s.persist.Set(TokenKey, tok)
	if err == nil {
		err = s.persist.Set(UserNameKey, userName)
	}
	if err != nil {
		// A half-written record would pair the new token with the old name.
		return fmt.Errorf("failed to persist session: %w", errors.Join(err, s.erase()))
	}
	return nil
}

// Logout clears the active session and its persisted record. Calling it
// when already logged out is harmless.
func (s *Store) Logout() error {
	s.mu.Lock()
	previous := s.userName
	s.token = ""
	s.userName = ""
	s.isAdmin = false
	s.mu.Unlock()

	if previous != "" {
		debuglog.Log("session: logout %q", previous)
	}
	return s.erase()
}

func (s *Store) erase() error {
	if s.persist == nil {
		return nil
	}
	err := errors.Join(s.persist.Remove(TokenKey), s.persist.Remove(UserNameKey))
	if err != nil {
		return fmt.Errorf("failed to clear persisted session: %w", err)
	}
	return nil
}

// State returns the current authentication state.
func (s *Store) State() State {
	if s.IsAuthenticated() {
		return Authenticated
	}
	return Unauthenticated
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the active bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// UserName returns the active display name, or "" when logged out.
func (s *Store) UserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userName
}

// IsAdmin reports whether the active token lists the ADMIN authority.
// It is false when logged out.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAdmin
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Session{Token: s.token, UserName: s.userName, IsAdmin: s.isAdmin}
}

// Inspector returns the token inspector used by the store.
func (s *Store) Inspector() *token.Inspector {
	return s.inspector
}

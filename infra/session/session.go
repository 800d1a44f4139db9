// Package session persists the signed-in user's identity and bearer tokens
// between runs, so restarting the client resumes the session.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"terminalcanvas/app"
)

// Session is the durable record of a signed-in user.
type Session struct {
	UserID       int    `json:"user_id"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Valid reports whether the record identifies a signed-in user. The user id
// is the auth marker; tokens are optional because the backend may issue none,
// in which case requests simply go out without a bearer header.
func (s Session) Valid() bool {
	return s.UserID != 0
}

// Identity converts the record to the application identity.
func (s Session) Identity() app.Identity {
	return app.Identity{
		UserID:      s.UserID,
		Username:    s.Username,
		DisplayName: s.DisplayName,
	}
}

// Store reads and writes the session file. It also acts as the API client's
// token source, so a login in one part of the program is immediately visible
// to requests issued elsewhere.
type Store struct {
	path string

	mu      sync.Mutex
	current Session
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the session file. A missing file is not an error; it returns
// the zero session, meaning signed out.
func (st *Store) Load() (Session, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("reading session from %s: %w", st.path, err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		// A corrupt session file routes the user back to login rather
		// than wedging startup.
		return Session{}, nil
	}

	st.mu.Lock()
	st.current = s
	st.mu.Unlock()
	return s, nil
}

// Save persists the session and makes it the active token source.
func (st *Store) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(st.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session to %s: %w", st.path, err)
	}

	st.mu.Lock()
	st.current = s
	st.mu.Unlock()
	return nil
}

// Clear removes the session file and forgets the active session.
func (st *Store) Clear() error {
	st.mu.Lock()
	st.current = Session{}
	st.mu.Unlock()

	if err := os.Remove(st.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// AccessToken returns the active bearer token, or empty when signed out.
func (st *Store) AccessToken() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.current.AccessToken
}

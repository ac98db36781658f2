// Package auth persists the authenticated user for the local client. The
// session lives in a single JSON file inside the data directory; removing the
// file logs the user out.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSession means no user is logged in.
var ErrNoSession = errors.New("not logged in")

// User is the stored session record.
type User struct {
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
}

// Session reads and writes the session file.
type Session struct {
	path string
}

// NewSession manages the session file inside dir.
func NewSession(dir string) *Session {
	return &Session{path: filepath.Join(dir, "session.json")}
}

// Current returns the logged-in user or ErrNoSession.
func (s *Session) Current() (*User, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if user.AccessToken == "" {
		return nil, ErrNoSession
	}
	return &user, nil
}

// AccessToken supplies the bearer credential for gateway calls.
func (s *Session) AccessToken() (string, error) {
	user, err := s.Current()
	if err != nil {
		return "", err
	}
	return user.AccessToken, nil
}

// Save writes the session record.
func (s *Session) Save(user *User) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the session file. A missing file is not an error.
func (s *Session) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

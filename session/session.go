// Package session persists the signed-in user between CLI invocations.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zoe5466/Gudiee-sub001/types"
)

// ErrNoSession is returned by Load when nobody is signed in.
var ErrNoSession = errors.New("no active session; run `guidee register` first")

// Session is the content of session.yaml.
type Session struct {
	User     types.User `yaml:"user"`
	Token    string     `yaml:"token"`
	SavedAt  time.Time  `yaml:"saved_at"`
	Endpoint string     `yaml:"endpoint,omitempty"`
}

// Store reads and writes a single session file.
type Store struct {
	path string
}

// DefaultPath returns ~/.guidee/session.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".guidee", "session.yaml"), nil
}

// NewStore returns a store backed by path, or DefaultPath when empty.
func NewStore(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Store{path: path}, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Save writes the session with owner-only permissions.
func (s *Store) Save(sess Session) error {
	if sess.Token == "" {
		return fmt.Errorf("saving session: token is empty")
	}
	if sess.SavedAt.IsZero() {
		sess.SavedAt = time.Now().UTC()
	}
	data, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Load reads the session. A missing file returns ErrNoSession.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("reading session %s: %w", s.path, err)
	}
	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", s.path, err)
	}
	if sess.Token == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Clear removes the session file. Clearing a missing session is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

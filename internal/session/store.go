package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys, kept from the web client so both share one vocabulary.
const (
	KeyToken      = "token"
	KeyAdminToken = "adminToken"
	keyRole       = "role"
	keyUser       = "user"
)

// FileStore is the CLI's session storage: a small JSON key/value file.
// Admin logins are stored under adminToken, everyone else under token.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultStorePath is $XDG_CONFIG_HOME/marketplace-admin/session.json.
func DefaultStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "marketplace-admin", "session.json"), nil
}

func (f *FileStore) Save(s *Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, err := json.Marshal(s.User)
	if err != nil {
		return err
	}
	values := map[string]string{
		keyRole: s.Role,
		keyUser: string(user),
	}
	if s.Role == RoleAdmin {
		values[KeyAdminToken] = s.Token
	} else {
		values[KeyToken] = s.Token
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	return os.WriteFile(f.path, data, 0o600)
}

// Load returns the stored session or ErrNoSession.
func (f *FileStore) Load() (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("corrupt session file: %w", err)
	}

	token := values[KeyAdminToken]
	if token == "" {
		token = values[KeyToken]
	}
	if token == "" {
		return nil, ErrNoSession
	}

	var user User
	if raw := values[keyUser]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, fmt.Errorf("corrupt session user: %w", err)
		}
	}
	return New(token, values[keyRole], user), nil
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f *FileStore) Token(context.Context) string {
	s, err := f.Load()
	if err != nil {
		return ""
	}
	return s.Token
}

// Expire clears the stored tokens after the backend answered 401.
func (f *FileStore) Expire(context.Context) {
	_ = f.Clear()
}

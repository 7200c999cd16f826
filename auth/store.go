package auth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rgonek/contentdesk/apiclient"
)

// FileStore keeps the token in a file readable only by the current user.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path returns the token file location.
func (s *FileStore) Path() string {
	return s.path
}

// Token implements apiclient.TokenSource. A stored JWT past its exp claim
// yields ErrTokenExpired instead of being sent.
func (s *FileStore) Token(context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", apiclient.ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", apiclient.ErrNoToken
	}
	if Expired(token, s.now()) {
		return "", ErrTokenExpired
	}
	return token, nil
}

// Save writes token, creating parent directories as needed.
func (s *FileStore) Save(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("refusing to save an empty token")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

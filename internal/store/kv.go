package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// KV is a namespaced key/value text store persisted onto the local
// filesystem, one file per key under a base directory. It is the only durable
// substrate of the portal: synchronous, single-writer, no transactions.
// Writes are last-write-wins; a concurrent external writer silently loses.
type KV struct {
	basePath string
	mu       sync.Mutex
}

// Open initializes a KV store rooted at basePath, creating the directory if
// needed.
func Open(basePath string) (*KV, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("store: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &KV{basePath: basePath}, nil
}

// BasePath returns the configured root directory.
func (s *KV) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// Get reads the value stored at key. The second return value reports whether
// the key exists.
func (s *KV) Get(key string) (string, bool, error) {
	if s == nil {
		return "", false, errors.New("store: no store configured")
	}
	path, err := s.keyPath(key)
	if err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: read key %q: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes value at key, replacing any previous value.
func (s *KV) Set(key, value string) error {
	if s == nil {
		return errors.New("store: no store configured")
	}
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return fmt.Errorf("store: write key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *KV) Delete(key string) error {
	if s == nil {
		return errors.New("store: no store configured")
	}
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: delete key %q: %w", key, err)
	}
	return nil
}

// keyPath maps a key onto a file path under the base directory and prevents
// escaping the storage root.
func (s *KV) keyPath(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("store: key is required")
	}
	cleaned := filepath.Clean(key)
	if cleaned == "." || cleaned != filepath.Base(cleaned) {
		return "", fmt.Errorf("store: invalid key %q", key)
	}
	return filepath.Join(s.basePath, cleaned), nil
}

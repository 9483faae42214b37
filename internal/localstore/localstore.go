package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store is a small persistent key/value store for client-side state: the
// session token, the theme preference, and the anonymous visitor id. Values
// survive restarts the way browser storage survives page loads.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// Open loads the store file at dir/state.json, creating the directory if
// needed. A missing file yields an empty store; a corrupt file is treated
// as empty rather than fatal, since every value it holds can be re-derived
// by logging in again.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	store := &Store{
		path:   filepath.Join(dir, "state.json"),
		values: make(map[string]string),
	}

	raw, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("reading state file: %w", err)
	}
	if err := json.Unmarshal(raw, &store.values); err != nil {
		store.values = make(map[string]string)
	}
	return store, nil
}

// Get returns the stored value for key, or false if absent.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}

// Set persists value under key.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flushLocked()
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flushLocked()
}

// flushLocked writes the store atomically: a rename replaces the old file
// in one step so a crash mid-write cannot leave a half-written state file.
func (s *Store) flushLocked() error {
	encoded, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

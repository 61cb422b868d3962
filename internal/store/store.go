// Package store provides the durable key/value state file backing session and
// theme persistence. Values live in a single JSON document under the user's
// state directory and every mutation is written through to disk.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Well-known keys persisted by the application.
const (
	KeyToken       = "token"
	KeyThemeName   = "themeName"
	KeyCustomTheme = "customTheme"
)

// ErrNotFound is returned by Get when a key has never been set.
var ErrNotFound = errors.New("key not found")

type stateFile struct {
	Version string            `json:"version"`
	Values  map[string]string `json:"values"`
}

// Store persists string values by key across sessions.
type Store struct {
	path    string
	mu      sync.RWMutex
	version string
	values  map[string]string
}

// New creates a Store backed by the file at path and loads any existing state.
func New(path string) (*Store, error) {
	s := &Store{
		path:    path,
		version: "1.0",
		values:  make(map[string]string),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	if err := s.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		// First run, start empty.
	}

	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var file stateFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}

	s.version = file.Version
	s.values = file.Values
	if s.values == nil {
		s.values = make(map[string]string)
	}

	return nil
}

// save writes the state to disk atomically. Callers hold at least a read lock.
func (s *Store) save() error {
	file := stateFile{Version: s.version, Values: s.values}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temporary state file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary state file: %w", err)
	}

	return nil
}

// Get returns the value stored under key, or ErrNotFound.
func (s *Store) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return value, nil
}

// Set stores value under key and writes through to disk.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.save()
}

// Delete removes key and writes through to disk. Removing an absent key is
// not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.save()
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

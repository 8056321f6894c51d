package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName   = "motovision"
	storeFile = "store.yaml"
)

// Store is a file-backed string key-value store. It is safe for concurrent
// use; every mutation is persisted before the call returns.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// GetConfigDir returns the OS-appropriate configuration directory for the
// application:
//   - Linux: $XDG_CONFIG_HOME/motovision or $HOME/.config/motovision
//   - macOS: $HOME/.config/motovision (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\motovision
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		// Linux and other Unix-like systems
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// Open loads the store from the default location. A missing file yields an
// empty store; the file is created on the first write.
func Open() (*Store, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(filepath.Join(configDir, storeFile))
}

// OpenAt loads the store from an explicit path. Used by tests and by
// commands that point the client at a scratch store.
func OpenAt(path string) (*Store, error) {
	s := &Store{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	return s, nil
}

// Get returns the value for key and whether it is present.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores a single key and persists the store.
func (s *Store) Set(key, value string) error {
	return s.SetMulti(map[string]string{key: value})
}

// SetMulti stores several keys in one atomic write. Either all pairs are
// persisted or none are.
func (s *Store) SetMulti(pairs map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Snapshot the previous value (or absence) of every key touched, so a
	// failed save restores overwritten values instead of dropping them.
	type prior struct {
		value   string
		present bool
	}
	priors := make(map[string]prior, len(pairs))
	for k := range pairs {
		v, ok := s.values[k]
		priors[k] = prior{value: v, present: ok}
	}

	for k, v := range pairs {
		s.values[k] = v
	}
	if err := s.save(); err != nil {
		// Roll back the in-memory view so it matches the file.
		for k, p := range priors {
			if p.present {
				s.values[k] = p.value
			} else {
				delete(s.values, k)
			}
		}
		return err
	}
	return nil
}

// Remove deletes the given keys and persists the store. Removing keys that
// are absent is not an error.
func (s *Store) Remove(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, k := range keys {
		if _, ok := s.values[k]; ok {
			delete(s.values, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save()
}

// Keys returns all stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// save writes the store to disk atomically. Callers must hold s.mu.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	// Write to a temporary file first, then rename into place.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary store file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

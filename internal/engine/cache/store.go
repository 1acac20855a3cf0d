package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const entryExtension = ".json"

// Cache errors.
var (
	ErrNotFound   = errors.New("cache entry not found")
	ErrExpired    = errors.New("cache entry expired")
	ErrInvalidKey = errors.New("cache key cannot be empty")
	ErrDisabled   = errors.New("cache is disabled")
)

// FileStore keeps corpus entries as JSON files in one directory.
// It is safe for concurrent use.
type FileStore struct {
	directory  string
	enabled    bool
	ttlSeconds int

	mu sync.RWMutex
}

// NewFileStore opens (creating if needed) a store in directory. A disabled
// store is valid and answers every call with ErrDisabled.
func NewFileStore(directory string, enabled bool, ttlSeconds int) (*FileStore, error) {
	if !enabled {
		return &FileStore{enabled: false}, nil
	}

	if directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if ttlSeconds < MinTTLSeconds || ttlSeconds > MaxTTLSeconds {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTTL, ttlSeconds)
	}

	if err := os.MkdirAll(directory, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return &FileStore{
		directory:  directory,
		enabled:    true,
		ttlSeconds: ttlSeconds,
	}, nil
}

// Get returns the entry for key. Expired entries are removed and reported
// as ErrExpired.
func (s *FileStore) Get(key string) (*Entry, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}
	if key == "" {
		return nil, ErrInvalidKey
	}

	s.mu.RLock()
	path := s.pathFor(key)
	data, err := os.ReadFile(path)
	s.mu.RUnlock()

	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading cache file: %w", err)
	}

	var entry Entry
	if err = json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	if entry.IsExpired() {
		_ = s.Delete(key)
		return nil, ErrExpired
	}

	return &entry, nil
}

// Set stores lines read from source under key, replacing any previous entry.
func (s *FileStore) Set(key, source string, lines []string) error {
	if !s.enabled {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	data, err := json.Marshal(NewEntry(key, source, lines, s.ttlSeconds))
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.pathFor(key)
	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming cache file: %w", err)
	}

	return nil
}

// Delete removes the entry for key. Deleting a missing entry is not an error.
func (s *FileStore) Delete(key string) error {
	if !s.enabled {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.pathFor(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting cache file: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (s *FileStore) Clear() error {
	return s.removeWhere(func(*Entry) bool { return true })
}

// CleanupExpired removes expired entries. Unreadable files are left alone.
func (s *FileStore) CleanupExpired() error {
	return s.removeWhere(func(e *Entry) bool { return e != nil && e.IsExpired() })
}

// Count returns the number of entries on disk, expired ones included.
func (s *FileStore) Count() (int, error) {
	if !s.enabled {
		return 0, ErrDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.entryFiles()
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

// IsEnabled reports whether the store caches anything.
func (s *FileStore) IsEnabled() bool {
	return s.enabled
}

// Directory returns the cache directory.
func (s *FileStore) Directory() string {
	return s.directory
}

// removeWhere deletes entry files for which match returns true. For Clear
// the entry is not decoded and match receives nil.
func (s *FileStore) removeWhere(match func(*Entry) bool) error {
	if !s.enabled {
		return ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.entryFiles()
	if err != nil {
		return err
	}

	decode := !match(nil)
	for _, path := range files {
		if decode {
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				continue
			}
			var e Entry
			if json.Unmarshal(data, &e) != nil || !match(&e) {
				continue
			}
		}
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return fmt.Errorf("removing cache file %s: %w", filepath.Base(path), rmErr)
		}
	}

	return nil
}

func (s *FileStore) entryFiles() ([]string, error) {
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == entryExtension {
			files = append(files, filepath.Join(s.directory, e.Name()))
		}
	}
	return files, nil
}

// pathFor maps a key to its file, replacing path separators.
func (s *FileStore) pathFor(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(s.directory, safe+entryExtension)
}

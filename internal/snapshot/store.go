package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store reads and writes snapshot bytes at a fixed path. Writes go through a
// temp file and rename so a crash mid-write never truncates the snapshot.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: strings.TrimSpace(path)}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the snapshot bytes, or nil when no snapshot exists yet.
func (s *Store) Load() ([]byte, error) {
	if s.path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrIO, s.path, err)
	}
	return raw, nil
}

// Save writes the snapshot bytes atomically, creating the parent directory
// when needed.
func (s *Store) Save(data []byte) error {
	if s.path == "" {
		return nil
	}
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: mkdir %s: %v", ErrIO, dir, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrIO, tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", ErrIO, s.path, err)
	}
	return nil
}

// Package fs provides file-based storage for mirrored sites.
package fs

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"sitemirror"
)

// Ensure Store implements sitemirror.FileStore at compile time.
var _ sitemirror.FileStore = (*Store)(nil)

// Store persists mirror files under a root directory. Paths are
// slash-separated and relative; parent directories are created on demand.
type Store struct {
	root string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Write stores data at the given relative path, creating parent directories
// as needed.
func (s *Store) Write(path string, data []byte) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0644)
}

// WriteIfChanged writes only when the stored content differs from data.
// Returns true if a write happened.
func (s *Store) WriteIfChanged(path string, data []byte) (bool, error) {
	full, err := s.resolve(path)
	if err != nil {
		return false, err
	}
	existing, err := os.ReadFile(full)
	if err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err := s.Write(path, data); err != nil {
		return false, err
	}
	return true, nil
}

// Read returns the stored content at the given relative path.
func (s *Store) Read(path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sitemirror.Errorf(sitemirror.ENOTFOUND, "no stored file at %s", path)
		}
		return nil, err
	}
	return data, nil
}

// Exists reports whether a file is stored at the given relative path.
func (s *Store) Exists(path string) bool {
	full, err := s.resolve(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}

// resolve joins a relative slash path onto the root and rejects paths that
// would escape it.
func (s *Store) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", sitemirror.Errorf(sitemirror.EINVALID, "path %q escapes the output directory", path)
	}
	return filepath.Join(s.root, clean), nil
}

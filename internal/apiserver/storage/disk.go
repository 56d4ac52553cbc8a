package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gestimo/gestimo/internal/common/config"
	"github.com/google/uuid"
)

var ErrInvalidKey = errors.New("invalid file key")

// DiskStore stores uploaded documents under a root directory. Keys are
// generated server-side, so a key never escapes the root.
type DiskStore struct {
	root string
}

// NewDiskStore creates the store root if needed
func NewDiskStore(cfg *config.StorageConfig) (*DiskStore, error) {
	if cfg.Path == "" {
		return nil, errors.New("storage path cannot be empty")
	}
	if err := os.MkdirAll(cfg.Path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &DiskStore{root: cfg.Path}, nil
}

// NewKey returns a fresh storage key preserving the original extension
func (s *DiskStore) NewKey(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return uuid.New().String() + ext
}

// Save writes the content under key and returns the number of bytes written
func (s *DiskStore) Save(key string, r io.Reader) (int64, error) {
	path, err := s.resolve(key)
	if err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// don't leave a partial file behind
		_ = os.Remove(path)
		return 0, err
	}
	return n, nil
}

// Open opens the stored file for reading
func (s *DiskStore) Open(key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Remove deletes the stored file. Removing a missing file is not an error.
func (s *DiskStore) Remove(key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the absolute path of a stored file
func (s *DiskStore) Path(key string) (string, error) {
	return s.resolve(key)
}

func (s *DiskStore) resolve(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.root, key), nil
}

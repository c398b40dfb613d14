package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	PartSuffix = ".part"

	dirPermissions  = 0o755
	filePermissions = 0o644
)

// FileStore writes downloads under absolute destination paths. The presence
// of a final file is the only "already downloaded" marker.
type FileStore struct{}

func NewFileStore() *FileStore {
	return &FileStore{}
}

func (s *FileStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *FileStore) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// PartPath is the temporary sibling of dest used while a transfer runs.
func PartPath(dest string) string {
	return dest + PartSuffix
}

// CreatePart creates the parent tree of dest and truncates its .part file.
func (s *FileStore) CreatePart(dest string) (*os.File, error) {
	if err := s.EnsureDir(filepath.Dir(dest)); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(PartPath(dest), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermissions)
	if err != nil {
		return nil, fmt.Errorf("creating part file: %w", err)
	}
	return file, nil
}

// Promote renames the .part file of dest onto dest.
func (s *FileStore) Promote(dest string) error {
	if err := os.Rename(PartPath(dest), dest); err != nil {
		return fmt.Errorf("promoting %s: %w", dest, err)
	}
	return nil
}

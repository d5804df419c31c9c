package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores media on the local filesystem under a root directory.
type Local struct {
	root string
}

func NewLocal(root string) *Local {
	return &Local{root: root}
}

func (l *Local) Save(path string, r io.Reader, _ string) error {
	full := filepath.Join(l.root, filepath.FromSlash(path))

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return fmt.Errorf("failed to write media file: %w", err)
	}
	return nil
}

func (l *Local) Delete(path string) error {
	full := filepath.Join(l.root, filepath.FromSlash(path))
	err := os.Remove(full)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

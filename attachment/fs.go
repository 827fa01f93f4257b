// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps uploads as plain files under a root directory.
type FileStore struct {
	root string
}

// NewFileStore returns a FileStore rooted at root, creating it if needed.
func NewFileStore(root string) (*FileStore, error) {
	if root == "" {
		root = "public/uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) Driver() string { return DriverFilesystem }

// Root returns the upload directory
func (s *FileStore) Root() string { return s.root }

func (s *FileStore) pathFor(name string) (string, error) {
	clean, err := CleanName(name)
	if err != nil {
		return "", err
	}
	if clean != name {
		return "", ErrInvalidName
	}
	return filepath.Join(s.root, clean), nil
}

// Put streams r into a temp file next to the target and renames it into
// place, so readers never observe a partial file.
func (s *FileStore) Put(ctx context.Context, name string, r io.Reader, contentType string) error {
	dst, err := s.pathFor(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close upload: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to chmod upload: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("failed to move upload into place: %w", err)
	}
	return nil
}

func (s *FileStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	p, err := s.pathFor(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package attachment

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/danielhkuo/request-desk/models"
)

// Backend driver names
const (
	DriverFilesystem = "fs"
	DriverS3         = "s3"
)

var (
	ErrNotFound    = errors.New("attachment not found")
	ErrInvalidName = errors.New("invalid attachment name")
)

// Store persists uploaded files keyed by name. Put overwrites an existing
// file with the same name.
type Store interface {
	Driver() string
	Put(ctx context.Context, name string, r io.Reader, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// CleanName reduces a client-supplied file name to a safe base name.
// Directory components are dropped; names that cannot address a file
// under the upload root are rejected, as is the NoAttachment sentinel
// which records already use to mean "no file".
func CleanName(name string) (string, error) {
	name = strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	base := path.Base(name)
	switch {
	case name == "", base == ".", base == "..", base == "/":
		return "", ErrInvalidName
	case strings.ContainsRune(base, 0):
		return "", ErrInvalidName
	case base == models.NoAttachment:
		return "", ErrInvalidName
	}
	return base, nil
}

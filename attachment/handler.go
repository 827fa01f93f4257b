// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package attachment

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/danielhkuo/request-desk/models"
)

// Upload is a file received with a submission
type Upload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// StorageWriteError reports that an upload could not be persisted.
// Name is the reference the record would carry.
type StorageWriteError struct {
	Name string
	Err  error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("failed to store attachment %q: %v", e.Name, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

// Handler turns an optional upload into the reference stored on a record.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Store returns the backing store
func (h *Handler) Store() Store { return h.store }

// Resolve returns the attachment reference for a record.
//
//   - no upload, no existing reference: NoAttachment
//   - no upload, existing reference: the existing reference
//   - upload: the cleaned file name, after the bytes are written
//
// A failed write returns the reference together with a *StorageWriteError
// so the caller decides whether to keep it.
func (h *Handler) Resolve(ctx context.Context, existing string, up *Upload) (string, error) {
	if up == nil {
		if existing == "" {
			return models.NoAttachment, nil
		}
		return existing, nil
	}

	name, err := CleanName(up.Name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, up.Name)
	}

	if err := h.store.Put(ctx, name, up.Body, up.ContentType); err != nil {
		slog.Error("attachment write failed", "name", name, "driver", h.store.Driver(), "error", err)
		return name, &StorageWriteError{Name: name, Err: err}
	}

	slog.Info("attachment stored", "name", name, "driver", h.store.Driver())
	return name, nil
}

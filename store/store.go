// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store persists records and the admin account, either in a SQL
// database (SQLite or PostgreSQL) or in process memory.
package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/request-desk/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAdminNotFound = errors.New("admin not found")
)

// RecordStore is the durable collection of records. Every call is scoped
// to a single record.
type RecordStore interface {
	// Create stores a new record and returns its fresh identifier
	Create(ctx context.Context, fields models.RecordFields, attachment string) (string, error)
	// ListAll returns every record, oldest first
	ListAll(ctx context.Context) ([]models.Record, error)
	GetByID(ctx context.Context, id string) (models.Record, error)
	// UpdateByID replaces all fields and the attachment reference
	UpdateByID(ctx context.Context, id string, fields models.RecordFields, attachment string) (models.Record, error)
	DeleteByID(ctx context.Context, id string) error
}

// AdminStore persists the administrative account
type AdminStore interface {
	UpsertAdmin(ctx context.Context, admin models.Admin) error
	FindAdmin(ctx context.Context, username string) (models.Admin, error)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Statements are limited to syntax shared by SQLite and PostgreSQL.
const schema = `
-- Submitted requests
CREATE TABLE IF NOT EXISTS request_record (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    dept TEXT NOT NULL,
    issue_date TEXT NOT NULL,
    query TEXT NOT NULL DEFAULT '',
    sms TEXT NOT NULL,
    attachment TEXT NOT NULL DEFAULT 'Empty',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_request_record_created_at ON request_record(created_at);

-- Administrative account
CREATE TABLE IF NOT EXISTS admin (
    username TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

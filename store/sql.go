// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/request-desk/db"
	"github.com/danielhkuo/request-desk/models"
)

// SQLStore implements RecordStore and AdminStore on database/sql.
// Queries are written with $n placeholders and rebound for SQLite.
type SQLStore struct {
	db      *sql.DB
	dialect string
}

func NewSQLStore(conn *sql.DB, dialect string) *SQLStore {
	return &SQLStore{db: conn, dialect: dialect}
}

// rebind rewrites $1..$n to ? for SQLite. Arguments must appear in order.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != db.TypeSQLite {
		return query
	}
	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			b.WriteByte('?')
			for i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
				i++
			}
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

const recordColumns = `id, name, email, phone, dept, issue_date, query, sms, attachment, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.Record, error) {
	var r models.Record
	err := row.Scan(
		&r.ID, &r.Name, &r.Email, &r.Phone, &r.Department, &r.Date,
		&r.Query, &r.SMS, &r.Attachment, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (s *SQLStore) Create(ctx context.Context, f models.RecordFields, attachment string) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO request_record (`+recordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`), id, f.Name, f.Email, f.Phone, f.Department, f.Date, f.Query, f.SMS, attachment, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert record: %w", err)
	}

	return id, nil
}

func (s *SQLStore) ListAll(ctx context.Context) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM request_record
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := []models.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}

func (s *SQLStore) GetByID(ctx context.Context, id string) (models.Record, error) {
	r, err := scanRecord(s.db.QueryRowContext(ctx, s.rebind(`
		SELECT `+recordColumns+`
		FROM request_record
		WHERE id = $1
	`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrNotFound
	}
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to query record: %w", err)
	}
	return r, nil
}

func (s *SQLStore) UpdateByID(ctx context.Context, id string, f models.RecordFields, attachment string) (models.Record, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(`
		UPDATE request_record
		SET name = $1, email = $2, phone = $3, dept = $4, issue_date = $5,
		    query = $6, sms = $7, attachment = $8, updated_at = $9
		WHERE id = $10
	`), f.Name, f.Email, f.Phone, f.Department, f.Date, f.Query, f.SMS, attachment, time.Now().UTC(), id)
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to update record: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return models.Record{}, err
	}

	return s.GetByID(ctx, id)
}

func (s *SQLStore) DeleteByID(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM request_record WHERE id = $1`), id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	if n > 1 {
		return fmt.Errorf("expected 1 affected row, got %d", n)
	}
	return nil
}

func (s *SQLStore) UpsertAdmin(ctx context.Context, a models.Admin) error {
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO admin (username, password_hash, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET password_hash = excluded.password_hash
	`), a.Username, a.PasswordHash, createdAt)
	if err != nil {
		return fmt.Errorf("failed to upsert admin: %w", err)
	}
	return nil
}

func (s *SQLStore) FindAdmin(ctx context.Context, username string) (models.Admin, error) {
	var a models.Admin
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT username, password_hash, created_at
		FROM admin
		WHERE username = $1
	`), username).Scan(&a.Username, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, ErrAdminNotFound
	}
	if err != nil {
		return models.Admin{}, fmt.Errorf("failed to query admin: %w", err)
	}
	return a, nil
}

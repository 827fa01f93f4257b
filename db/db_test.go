// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"testing"
)

func TestOpen_UnsupportedType(t *testing.T) {
	for _, typ := range []string{TypeMemory, "mysql", ""} {
		if _, err := Open(context.Background(), typ, "x"); err == nil {
			t.Errorf("Open(%q) should fail", typ)
		}
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn, err := Open(context.Background(), TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn); err != nil {
			t.Fatalf("CreateSchema() call %d error = %v", i+1, err)
		}
	}

	for _, table := range []string{"request_record", "admin"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestCreateSchema_AttachmentDefault(t *testing.T) {
	conn, err := Open(context.Background(), TypeSQLite, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if err := CreateSchema(conn); err != nil {
		t.Fatal(err)
	}

	_, err = conn.Exec(`INSERT INTO request_record (id, name, email, phone, dept, issue_date, sms, created_at, updated_at)
		VALUES ('r1', 'n', 'e@x.io', '555-123-4567', 'IT', '2025-01-01', 'yes', '2025-01-01 00:00:00', '2025-01-01 00:00:00')`)
	if err != nil {
		t.Fatal(err)
	}

	var attachment string
	if err := conn.QueryRow(`SELECT attachment FROM request_record WHERE id = 'r1'`).Scan(&attachment); err != nil {
		t.Fatal(err)
	}
	if attachment != "Empty" {
		t.Errorf("default attachment = %q, want Empty", attachment)
	}
}

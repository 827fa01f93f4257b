// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the SQL database and manages the schema.

# Drivers

	conn, err := db.Open(ctx, db.TypeSQLite, "requestdesk.db")
	conn, err := db.Open(ctx, db.TypePostgres, "postgres://...")

SQLite uses the pure Go modernc.org/sqlite driver and is limited to a
single open connection. PostgreSQL uses github.com/lib/pq.

TypeMemory selects the in-process store in package store and never opens
a SQL connection.

# Schema Creation

CreateSchema creates all tables using IF NOT EXISTS, making it safe to call
on every startup:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

# Tables

  - request_record: submitted requests (id, name, email, phone, dept, issue_date,
    query, sms, attachment, created_at, updated_at)
  - admin: the administrative account (username, password_hash, created_at)

The schema uses only syntax common to SQLite and PostgreSQL.
*/
package db

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the request desk server.

The request desk accepts public service requests (contact details, a
department, a date, free text and an optional photo) and gives a single
administrator a session-protected view to list, inspect, edit and delete
them.

# Starting the Server

With no configuration the server listens on :8086, stores records in
./requestdesk.db (SQLite) and attachments under ./public/uploads:

	go run .

Against PostgreSQL and S3:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... \
	UPLOAD_DRIVER=s3 S3_BUCKET=requests go run .

A .env file in the working directory is loaded first; real environment
variables win over it, and CLI flags win over both.

# First Run

	curl localhost:8086/setup

seeds the admin account from ADMIN_USERNAME / ADMIN_PASSWORD (default
admin / admin123). Calling it again resets the password.

# Architecture

  - handlers: HTTP request handlers (records, auth)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, metrics, JSON helpers
  - workflow: Submission and admin orchestration
  - validation: Field rules
  - attachment: Filesystem and S3 file storage
  - store: Record and admin persistence (SQL or memory)
  - auth: Password hashing, sessions, admin gate
  - models: Domain and response types
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

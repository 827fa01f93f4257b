// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielhkuo/request-desk/cliparse"
	"github.com/danielhkuo/request-desk/db"
	"github.com/danielhkuo/request-desk/models"
	"github.com/danielhkuo/request-desk/store"
)

// TestDBURL is an in-memory SQLite database, private to one connection
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore returns a SQLStore over a fresh test database
func SetupTestStore(t *testing.T) *store.SQLStore {
	t.Helper()
	conn := SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })
	return store.NewSQLStore(conn, db.TypeSQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	return cliparse.Config{
		Port:          8086,
		DatabaseURL:   TestDBURL,
		DatabaseType:  db.TypeSQLite,
		UploadDriver:  "fs",
		UploadDir:     t.TempDir(),
		MaxUploadMB:   1,
		AdminUsername: cliparse.DefaultAdminUsername,
		AdminPassword: cliparse.DefaultAdminPassword,
	}
}

// ValidFields returns a submission that passes validation
func ValidFields() models.RecordFields {
	return models.RecordFields{
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Phone:      "555-123-4567",
		Department: "Science",
		Date:       "2025-03-01",
		Query:      "Need the second volume",
		SMS:        "yes",
	}
}

// FormValues encodes fields the way the request form posts them
func FormValues(f models.RecordFields) url.Values {
	return url.Values{
		models.FieldName:       {f.Name},
		models.FieldEmail:      {f.Email},
		models.FieldPhone:      {f.Phone},
		models.FieldDepartment: {f.Department},
		models.FieldDate:       {f.Date},
		models.FieldQuery:      {f.Query},
		models.FieldSMS:        {f.SMS},
	}
}

// CreateTestRecord inserts a record directly and returns its ID
func CreateTestRecord(t *testing.T, s store.RecordStore, f models.RecordFields, attachment string) string {
	t.Helper()

	id, err := s.Create(context.Background(), f, attachment)
	if err != nil {
		t.Fatalf("Failed to create test record: %v", err)
	}
	return id
}

// MakeRequest creates an HTTP test request with an optional urlencoded form
func MakeRequest(method, path string, form url.Values, cookies ...*http.Cookie) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req
}

// MakeMultipartRequest creates a multipart form request carrying a file
// in the attachment field
func MakeMultipartRequest(t *testing.T, method, path string, form url.Values, fileName, content string, cookies ...*http.Cookie) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, vs := range form {
		for _, v := range vs {
			if err := mw.WriteField(k, v); err != nil {
				t.Fatalf("Failed to write field: %v", err)
			}
		}
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile(models.FieldAttachment, fileName)
		if err != nil {
			t.Fatalf("Failed to create file part: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertRedirect checks for a See Other redirect to location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Errorf("Expected redirect status %d, got %d. Body: %s", http.StatusSeeOther, w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to %s, got %q", location, got)
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// SessionCookie returns the named cookie set on the response, if any
func SessionCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/danielhkuo/request-desk/attachment"
	"github.com/danielhkuo/request-desk/auth"
	"github.com/danielhkuo/request-desk/cliparse"
	"github.com/danielhkuo/request-desk/store"
	"github.com/danielhkuo/request-desk/testutil"
	"github.com/danielhkuo/request-desk/workflow"
)

type testEnv struct {
	cfg      cliparse.Config
	store    *store.SQLStore
	files    *attachment.FileStore
	sessions *auth.SessionStore
	records  *RecordHandler
	auth     *AuthHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := testutil.GetTestConfig(t)
	st := testutil.SetupTestStore(t)

	files, err := attachment.NewFileStore(cfg.UploadDir)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}
	gate, err := auth.NewGate(st)
	if err != nil {
		t.Fatalf("Failed to create gate: %v", err)
	}
	sessions := auth.NewSessionStore(false, 0)
	svc := workflow.NewService(st, attachment.NewHandler(files), gate, workflow.Options{})

	return &testEnv{
		cfg:      cfg,
		store:    st,
		files:    files,
		sessions: sessions,
		records:  NewRecordHandler(svc, sessions, cfg),
		auth:     NewAuthHandler(gate, sessions, cfg),
	}
}

// login seeds the admin and returns an authenticated session cookie
func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	e.auth.Setup(w, testutil.MakeRequest("GET", "/setup", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	form := url.Values{"username": {"admin"}, "password": {"admin123"}}
	w = httptest.NewRecorder()
	e.auth.LoginProcess(w, testutil.MakeRequest("POST", "/login-process", form))
	testutil.AssertRedirect(t, w, "/admin-home")

	c := testutil.SessionCookie(w, auth.SessionCookieName)
	if c == nil {
		t.Fatal("Expected a session cookie after login")
	}
	return c
}

func withID(req *http.Request, key, value string) *http.Request {
	req.SetPathValue(key, value)
	return req
}

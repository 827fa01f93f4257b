// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the request desk.

# Handler Types

  - RecordHandler: public submission form, admin listing, detail, edit,
    delete and attachment download
  - AuthHandler: admin seeding, login and logout

Handlers wrap a workflow.Service and the session store:

	records := handlers.NewRecordHandler(svc, sessions, cfg)
	authn := handlers.NewAuthHandler(svc.Gate(), sessions, cfg)

# Record Lifecycle

	POST /book-form    → SubmitForm (201 thanks, or 422 field errors)
	GET  /admin-home   → AdminHome
	GET  /details/{id} → Details
	GET  /edit/{id}    → EditForm
	POST /edit/{id}    → ApplyEdit (full replace, attachment kept without a new photo)
	GET  /delete/{id}  → Delete

Submissions are accepted as application/x-www-form-urlencoded or
multipart/form-data. The optional file travels in the "photo" field and
the whole body is capped at MAX_UPLOAD_MB.

Every admin route loads the session from the requestdesk_session cookie.
Callers without an authenticated session are redirected to /login with
303 See Other and nothing is read or written.

# Errors

	validation.Errors              → 422 {"errors":[...]}
	auth.ErrUnauthorized           → 303 /login
	store.ErrNotFound              → 404
	attachment.ErrInvalidName      → 400
	*attachment.StorageWriteError  → 500
*/
package handlers

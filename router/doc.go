// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the request desk.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, sessions, cfg)

# Endpoints

Operational:

	GET /health  - Liveness
	GET /metrics - Prometheus exposition

Public:

	GET  /               - Submission form description
	POST /book-form      - Submit a request (optional "photo" file)
	GET  /uploads/{name} - Stored attachment

Admin session:

	GET  /setup         - Seed the admin account
	GET  /login         - Login form description
	POST /login-process - Authenticate, redirect to /admin-home
	GET  /logout        - Clear the session, redirect to /login

Record administration (redirects to /login without a session):

	GET  /admin-home   - All records
	GET  /details/{id} - One record
	GET  /edit/{id}    - One record for editing
	POST /edit/{id}    - Replace a record
	GET  /delete/{id}  - Delete a record

Every application route is wrapped with middleware.WithLogging.
*/
package router

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /admin-home", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). The same wrapper feeds the Prometheus collectors
requestdesk_http_requests_total and requestdesk_http_request_duration_seconds,
labelled with the matched ServeMux pattern rather than the raw path.

# Response Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Record not found")
	middleware.TextResponse(w, http.StatusOK, "Done")
	middleware.SeeOther(w, r, "/login")

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware

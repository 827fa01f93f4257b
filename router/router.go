// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/request-desk/auth"
	"github.com/danielhkuo/request-desk/cliparse"
	"github.com/danielhkuo/request-desk/handlers"
	"github.com/danielhkuo/request-desk/middleware"
	"github.com/danielhkuo/request-desk/workflow"
)

func NewRouter(svc *workflow.Service, sessions *auth.SessionStore, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	recordHandler := handlers.NewRecordHandler(svc, sessions, cfg)
	authHandler := handlers.NewAuthHandler(svc.Gate(), sessions, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Public submission
	mux.HandleFunc("GET /{$}", middleware.WithLogging(recordHandler.Home))
	mux.HandleFunc("POST /book-form", middleware.WithLogging(recordHandler.SubmitForm))
	mux.HandleFunc("GET /uploads/{name}", middleware.WithLogging(recordHandler.Attachment))

	// Admin session
	mux.HandleFunc("GET /setup", middleware.WithLogging(authHandler.Setup))
	mux.HandleFunc("GET /login", middleware.WithLogging(authHandler.LoginForm))
	mux.HandleFunc("POST /login-process", middleware.WithLogging(authHandler.LoginProcess))
	mux.HandleFunc("GET /logout", middleware.WithLogging(authHandler.Logout))

	// Record administration (session required)
	mux.HandleFunc("GET /admin-home", middleware.WithLogging(recordHandler.AdminHome))
	mux.HandleFunc("GET /details/{id}", middleware.WithLogging(recordHandler.Details))
	mux.HandleFunc("GET /edit/{id}", middleware.WithLogging(recordHandler.EditForm))
	mux.HandleFunc("POST /edit/{id}", middleware.WithLogging(recordHandler.ApplyEdit))
	mux.HandleFunc("GET /delete/{id}", middleware.WithLogging(recordHandler.Delete))

	return mux
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/request-desk/auth"
	"github.com/danielhkuo/request-desk/cliparse"
	"github.com/danielhkuo/request-desk/middleware"
	"github.com/danielhkuo/request-desk/models"
)

type AuthHandler struct {
	gate     *auth.Gate
	sessions *auth.SessionStore
	cfg      cliparse.Config
}

func NewAuthHandler(gate *auth.Gate, sessions *auth.SessionStore, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{gate: gate, sessions: sessions, cfg: cfg}
}

// Setup handles GET /setup
func (h *AuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Setup(r.Context(), h.cfg.AdminUsername, h.cfg.AdminPassword); err != nil {
		slog.Error("failed to seed admin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to seed admin")
		return
	}
	slog.Info("admin seeded", "username", h.cfg.AdminUsername)
	middleware.TextResponse(w, http.StatusOK, "Done")
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.FormResponse{
		Form:   "login",
		Fields: []string{"username", "password"},
	})
}

// LoginProcess handles POST /login-process
func (h *AuthHandler) LoginProcess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
		return
	}

	sess := h.sessions.Load(r)
	err := h.gate.Login(r.Context(), sess, r.PostFormValue("username"), r.PostFormValue("password"))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.Warn("login failed", "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login details not correct")
		return
	}
	if err != nil {
		slog.Error("login error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if err := h.sessions.Renew(sess); err != nil {
		slog.Error("failed to renew session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if err := h.sessions.Save(w, sess); err != nil {
		slog.Error("failed to save session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}

	slog.Info("admin logged in", "username", sess.Username)
	middleware.SeeOther(w, r, "/admin-home")
}

// Logout handles GET /logout. Unauthenticated callers are just redirected.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if sess.Authenticated {
		h.gate.Logout(sess)
		if err := h.sessions.Save(w, sess); err != nil {
			slog.Error("failed to save session", "error", err)
		}
		slog.Info("admin logged out")
	}
	middleware.SeeOther(w, r, "/login")
}

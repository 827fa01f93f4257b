// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/request-desk/models"
	"github.com/danielhkuo/request-desk/store"
)

// Gate checks admin credentials and guards administrative operations.
type Gate struct {
	admins store.AdminStore
	// compared against when the username is unknown so both paths cost a bcrypt run
	dummyHash []byte
}

func NewGate(admins store.AdminStore) (*Gate, error) {
	secret, err := GenerateID(16)
	if err != nil {
		return nil, err
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare gate: %w", err)
	}
	return &Gate{admins: admins, dummyHash: dummy}, nil
}

// Setup seeds (or re-seeds) the admin account with a hashed password
func (g *Gate) Setup(ctx context.Context, username, password string) error {
	if username == "" {
		return errors.New("admin username must not be empty")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := g.admins.UpsertAdmin(ctx, models.Admin{Username: username, PasswordHash: hash}); err != nil {
		return err
	}
	slog.Info("admin account seeded", "username", username)
	return nil
}

// Login authenticates sess when username and password match the stored
// admin. On failure sess is left unchanged.
func (g *Gate) Login(ctx context.Context, sess *Session, username, password string) error {
	admin, err := g.admins.FindAdmin(ctx, username)
	if errors.Is(err, store.ErrAdminNotFound) {
		_ = bcrypt.CompareHashAndPassword(g.dummyHash, []byte(password))
		loginAttempts.WithLabelValues("rejected").Inc()
		return ErrInvalidCredentials
	}
	if err != nil {
		loginAttempts.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to load admin: %w", err)
	}

	if err := VerifyPassword(admin.PasswordHash, password); err != nil {
		loginAttempts.WithLabelValues("rejected").Inc()
		return err
	}

	sess.Authenticated = true
	sess.Username = admin.Username
	loginAttempts.WithLabelValues("ok").Inc()
	return nil
}

// Logout resets sess to unauthenticated
func (g *Gate) Logout(sess *Session) {
	sess.Authenticated = false
	sess.Username = ""
}

// RequireAdmin returns ErrUnauthorized unless sess is authenticated
func (g *Gate) RequireAdmin(sess *Session) error {
	if sess == nil || !sess.Authenticated {
		return ErrUnauthorized
	}
	return nil
}

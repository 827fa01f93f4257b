// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the admin session gate.

# Passwords

The admin password is stored only as a bcrypt hash:

	hash, err := auth.HashPassword("admin123")
	err = auth.VerifyPassword(hash, attempt) // ErrInvalidCredentials on mismatch

bcrypt embeds a per-hash salt and compares in constant time.

# Gate

	gate, err := auth.NewGate(adminStore)
	err = gate.Setup(ctx, "admin", "admin123")      // upsert the account
	err = gate.Login(ctx, sess, username, password) // ErrInvalidCredentials
	gate.Logout(sess)
	err = gate.RequireAdmin(sess)                   // ErrUnauthorized

Usernames compare case-sensitively. An unknown username still costs one
bcrypt comparison so timing does not reveal which field was wrong.

# Sessions

SessionStore keeps sessions in process memory, keyed by a random 256-bit
token in the requestdesk_session cookie (HttpOnly, SameSite=Lax, optional
Secure):

	sess := sessions.Load(r)
	if err := gate.Login(ctx, sess, u, p); err == nil {
		sessions.Renew(sess) // fresh token after authentication
		sessions.Save(w, sess)
	}

Idle sessions expire after DefaultSessionTTL. SweepEvery removes expired
entries in the background.

# ID Generation

Random hex IDs:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "requestdesk_session"

// DefaultSessionTTL is how long an idle session is kept
const DefaultSessionTTL = 24 * time.Hour

// Session is one client's authentication state
type Session struct {
	ID            string
	Authenticated bool
	Username      string
}

type sessionEntry struct {
	session  Session
	lastSeen time.Time
}

// SessionStore keeps sessions in memory, keyed by the cookie token.
// Sessions live for one process.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	secure   bool
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(secure bool, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		secure:   secure,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Load returns the session named by the request cookie. Unknown or expired
// tokens yield a fresh unauthenticated session that is not yet stored.
func (s *SessionStore) Load(r *http.Request) *Session {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return &Session{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[c.Value]
	if !ok {
		return &Session{}
	}
	if s.now().Sub(e.lastSeen) > s.ttl {
		delete(s.sessions, c.Value)
		return &Session{}
	}
	e.lastSeen = s.now()
	sess := e.session
	return &sess
}

// Save stores sess and writes its cookie. A session without an ID gets one.
func (s *SessionStore) Save(w http.ResponseWriter, sess *Session) error {
	if sess.ID == "" {
		id, err := GenerateSessionToken()
		if err != nil {
			return err
		}
		sess.ID = id
	}

	s.mu.Lock()
	s.sessions[sess.ID] = &sessionEntry{session: *sess, lastSeen: s.now()}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Renew moves sess to a new token, dropping the old one. Called after
// login so a token issued before authentication is never promoted.
func (s *SessionStore) Renew(sess *Session) error {
	id, err := GenerateSessionToken()
	if err != nil {
		return err
	}
	s.mu.Lock()
	if sess.ID != "" {
		delete(s.sessions, sess.ID)
	}
	s.mu.Unlock()
	sess.ID = id
	return nil
}

// Sweep drops expired sessions and returns how many were removed
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	now := s.now()
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// SweepEvery runs Sweep on an interval until ctx is done
func (s *SessionStore) SweepEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Info("expired sessions removed", "count", n)
			}
		}
	}
}

// Len returns the number of stored sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

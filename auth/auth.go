// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid session")

const (
	// SessionCookie carries the signed session for identified users.
	SessionCookie = "session"
	// StateCookie carries the OAuth CSRF state during the handshake.
	StateCookie = "oauth_state"

	// SessionTTL bounds how long a login lasts before re-auth.
	SessionTTL = 7 * 24 * time.Hour
)

// Session is the identity carried in the session cookie. The Discord
// access token rides along for the guild-join call on /access.
type Session struct {
	UserID      string
	Name        string
	Avatar      string
	AccessToken string
}

type sessionClaims struct {
	Name        string `json:"name"`
	Avatar      string `json:"avatar,omitempty"`
	AccessToken string `json:"tok,omitempty"`
	jwt.RegisteredClaims
}

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// EncodeSession signs a session cookie value.
func EncodeSession(s Session, secret string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Name:        s.Name,
		Avatar:      s.Avatar,
		AccessToken: s.AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	})
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// DecodeSession verifies a session cookie value.
func DecodeSession(value, secret string) (Session, error) {
	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(value, &parsed, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return Session{}, ErrInvalidSession
	}
	if parsed.Subject == "" {
		return Session{}, ErrInvalidSession
	}
	return Session{
		UserID:      parsed.Subject,
		Name:        parsed.Name,
		Avatar:      parsed.Avatar,
		AccessToken: parsed.AccessToken,
	}, nil
}

// FromRequest reads and verifies the session cookie, if any.
func FromRequest(r *http.Request, secret string) (Session, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return Session{}, false
	}
	s, err := DecodeSession(c.Value, secret)
	if err != nil {
		return Session{}, false
	}
	return s, true
}

// SetSessionCookie attaches a signed session to the response.
func SetSessionCookie(w http.ResponseWriter, s Session, secret string) error {
	value, err := EncodeSession(s, secret)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearSessionCookie logs the caller out.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	require.NoError(t, err)
	assert.Len(t, id, 32)

	other, err := GenerateID(16)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestSessionRoundTrip(t *testing.T) {
	s := Session{
		UserID:      "123456789",
		Name:        "grace",
		Avatar:      "abcdef",
		AccessToken: "oauth-access-token",
	}

	value, err := EncodeSession(s, "session-secret")
	require.NoError(t, err)

	got, err := DecodeSession(value, "session-secret")
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestDecodeSessionWrongSecret(t *testing.T) {
	value, err := EncodeSession(Session{UserID: "u"}, "secret-a")
	require.NoError(t, err)

	_, err = DecodeSession(value, "secret-b")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestDecodeSessionGarbage(t *testing.T) {
	for _, value := range []string{"", "garbage", "a.b.c"} {
		_, err := DecodeSession(value, "secret")
		assert.ErrorIs(t, err, ErrInvalidSession, "value %q", value)
	}
}

func TestFromRequest(t *testing.T) {
	value, err := EncodeSession(Session{UserID: "42", Name: "bob"}, "secret")
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: value})

	s, ok := FromRequest(r, "secret")
	require.True(t, ok)
	assert.Equal(t, "42", s.UserID)
	assert.Equal(t, "bob", s.Name)

	// No cookie at all.
	_, ok = FromRequest(httptest.NewRequest("GET", "/", nil), "secret")
	assert.False(t, ok)

	// Tampered cookie.
	r = httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: value + "x"})
	_, ok = FromRequest(r, "secret")
	assert.False(t, ok)
}

func TestSetAndClearSessionCookie(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, SetSessionCookie(w, Session{UserID: "7"}, "secret"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Positive(t, cookies[0].MaxAge)

	w = httptest.NewRecorder()
	ClearSessionCookie(w)
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

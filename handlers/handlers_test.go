// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rocketpuzzles/server/auth"
	"github.com/rocketpuzzles/server/cache"
	"github.com/rocketpuzzles/server/cliparse"
	"github.com/rocketpuzzles/server/progress"
	"github.com/rocketpuzzles/server/testutil"
	"github.com/rocketpuzzles/server/token"
)

// fixture wires a loaded cache and tracker over the fake store, the way
// main wires the real ones.
type fixture struct {
	store   *testutil.FakeStore
	cache   *cache.Cache
	tracker *progress.Tracker
	codec   *token.Codec
	cfg     cliparse.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, testutil.NewStore())
}

func newFixtureWith(t *testing.T, st *testutil.FakeStore) *fixture {
	t.Helper()
	cfg := testutil.GetTestConfig()
	c := cache.New(st)
	require.NoError(t, c.Load(context.Background()))
	codec := token.New(cfg.TokenSecret)
	return &fixture{
		store:   st,
		cache:   c,
		tracker: progress.New(c, st, codec),
		codec:   codec,
		cfg:     cfg,
	}
}

// urlKey returns the obfuscated key for an internal puzzle id.
func (f *fixture) urlKey(t *testing.T, id int) string {
	t.Helper()
	key, err := f.cache.Obfuscate(id)
	require.NoError(t, err)
	return key
}

// sessionCookie mints a valid session cookie for the given user.
func (f *fixture) sessionCookie(t *testing.T, userID, name string) *http.Cookie {
	t.Helper()
	value, err := auth.EncodeSession(auth.Session{UserID: userID, Name: name, AccessToken: "user-oauth-token"}, f.cfg.SessionSecret)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookie, Value: value}
}

// progressCookie mints a signed anonymous-progress cookie.
func (f *fixture) progressCookie(t *testing.T, puzzle, part int) *http.Cookie {
	t.Helper()
	value, err := f.codec.Encode(puzzle, part)
	require.NoError(t, err)
	return &http.Cookie{Name: "progress", Value: value}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// responseCookie finds a Set-Cookie entry by name, or nil.
func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

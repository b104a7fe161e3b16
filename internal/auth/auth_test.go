// Unit tests for the OAuth2 token manager.
package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentlandfirth/catchlog/internal/store"
	"github.com/pentlandfirth/catchlog/pkg/types"
)

// fakeCreds is an in-memory CredentialStore.
type fakeCreds struct {
	values map[string]string
}

func newFakeCreds() *fakeCreds {
	return &fakeCreds{values: map[string]string{}}
}

func (f *fakeCreds) AuthGet(key string) (string, error) { return f.values[key], nil }
func (f *fakeCreds) AuthSet(key, value string) error {
	f.values[key] = value
	return nil
}
func (f *fakeCreds) AuthClear() error {
	f.values = map[string]string{}
	return nil
}

// fakeAgent resolves immediately with a fixed code or error.
type fakeAgent struct {
	code string
	err  error
}

func (f *fakeAgent) Authorize(ctx context.Context, authURL, redirectURI string) (string, error) {
	return f.code, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(tokenURL string) types.Config {
	return types.Config{
		AuthURL:      "https://id.example.com/authorize",
		TokenURL:     tokenURL,
		DataURL:      "https://api.example.com/data",
		ClientID:     "catchlog",
		ClientSecret: "shh",
		RedirectURI:  "http://127.0.0.1:8910/callback",
	}
}

func writeTokenResponse(w http.ResponseWriter, accessToken string, expiresIn int64) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"access_token":  accessToken,
		"expires_in":    expiresIn,
		"token_type":    "Bearer",
		"refresh_token": "refresh-" + accessToken,
	})
}

func TestNewStartsLoggedInWithPersistedToken(t *testing.T) {
	creds := newFakeCreds()
	m := New(testConfig("http://unused"), creds, &fakeAgent{}, testLogger())
	assert.False(t, m.LoggedIn())

	creds.values[store.KeyAccessToken] = "tok"
	m = New(testConfig("http://unused"), creds, &fakeAgent{}, testLogger())
	assert.True(t, m.LoggedIn())
}

func TestAuthenticateExchangesCodeWithJSONBody(t *testing.T) {
	var gotBody map[string]string
	var gotContentType string
	var gotQuery int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotQuery = len(r.URL.Query())
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeTokenResponse(w, "tok-1", 3600)
	}))
	defer srv.Close()

	creds := newFakeCreds()
	m := New(testConfig(srv.URL), creds, &fakeAgent{code: "the-code"}, testLogger())
	m.now = func() time.Time { return time.Unix(1_000_000, 0) }

	require.NoError(t, m.Authenticate(context.Background()))

	// The code grant goes as a JSON body, not query parameters.
	assert.Equal(t, "application/json", gotContentType)
	assert.Zero(t, gotQuery)
	assert.Equal(t, "authorization_code", gotBody["grant_type"])
	assert.Equal(t, "the-code", gotBody["code"])
	assert.Equal(t, "catchlog", gotBody["client_id"])

	assert.True(t, m.LoggedIn())
	assert.Equal(t, "tok-1", creds.values[store.KeyAccessToken])
	assert.Equal(t, "refresh-tok-1", creds.values[store.KeyRefreshToken])
	assert.Equal(t, strconv.FormatInt(1_000_000+3600, 10), creds.values[store.KeyAccessTokenExpiry])
}

func TestAuthenticateCancelled(t *testing.T) {
	m := New(testConfig("http://unused"), newFakeCreds(), &fakeAgent{err: ErrCancelled}, testLogger())
	require.ErrorIs(t, m.Authenticate(context.Background()), ErrCancelled)
	assert.False(t, m.LoggedIn())
}

func TestAuthenticateWithoutCode(t *testing.T) {
	m := New(testConfig("http://unused"), newFakeCreds(), &fakeAgent{code: ""}, testLogger())
	require.ErrorIs(t, m.Authenticate(context.Background()), ErrNoAuthCode)
}

func TestRefreshTokenSendsQueryParams(t *testing.T) {
	var gotQuery map[string][]string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotBody, _ = io.ReadAll(r.Body)
		writeTokenResponse(w, "tok-2", 3600)
	}))
	defer srv.Close()

	creds := newFakeCreds()
	creds.values[store.KeyAccessToken] = "tok-old"
	creds.values[store.KeyRefreshToken] = "refresh-old"

	m := New(testConfig(srv.URL), creds, &fakeAgent{}, testLogger())
	require.NoError(t, m.RefreshToken(context.Background()))

	// The refresh grant goes as URL query parameters with an empty body.
	assert.Empty(t, gotBody)
	assert.Equal(t, "refresh_token", gotQuery["grant_type"][0])
	assert.Equal(t, "refresh-old", gotQuery["refresh_token"][0])
	assert.Equal(t, "catchlog", gotQuery["client_id"][0])

	assert.Equal(t, "tok-2", creds.values[store.KeyAccessToken])
	assert.True(t, m.LoggedIn())
}

func TestRefreshTokenIfNecessary(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	tests := []struct {
		name        string
		expiry      string
		wantRefresh bool
	}{
		{name: "fresh token", expiry: strconv.FormatInt(now.Unix()+3600, 10), wantRefresh: false},
		{name: "expiring within margin", expiry: strconv.FormatInt(now.Unix()+30, 10), wantRefresh: true},
		{name: "exactly at margin", expiry: strconv.FormatInt(now.Unix()+60, 10), wantRefresh: false},
		{name: "already expired", expiry: strconv.FormatInt(now.Unix()-10, 10), wantRefresh: true},
		{name: "unparseable expiry", expiry: "not-a-number", wantRefresh: true},
		{name: "no expiry stored", expiry: "", wantRefresh: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests++
				writeTokenResponse(w, "tok-new", 3600)
			}))
			defer srv.Close()

			creds := newFakeCreds()
			creds.values[store.KeyAccessToken] = "tok-old"
			creds.values[store.KeyRefreshToken] = "refresh-old"
			if tt.expiry != "" {
				creds.values[store.KeyAccessTokenExpiry] = tt.expiry
			}

			m := New(testConfig(srv.URL), creds, &fakeAgent{}, testLogger())
			m.now = func() time.Time { return now }

			require.NoError(t, m.RefreshTokenIfNecessary(context.Background()))
			if tt.wantRefresh {
				assert.Equal(t, 1, requests)
			} else {
				assert.Zero(t, requests)
			}
		})
	}
}

func TestFailedRefreshKeepsTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	creds := newFakeCreds()
	creds.values[store.KeyAccessToken] = "tok-old"
	creds.values[store.KeyRefreshToken] = "refresh-old"

	m := New(testConfig(srv.URL), creds, &fakeAgent{}, testLogger())
	require.True(t, m.LoggedIn())

	err := m.RefreshToken(context.Background())
	require.ErrorIs(t, err, ErrTokenRequest)

	// The session drops but persisted tokens stay for a later retry.
	assert.False(t, m.LoggedIn())
	assert.Equal(t, "tok-old", creds.values[store.KeyAccessToken])
	assert.Equal(t, "refresh-old", creds.values[store.KeyRefreshToken])
}

func TestAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	creds := newFakeCreds()
	creds.values[store.KeyAccessToken] = "tok-stale"
	creds.values[store.KeyRefreshToken] = "refresh-old"

	m := New(testConfig(srv.URL), creds, &fakeAgent{}, testLogger())

	// A failed refresh is logged, and the stale token is still offered.
	header, err := m.AuthHeader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-stale", header)
}

func TestClearAuthentication(t *testing.T) {
	creds := newFakeCreds()
	creds.values[store.KeyAccessToken] = "tok"
	creds.values[store.KeyRefreshToken] = "refresh"

	m := New(testConfig("http://unused"), creds, &fakeAgent{}, testLogger())
	require.True(t, m.LoggedIn())

	require.NoError(t, m.ClearAuthentication())
	assert.False(t, m.LoggedIn())
	assert.Empty(t, creds.values)
}

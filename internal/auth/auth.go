// Package auth manages the OAuth2 token lifecycle that gates sync: the
// authorization-code browser flow, transparent pre-expiry refresh, and
// credential persistence in the settings store under the fixed auth keys.
//
// The manager is a small state machine: logged out, logged in, or mid
// refresh. A failed refresh drops the in-memory logged-in flag but keeps
// the persisted tokens, so a later network recovery can retry without
// sending the user through the browser again.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/pentlandfirth/catchlog/internal/store"
	"github.com/pentlandfirth/catchlog/pkg/types"
)

// Errors reported by the manager.
var (
	ErrCancelled    = errors.New("sign in process was cancelled")
	ErrTokenRequest = errors.New("token request failed")
	ErrNoAuthCode   = errors.New("authorization code missing from redirect")
)

// Tokens are refreshed when they expire within this margin.
const refreshMargin = 60 * time.Second

// OAuth2 grant types used by the manager.
const (
	grantAuthorize = "authorization_code"
	grantRefresh   = "refresh_token"
)

// CredentialStore persists tokens between runs. *store.Store implements
// it; the store enforces the credential key allow-list.
type CredentialStore interface {
	AuthGet(key string) (string, error)
	AuthSet(key, value string) error
	AuthClear() error
}

// Agent presents the authorization endpoint to the user and resolves with
// the code from the redirect, or ErrCancelled if the user gave up.
type Agent interface {
	Authorize(ctx context.Context, authURL, redirectURI string) (string, error)
}

// tokenResponse is the token endpoint's reply for both grant types.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope,omitempty"`
	RefreshToken string `json:"refresh_token"`
}

// Manager owns OAuth2 token state.
type Manager struct {
	cfg    types.Config
	creds  CredentialStore
	agent  Agent
	client *http.Client
	log    *slog.Logger
	now    func() time.Time

	mu        sync.Mutex // guards loggedIn
	loggedIn  bool
	refreshMu sync.Mutex // serializes token requests
}

// New creates a Manager. If an access token is already persisted the
// manager starts logged in; callers typically follow with
// RefreshTokenIfNecessary on startup.
func New(cfg types.Config, creds CredentialStore, agent Agent, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		cfg:    cfg,
		creds:  creds,
		agent:  agent,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    logger,
		now:    time.Now,
	}
	if token, err := creds.AuthGet(store.KeyAccessToken); err == nil && token != "" {
		m.loggedIn = true
	}
	return m
}

// LoggedIn reports whether the manager currently holds a usable session.
func (m *Manager) LoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loggedIn
}

func (m *Manager) setLoggedIn(v bool) {
	m.mu.Lock()
	m.loggedIn = v
	m.mu.Unlock()
}

// Authenticate runs the authorization-code flow: the agent opens the
// authorization endpoint, the user signs in, and the code from the
// redirect is exchanged for tokens. A cancelled agent leaves the manager
// logged out with no other state change.
func (m *Manager) Authenticate(ctx context.Context) error {
	if err := m.cfg.ValidateAuth(); err != nil {
		return err
	}

	authURL := fmt.Sprintf("%s?response_type=code&client_id=%s&redirect_uri=%s",
		m.cfg.AuthURL, url.QueryEscape(m.cfg.ClientID), url.QueryEscape(m.cfg.RedirectURI))

	code, err := m.agent.Authorize(ctx, authURL, m.cfg.RedirectURI)
	if err != nil {
		return err
	}
	if code == "" {
		return ErrNoAuthCode
	}
	return m.authorize(ctx, grantAuthorize, code)
}

// RefreshTokenIfNecessary issues a refresh-token grant when the stored
// expiry is within the refresh margin of now. With a fresh token it does
// nothing.
func (m *Manager) RefreshTokenIfNecessary(ctx context.Context) error {
	expiryStr, err := m.creds.AuthGet(store.KeyAccessTokenExpiry)
	if err != nil {
		return err
	}
	expiry, err := strconv.ParseFloat(expiryStr, 64)
	if err != nil {
		// No parseable expiry stored; treat the token as expired.
		expiry = 0
	}
	if time.Duration(expiry-float64(m.now().Unix()))*time.Second >= refreshMargin {
		return nil
	}
	return m.RefreshToken(ctx)
}

// RefreshToken issues a refresh-token grant unconditionally.
func (m *Manager) RefreshToken(ctx context.Context) error {
	return m.authorize(ctx, grantRefresh, "")
}

// AuthHeader refreshes the token if necessary and returns a bearer-scheme
// authorization header value. A failed refresh is logged; the stale token
// is still returned and the server's rejection surfaces as a sync failure.
func (m *Manager) AuthHeader(ctx context.Context) (string, error) {
	if err := m.RefreshTokenIfNecessary(ctx); err != nil {
		m.log.Warn("token refresh failed", "error", err)
	}
	token, err := m.creds.AuthGet(store.KeyAccessToken)
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}

// ClearAuthentication is an explicit logout: all persisted credentials are
// removed and the manager transitions to logged out.
func (m *Manager) ClearAuthentication() error {
	m.setLoggedIn(false)
	return m.creds.AuthClear()
}

// authorize requests a token and persists the returned details. The code
// grant sends a JSON body; the refresh grant sends the same fields as URL
// query parameters with an empty body, which is what the server expects.
// On failure the logged-in flag is cleared but persisted tokens are kept
// for a later retry.
func (m *Manager) authorize(ctx context.Context, grantType, authCode string) error {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	req, err := m.tokenRequest(ctx, grantType, authCode)
	if err != nil {
		return err
	}

	resp, err := m.client.Do(req)
	if err != nil {
		m.setLoggedIn(false)
		m.log.Warn("token request error", "grant_type", grantType, "error", err)
		return fmt.Errorf("%w: %v", ErrTokenRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		m.setLoggedIn(false)
		m.log.Warn("token request rejected", "grant_type", grantType, "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrTokenRequest, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		m.setLoggedIn(false)
		m.log.Warn("token response unreadable", "grant_type", grantType, "error", err)
		return fmt.Errorf("%w: %v", ErrTokenRequest, err)
	}

	if err := m.creds.AuthSet(store.KeyAccessToken, tr.AccessToken); err != nil {
		return err
	}
	expiry := strconv.FormatInt(m.now().Unix()+tr.ExpiresIn, 10)
	if err := m.creds.AuthSet(store.KeyAccessTokenExpiry, expiry); err != nil {
		return err
	}
	if err := m.creds.AuthSet(store.KeyRefreshToken, tr.RefreshToken); err != nil {
		return err
	}

	m.setLoggedIn(true)
	return nil
}

// tokenRequest builds the token endpoint request for a grant type,
// preserving the server's body-vs-query asymmetry.
func (m *Manager) tokenRequest(ctx context.Context, grantType, authCode string) (*http.Request, error) {
	if grantType == grantAuthorize && authCode == "" {
		return nil, ErrNoAuthCode
	}

	fields := url.Values{}
	fields.Set("client_id", m.cfg.ClientID)
	fields.Set("client_secret", m.cfg.ClientSecret)
	fields.Set("redirect_uri", m.cfg.RedirectURI)
	fields.Set("grant_type", grantType)
	if authCode != "" {
		fields.Set("code", authCode)
	}
	if grantType == grantRefresh {
		refreshToken, err := m.creds.AuthGet(store.KeyRefreshToken)
		if err != nil {
			return nil, err
		}
		fields.Set("refresh_token", refreshToken)
	}

	var req *http.Request
	var err error
	if grantType == grantRefresh {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost,
			m.cfg.TokenURL+"?"+fields.Encode(), nil)
	} else {
		body := map[string]string{}
		for key := range fields {
			body[key] = fields.Get(key)
		}
		var encoded []byte
		encoded, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost,
			m.cfg.TokenURL, bytes.NewReader(encoded))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-cache")
	return req, nil
}

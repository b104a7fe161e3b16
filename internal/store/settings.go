// Key-value settings storage. One table holds three namespaces: user
// settings (prefix "setting:"), auth credentials (prefix "auth:"), and a
// handful of internal bookkeeping keys. Keys outside the fixed allow-lists
// are rejected at this boundary as a programming error.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/pentlandfirth/catchlog/pkg/types"
)

// User settings keys.
const (
	KeyFisheriesOffice  = "fisheries_office"
	KeyPLN              = "pln"
	KeyVesselName       = "vessel_name"
	KeyOwnerMaster      = "owner_master"
	KeyAddress          = "address"
	KeyPortOfDeparture  = "port_of_departure"
	KeyPortOfLanding    = "port_of_landing"
	KeyTotalPotsFishing = "total_pots_fishing"
)

// Auth credential keys, managed through the auth manager only.
const (
	KeyAccessToken       = "access_token"
	KeyAccessTokenExpiry = "access_token_expiry"
	KeyRefreshToken      = "refresh_token"
)

// Internal bookkeeping keys.
const (
	keyConsentGiven     = "consentGiven"
	keyConsentDetails   = "consentDetails"
	keyConsentSubmitted = "consentSubmitted"
	keyCurrentForm      = "currentF1Form"
)

const (
	settingPrefix = "setting:"
	authPrefix    = "auth:"
)

var allowedSettingKeys = map[string]bool{
	KeyFisheriesOffice:  true,
	KeyPLN:              true,
	KeyVesselName:       true,
	KeyOwnerMaster:      true,
	KeyAddress:          true,
	KeyPortOfDeparture:  true,
	KeyPortOfLanding:    true,
	KeyTotalPotsFishing: true,
}

var allowedAuthKeys = map[string]bool{
	KeyAccessToken:       true,
	KeyAccessTokenExpiry: true,
	KeyRefreshToken:      true,
}

// SettingKeys returns the user settings keys handled by the store.
func SettingKeys() []string {
	return []string{
		KeyFisheriesOffice,
		KeyPLN,
		KeyVesselName,
		KeyOwnerMaster,
		KeyAddress,
		KeyPortOfDeparture,
		KeyPortOfLanding,
		KeyTotalPotsFishing,
	}
}

// Setting returns the value for a user settings key, or an empty string if
// it has never been set.
func (s *Store) Setting(key string) (string, error) {
	if !allowedSettingKeys[key] {
		return "", fmt.Errorf("%w: %q", types.ErrSettingsKey, key)
	}
	return s.kvGet(settingPrefix + key)
}

// SetSetting stores the value under a user settings key.
func (s *Store) SetSetting(key, value string) error {
	if !allowedSettingKeys[key] {
		return fmt.Errorf("%w: %q", types.ErrSettingsKey, key)
	}
	return s.kvSet(settingPrefix+key, value)
}

// AuthGet returns a persisted credential. Only the fixed credential keys
// are accepted.
func (s *Store) AuthGet(key string) (string, error) {
	if !allowedAuthKeys[key] {
		return "", fmt.Errorf("%w: %q", types.ErrSettingsKey, key)
	}
	return s.kvGet(authPrefix + key)
}

// AuthSet persists a credential. Only the fixed credential keys are
// accepted.
func (s *Store) AuthSet(key, value string) error {
	if !allowedAuthKeys[key] {
		return fmt.Errorf("%w: %q", types.ErrSettingsKey, key)
	}
	return s.kvSet(authPrefix+key, value)
}

// AuthClear removes every persisted credential.
func (s *Store) AuthClear() error {
	for key := range allowedAuthKeys {
		if err := s.kvDelete(authPrefix + key); err != nil {
			return err
		}
	}
	return nil
}

// RecordConsent stores the serialized consent record and flags consent as
// given.
func (s *Store) RecordConsent(serializedConsent string) error {
	if err := s.kvSet(keyConsentGiven, strconv.FormatBool(true)); err != nil {
		return err
	}
	return s.kvSet(keyConsentDetails, serializedConsent)
}

// ConsentStatus reports whether consent has been recorded.
func (s *Store) ConsentStatus() (bool, error) {
	v, err := s.kvGet(keyConsentGiven)
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

// ConsentDetails returns the serialized consent record, or an empty string
// if none has been recorded.
func (s *Store) ConsentDetails() (string, error) {
	return s.kvGet(keyConsentDetails)
}

// ConsentSubmitted reports whether the consent record has already been
// accepted by the server. Consent is sent at most once.
func (s *Store) ConsentSubmitted() (bool, error) {
	v, err := s.kvGet(keyConsentSubmitted)
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

// MarkConsentSubmitted flags the consent record as accepted by the server.
func (s *Store) MarkConsentSubmitted() error {
	return s.kvSet(keyConsentSubmitted, strconv.FormatBool(true))
}

// SetCurrentForm stores the serialized week-level form details.
func (s *Store) SetCurrentForm(serializedForm string) error {
	return s.kvSet(keyCurrentForm, serializedForm)
}

// CurrentForm returns the serialized week-level form details, or an empty
// string if none have been stored.
func (s *Store) CurrentForm() (string, error) {
	return s.kvGet(keyCurrentForm)
}

func (s *Store) kvGet(fullKey string) (string, error) {
	var value sql.NullString
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", fullKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		s.log.Error("settings read failed", "key", fullKey, "error", err)
		return "", fmt.Errorf("get %s: %w", fullKey, err)
	}
	return value.String, nil
}

func (s *Store) kvSet(fullKey, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value",
		fullKey, value,
	)
	if err != nil {
		s.log.Error("settings write failed", "key", fullKey, "error", err)
		return fmt.Errorf("set %s: %w", fullKey, err)
	}
	return nil
}

func (s *Store) kvDelete(fullKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM settings WHERE key = ?", fullKey); err != nil {
		s.log.Error("settings delete failed", "key", fullKey, "error", err)
		return fmt.Errorf("delete %s: %w", fullKey, err)
	}
	return nil
}

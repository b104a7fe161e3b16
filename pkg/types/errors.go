package types

import "errors"

// Validation errors. These are reported and logged; no record failure is
// treated as fatal by the store or the sync engine.
var (
	ErrLatitudeRange         = errors.New("latitude out of range")
	ErrLongitudeRange        = errors.New("longitude out of range")
	ErrRetainedExceedsCaught = errors.New("retained count exceeds caught count")
	ErrDateInFuture          = errors.New("date is in the future")
	ErrLandingBeforeActivity = errors.New("landing or discard date before activity date")
	ErrIncomplete            = errors.New("record is incomplete")
)

// Storage errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrUnknownKind = errors.New("unknown record kind")
	ErrSettingsKey = errors.New("invalid settings key")
)

// Config validation errors.
var (
	ErrAuthURLEmpty     = errors.New("auth_url must not be empty")
	ErrTokenURLEmpty    = errors.New("token_url must not be empty")
	ErrDataURLEmpty     = errors.New("data_url must not be empty")
	ErrClientIDEmpty    = errors.New("client_id must not be empty")
	ErrRedirectURIEmpty = errors.New("redirect_uri must not be empty")
)

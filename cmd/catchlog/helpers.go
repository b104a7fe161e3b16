// Shared helpers for catchlog CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pentlandfirth/catchlog/internal/auth"
	"github.com/pentlandfirth/catchlog/internal/store"
	"github.com/pentlandfirth/catchlog/pkg/types"
)

// openStore resolves the data directory and opens the local store,
// running the schema migration. The caller must defer Close.
func openStore() (*store.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	s, err := store.Open(dataDir, newLogger())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

// newAuthManager builds the auth manager over the given store using the
// configured endpoints and the system browser agent.
func newAuthManager(s *store.Store) (*auth.Manager, error) {
	cfg, err := coreConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger()
	agent := &auth.BrowserAgent{Log: logger}
	return auth.New(cfg, s, agent, logger), nil
}

// fail prints the error and exits with the system error code.
func fail(context string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", context, err)
	os.Exit(exitSysError)
}

// failUser prints the message and exits with the user error code.
func failUser(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(exitUserError)
}

// printResult writes v as JSON when --json is set, otherwise falls back to
// the supplied plain-text printer.
func printResult(v any, plain func()) {
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			fail("encode output", err)
		}
		return
	}
	plain()
}

// parseDate accepts YYYY-MM-DD or full RFC 3339 timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD or RFC 3339)", value)
	}
	return t, nil
}

// setLocation applies optional lat/lng flags to a record, rejecting
// out-of-range values.
func setLocation(loc *types.Location, lat, lng float64, latSet, lngSet bool) error {
	if latSet {
		if err := loc.SetLatitude(lat); err != nil {
			return err
		}
	}
	if lngSet {
		if err := loc.SetLongitude(lng); err != nil {
			return err
		}
	}
	return nil
}

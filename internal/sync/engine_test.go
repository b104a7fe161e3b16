// Unit tests for the outbox sync engine.
package sync

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentlandfirth/catchlog/internal/store"
	"github.com/pentlandfirth/catchlog/pkg/types"
)

// fakeAuth is an Authorizer with a fixed session state.
type fakeAuth struct {
	loggedIn bool
}

func (f *fakeAuth) LoggedIn() bool { return f.loggedIn }
func (f *fakeAuth) AuthHeader(ctx context.Context) (string, error) {
	return "Bearer test-token", nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedCatches(t *testing.T, s *store.Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		c := &types.Catch{
			Date:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			Species: "Lobster",
			Caught:  i + 1,
		}
		_, err := s.UpsertCatch(c)
		require.NoError(t, err)
	}
}

func seedObservation(t *testing.T, s *store.Store) {
	t.Helper()
	o := &types.WildlifeObservation{
		Animal:    "Porpoise",
		Species:   "Harbour Porpoise",
		Num:       1,
		Date:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Behaviour: []string{"Travelling"},
	}
	_, err := s.UpsertObservation(o)
	require.NoError(t, err)
}

// ackServer acknowledges every batch and counts requests.
func ackServer(t *testing.T, requests *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPostCatchesRequiresLogin(t *testing.T) {
	s := setupStore(t)
	seedCatches(t, s, 3)

	var requests atomic.Int64
	srv := ackServer(t, &requests)

	e := New(s, &fakeAuth{loggedIn: false}, srv.URL, testLogger())
	r, err := e.PostCatches(context.Background())
	require.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Equal(t, 3, r.Pending)
	assert.Zero(t, requests.Load(), "no network traffic while logged out")

	// Records stay pending for the next pass.
	pending, err := s.Catches(store.Query{Unsubmitted: true})
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}

func TestPostCatchesSubmitsAndMarks(t *testing.T) {
	s := setupStore(t)
	seedCatches(t, s, 3)

	var requests atomic.Int64
	srv := ackServer(t, &requests)

	e := New(s, &fakeAuth{loggedIn: true}, srv.URL, testLogger())
	r, err := e.PostCatches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, r.Pending)
	assert.Equal(t, 3, r.Submitted)
	assert.Equal(t, int64(1), requests.Load(), "one batch for all pending records")

	pending, err := s.Catches(store.Query{Unsubmitted: true})
	require.NoError(t, err)
	assert.Empty(t, pending)

	// A second pass finds nothing and stays off the network.
	r, err = e.PostCatches(context.Background())
	require.NoError(t, err)
	assert.Zero(t, r.Pending)
	assert.Equal(t, int64(1), requests.Load())
}

func TestPostCatchesKeepsPendingOnRejection(t *testing.T) {
	s := setupStore(t)
	seedCatches(t, s, 2)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"success": false})
	}))
	defer srv.Close()

	e := New(s, &fakeAuth{loggedIn: true}, srv.URL, testLogger())
	_, err := e.PostCatches(context.Background())
	require.ErrorIs(t, err, ErrRejected)

	pending, err := s.Catches(store.Query{Unsubmitted: true})
	require.NoError(t, err)
	assert.Len(t, pending, 2, "a rejected batch stays pending")
}

func TestPostCatchesKeepsPendingOnServerError(t *testing.T) {
	s := setupStore(t)
	seedCatches(t, s, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	e := New(s, &fakeAuth{loggedIn: true}, srv.URL, testLogger())
	_, err := e.PostCatches(context.Background())
	require.ErrorIs(t, err, ErrRejected)

	pending, err := s.Catches(store.Query{Unsubmitted: true})
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestPostCatchesNotReentrant(t *testing.T) {
	s := setupStore(t)
	seedCatches(t, s, 1)

	var requests atomic.Int64
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer srv.Close()

	e := New(s, &fakeAuth{loggedIn: true}, srv.URL, testLogger())

	done := make(chan syncResult, 1)
	go func() {
		r, err := e.PostCatches(context.Background())
		done <- syncResult{report: r, err: err}
	}()
	<-entered

	// A pass issued while the first is still awaiting its response backs
	// off without touching the store or the network.
	r, err := e.PostCatches(context.Background())
	require.NoError(t, err)
	assert.True(t, r.Skipped)
	assert.Zero(t, r.Pending)
	assert.Zero(t, r.Submitted)
	assert.Equal(t, int64(1), requests.Load())

	pending, err := s.Catches(store.Query{Unsubmitted: true})
	require.NoError(t, err)
	assert.Len(t, pending, 1, "the record stays pending until the in-flight pass resolves")

	close(release)
	first := <-done
	require.NoError(t, first.err)
	assert.False(t, first.report.Skipped)
	assert.Equal(t, 1, first.report.Submitted)

	pending, err = s.Catches(store.Query{Unsubmitted: true})
	require.NoError(t, err)
	assert.Empty(t, pending)
}

type syncResult struct {
	report Report
	err    error
}

func TestPostConsentIsOneShot(t *testing.T) {
	s := setupStore(t)

	c := types.Consent{Name: "A Fisher", Date: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)}
	serialized, err := c.Serialize()
	require.NoError(t, err)
	require.NoError(t, s.RecordConsent(serialized))

	var requests atomic.Int64
	srv := ackServer(t, &requests)

	e := New(s, &fakeAuth{loggedIn: true}, srv.URL, testLogger())
	r, err := e.PostConsent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, r.Submitted)
	assert.Equal(t, int64(1), requests.Load())

	// Once acknowledged, consent is never sent again.
	r, err = e.PostConsent(context.Background())
	require.NoError(t, err)
	assert.Zero(t, r.Pending)
	assert.Equal(t, int64(1), requests.Load())
}

func TestPostConsentWithoutRecord(t *testing.T) {
	s := setupStore(t)

	var requests atomic.Int64
	srv := ackServer(t, &requests)

	e := New(s, &fakeAuth{loggedIn: true}, srv.URL, testLogger())
	r, err := e.PostConsent(context.Background())
	require.NoError(t, err)
	assert.Zero(t, r.Pending)
	assert.Zero(t, requests.Load())
}

func TestPostDataRunsEveryKind(t *testing.T) {
	s := setupStore(t)
	seedCatches(t, s, 2)
	seedObservation(t, s)

	var requests atomic.Int64
	srv := ackServer(t, &requests)

	e := New(s, &fakeAuth{loggedIn: true}, srv.URL, testLogger())
	reports := e.PostData(context.Background())
	require.Len(t, reports, 5)

	byKind := map[string]Report{}
	for _, r := range reports {
		require.NoError(t, r.Err, "kind %s", r.Kind)
		byKind[r.Kind] = r
	}
	assert.Equal(t, 2, byKind[store.TableCatches].Submitted)
	assert.Equal(t, 1, byKind[store.TableObservations].Submitted)
	assert.Zero(t, byKind[store.TableEntries].Pending)
	assert.Zero(t, byKind[store.TableGearIncidents].Pending)
	assert.Zero(t, byKind["consent"].Pending)
	assert.Equal(t, int64(2), requests.Load(), "only kinds with pending records hit the network")
}

func TestPostBatchPayloadShape(t *testing.T) {
	s := setupStore(t)
	seedCatches(t, s, 1)

	var payload map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer srv.Close()

	e := New(s, &fakeAuth{loggedIn: true}, srv.URL, testLogger())
	_, err := e.PostCatches(context.Background())
	require.NoError(t, err)

	require.Contains(t, payload, "catches")
	var catches []types.Catch
	require.NoError(t, json.Unmarshal(payload["catches"], &catches))
	require.Len(t, catches, 1)
	assert.Equal(t, "Lobster", catches[0].Species)
}

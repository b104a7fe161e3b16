// Package sync reconciles locally pending records with the remote data
// endpoint. Each record kind runs its own outbox pass: select unsubmitted
// rows, POST them in one authenticated batch, and mark them submitted only
// after the server acknowledges. Any failure leaves the records pending
// for the next pass; nothing here is fatal.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	gosync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/pentlandfirth/catchlog/internal/store"
)

// Errors reported by a sync pass.
var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrRejected    = errors.New("server did not accept the batch")
)

// Authorizer gates and authenticates sync requests. *auth.Manager
// implements it.
type Authorizer interface {
	LoggedIn() bool
	AuthHeader(ctx context.Context) (string, error)
}

// Report summarizes one per-kind sync pass.
type Report struct {
	Kind      string
	Pending   int   // unsubmitted records found
	Submitted int   // records acknowledged and marked this pass
	Skipped   bool  // another pass for this kind was still in flight
	Err       error // set by PostData when the pass failed
}

// Engine drives the per-kind outbox passes.
type Engine struct {
	store   *store.Store
	auth    Authorizer
	dataURL string
	client  *http.Client
	log     *slog.Logger

	// One guard per kind: a pass must not start while the previous one
	// for the same kind is still awaiting its response. Kinds are
	// independent of each other.
	catchesMu      gosync.Mutex
	entriesMu      gosync.Mutex
	observationsMu gosync.Mutex
	gearMu         gosync.Mutex
	consentMu      gosync.Mutex
}

// New creates an Engine posting to dataURL.
func New(s *store.Store, auth Authorizer, dataURL string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:   s,
		auth:    auth,
		dataURL: dataURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     logger,
	}
}

// PostData runs every per-kind pass. The passes are independent and run
// concurrently; one kind failing does not block the others.
func (e *Engine) PostData(ctx context.Context) []Report {
	passes := []func(context.Context) (Report, error){
		e.PostCatches,
		e.PostEntries,
		e.PostObservations,
		e.PostGear,
		e.PostConsent,
	}

	reports := make([]Report, len(passes))
	var wg gosync.WaitGroup
	for i, pass := range passes {
		wg.Add(1)
		go func(i int, pass func(context.Context) (Report, error)) {
			defer wg.Done()
			r, err := pass(ctx)
			r.Err = err
			reports[i] = r
		}(i, pass)
	}
	wg.Wait()
	return reports
}

// PostCatches syncs pending catches.
func (e *Engine) PostCatches(ctx context.Context) (Report, error) {
	r := Report{Kind: store.TableCatches}
	if !e.catchesMu.TryLock() {
		r.Skipped = true
		return r, nil
	}
	defer e.catchesMu.Unlock()

	catches, err := e.store.Catches(store.Query{Unsubmitted: true})
	if err != nil {
		return r, err
	}
	r.Pending = len(catches)
	if len(catches) == 0 {
		return r, nil
	}

	ids := make([]int64, len(catches))
	for i := range catches {
		ids[i] = catches[i].ID
	}
	if err := e.send(ctx, map[string]any{"catches": catches}); err != nil {
		e.log.Warn("catch sync failed", "pending", len(ids), "error", err)
		return r, err
	}
	if err := e.store.MarkSubmitted(store.TableCatches, ids); err != nil {
		return r, err
	}
	r.Submitted = len(ids)
	return r, nil
}

// PostEntries syncs pending form entries.
func (e *Engine) PostEntries(ctx context.Context) (Report, error) {
	r := Report{Kind: store.TableEntries}
	if !e.entriesMu.TryLock() {
		r.Skipped = true
		return r, nil
	}
	defer e.entriesMu.Unlock()

	entries, err := e.store.Entries(store.Query{Unsubmitted: true})
	if err != nil {
		return r, err
	}
	r.Pending = len(entries)
	if len(entries) == 0 {
		return r, nil
	}

	ids := make([]int64, len(entries))
	for i := range entries {
		ids[i] = entries[i].ID
	}
	if err := e.send(ctx, map[string]any{"entries": entries}); err != nil {
		e.log.Warn("entry sync failed", "pending", len(ids), "error", err)
		return r, err
	}
	if err := e.store.MarkSubmitted(store.TableEntries, ids); err != nil {
		return r, err
	}
	r.Submitted = len(ids)
	return r, nil
}

// PostObservations syncs pending wildlife observations.
func (e *Engine) PostObservations(ctx context.Context) (Report, error) {
	r := Report{Kind: store.TableObservations}
	if !e.observationsMu.TryLock() {
		r.Skipped = true
		return r, nil
	}
	defer e.observationsMu.Unlock()

	observations, err := e.store.Observations(store.Query{Unsubmitted: true})
	if err != nil {
		return r, err
	}
	r.Pending = len(observations)
	if len(observations) == 0 {
		return r, nil
	}

	ids := make([]int64, len(observations))
	for i := range observations {
		ids[i] = observations[i].ID
	}
	if err := e.send(ctx, map[string]any{"observations": observations}); err != nil {
		e.log.Warn("observation sync failed", "pending", len(ids), "error", err)
		return r, err
	}
	if err := e.store.MarkSubmitted(store.TableObservations, ids); err != nil {
		return r, err
	}
	r.Submitted = len(ids)
	return r, nil
}

// PostGear syncs pending gear incidents.
func (e *Engine) PostGear(ctx context.Context) (Report, error) {
	r := Report{Kind: store.TableGearIncidents}
	if !e.gearMu.TryLock() {
		r.Skipped = true
		return r, nil
	}
	defer e.gearMu.Unlock()

	incidents, err := e.store.GearIncidents(store.Query{Unsubmitted: true})
	if err != nil {
		return r, err
	}
	r.Pending = len(incidents)
	if len(incidents) == 0 {
		return r, nil
	}

	ids := make([]int64, len(incidents))
	for i := range incidents {
		ids[i] = incidents[i].ID
	}
	if err := e.send(ctx, map[string]any{"gearIncidents": incidents}); err != nil {
		e.log.Warn("gear incident sync failed", "pending", len(ids), "error", err)
		return r, err
	}
	if err := e.store.MarkSubmitted(store.TableGearIncidents, ids); err != nil {
		return r, err
	}
	r.Submitted = len(ids)
	return r, nil
}

// PostConsent syncs the consent record. Consent is a singleton: it is sent
// once, guarded by a persisted submitted flag rather than a per-record
// timestamp.
func (e *Engine) PostConsent(ctx context.Context) (Report, error) {
	r := Report{Kind: "consent"}
	if !e.consentMu.TryLock() {
		r.Skipped = true
		return r, nil
	}
	defer e.consentMu.Unlock()

	submitted, err := e.store.ConsentSubmitted()
	if err != nil {
		return r, err
	}
	if submitted {
		return r, nil
	}
	details, err := e.store.ConsentDetails()
	if err != nil {
		return r, err
	}
	if details == "" {
		return r, nil
	}

	r.Pending = 1
	if err := e.send(ctx, json.RawMessage(details)); err != nil {
		e.log.Warn("consent sync failed", "error", err)
		return r, err
	}
	if err := e.store.MarkConsentSubmitted(); err != nil {
		return r, err
	}
	r.Submitted = 1
	return r, nil
}

// send posts one batch to the data endpoint. It requires a logged-in auth
// manager, carries a bearer header and a fresh idempotency key, and treats
// anything but a truthy success field as rejection.
func (e *Engine) send(ctx context.Context, payload any) error {
	if !e.auth.LoggedIn() {
		return ErrNotLoggedIn
	}
	header, err := e.auth.AuthHeader(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.dataURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", header)
	req.Header.Set("Idempotency-Key", newIdempotencyKey())

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("post batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	var ack struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return fmt.Errorf("%w: unreadable response: %v", ErrRejected, err)
	}
	if !ack.Success {
		return ErrRejected
	}
	return nil
}

// newIdempotencyKey returns a UUID v7 the server can use to de-duplicate a
// batch whose acknowledgement was lost in transit.
func newIdempotencyKey() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

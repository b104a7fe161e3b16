// Submission marking. This is the only place submitted timestamps are
// written; the sync engine calls it after the server acknowledges a batch.
package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/pentlandfirth/catchlog/pkg/types"
)

// Record tables that follow the outbox pattern.
const (
	TableCatches       = "catches"
	TableEntries       = "entries"
	TableObservations  = "observations"
	TableGearIncidents = "gear_incidents"
)

var submittableTables = map[string]bool{
	TableCatches:       true,
	TableEntries:       true,
	TableObservations:  true,
	TableGearIncidents: true,
}

// MarkSubmitted sets the submitted timestamp to now for exactly the given
// ids in one transaction. If any id is missing the whole batch is rolled
// back, leaving every record pending for the next sync pass.
func (s *Store) MarkSubmitted(table string, ids []int64) error {
	if !submittableTables[table] {
		return fmt.Errorf("mark submitted: %w: %q", types.ErrUnknownKind, table)
	}
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		s.log.Error("mark submitted failed", "table", table, "error", err)
		return fmt.Errorf("begin mark submitted tx: %w", err)
	}
	defer tx.Rollback()

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+1)
	args = append(args, encodeTime(time.Now()))
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	res, err := tx.Exec(
		"UPDATE "+table+" SET submitted = ? WHERE id IN ("+strings.Join(placeholders, ", ")+")",
		args...,
	)
	if err != nil {
		s.log.Error("mark submitted failed", "table", table, "error", err)
		return fmt.Errorf("mark submitted in %s: %w", table, err)
	}
	if n, _ := res.RowsAffected(); n != int64(len(ids)) {
		s.log.Error("mark submitted incomplete, rolling back",
			"table", table, "wanted", len(ids), "updated", n)
		return fmt.Errorf("mark submitted in %s: %d of %d rows updated", table, n, len(ids))
	}

	if err := tx.Commit(); err != nil {
		s.log.Error("mark submitted failed", "table", table, "error", err)
		return fmt.Errorf("commit mark submitted: %w", err)
	}
	return nil
}

// Catch table operations.
package store

import (
	"database/sql"
	"fmt"

	"github.com/pentlandfirth/catchlog/pkg/types"
)

// UpsertCatch inserts the catch when it has no id, assigning and returning
// a new one, or updates the row matching its id. Updates of ids that do
// not exist are logged and ignored. Writes missing required fields or
// violating catch invariants are skipped.
func (s *Store) UpsertCatch(c *types.Catch) (int64, error) {
	if c.Species == "" || c.Date.IsZero() {
		s.log.Warn("catch write skipped", "reason", "missing required fields")
		return 0, fmt.Errorf("upsert catch: %w", types.ErrIncomplete)
	}
	if err := c.Validate(); err != nil {
		s.log.Warn("catch write skipped", "error", err)
		return 0, fmt.Errorf("upsert catch: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == 0 {
		// Submitted is left NULL regardless of the caller's value;
		// MarkSubmitted is the only writer.
		res, err := s.db.Exec(
			"INSERT INTO catches (species, date, caught, retained) VALUES (?, ?, ?, ?)",
			c.Species, encodeTime(c.Date), c.Caught, c.Retained,
		)
		if err != nil {
			s.log.Error("catch insert failed", "error", err)
			return 0, fmt.Errorf("insert catch: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			s.log.Error("catch insert failed", "error", err)
			return 0, fmt.Errorf("insert catch: %w", err)
		}
		c.ID = id
		return id, nil
	}

	res, err := s.db.Exec(
		"UPDATE catches SET species = ?, date = ?, caught = ?, retained = ? WHERE id = ?",
		c.Species, encodeTime(c.Date), c.Caught, c.Retained, c.ID,
	)
	if err != nil {
		s.log.Error("catch update failed", "id", c.ID, "error", err)
		return 0, fmt.Errorf("update catch %d: %w", c.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		s.log.Warn("update of missing catch ignored", "id", c.ID)
	}
	return c.ID, nil
}

// Catches returns catches matching the query. The returned slice is
// always safe to range over; faults are logged and yield an empty slice.
func (s *Store) Catches(q Query) ([]types.Catch, error) {
	query := "SELECT id, species, date, caught, retained, submitted FROM catches"
	var args []any
	switch {
	case q.ByID > 0:
		query += " WHERE id = ?"
		args = append(args, q.ByID)
	case q.Unsubmitted:
		query += " WHERE submitted IS NULL ORDER BY id"
	case q.dateRange():
		query += " WHERE date >= ? AND date <= ? ORDER BY date"
		args = append(args, encodeTime(q.From), encodeTime(q.To))
	default:
		query += " ORDER BY id DESC LIMIT ?"
		args = append(args, q.limit())
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		s.log.Error("catch query failed", "error", err)
		return []types.Catch{}, fmt.Errorf("select catches: %w", err)
	}
	defer rows.Close()

	catches := []types.Catch{}
	for rows.Next() {
		c, err := scanCatch(rows)
		if err != nil {
			s.log.Error("catch row scan failed", "error", err)
			return []types.Catch{}, fmt.Errorf("scan catch: %w", err)
		}
		catches = append(catches, c)
	}
	if err := rows.Err(); err != nil {
		s.log.Error("catch query failed", "error", err)
		return []types.Catch{}, fmt.Errorf("select catches: %w", err)
	}
	return catches, nil
}

// CatchByID returns the catch with the given id, or ErrNotFound.
func (s *Store) CatchByID(id int64) (*types.Catch, error) {
	catches, err := s.Catches(Query{ByID: id})
	if err != nil {
		return nil, err
	}
	if len(catches) == 0 {
		return nil, types.ErrNotFound
	}
	return &catches[0], nil
}

func scanCatch(rows *sql.Rows) (types.Catch, error) {
	var (
		c         types.Catch
		date      string
		submitted sql.NullString
	)
	if err := rows.Scan(&c.ID, &c.Species, &date, &c.Caught, &c.Retained, &submitted); err != nil {
		return types.Catch{}, err
	}
	c.Date = decodeTime(date)
	c.SubmittedAt = decodeNullTime(submitted)
	return c, nil
}

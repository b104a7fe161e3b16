// Wildlife observation table operations. Behaviour tags live in a child
// relation keyed by observation id; parent and children are written in one
// transaction and re-assembled on select.
package store

import (
	"database/sql"
	"fmt"

	"github.com/pentlandfirth/catchlog/pkg/types"
)

const observationColumns = "id, animal, species, description, num, date, latitude, longitude, notes, submitted"

// UpsertObservation inserts the observation when it has no id, assigning
// and returning a new one, or updates the row matching its id. The
// behaviour set is rewritten with the parent in the same transaction.
func (s *Store) UpsertObservation(o *types.WildlifeObservation) (int64, error) {
	if o.Animal == "" || o.Date.IsZero() {
		s.log.Warn("observation write skipped", "reason", "missing required fields")
		return 0, fmt.Errorf("upsert observation: %w", types.ErrIncomplete)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		s.log.Error("observation write failed", "error", err)
		return 0, fmt.Errorf("begin observation tx: %w", err)
	}
	defer tx.Rollback()

	id := o.ID
	if id == 0 {
		res, err := tx.Exec(
			`INSERT INTO observations (animal, species, description, num, date, latitude, longitude, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			o.Animal, o.Species, o.Description, o.Num, encodeTime(o.Date),
			encodeNullFloat(o.Latitude), encodeNullFloat(o.Longitude), o.Notes,
		)
		if err != nil {
			s.log.Error("observation insert failed", "error", err)
			return 0, fmt.Errorf("insert observation: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			s.log.Error("observation insert failed", "error", err)
			return 0, fmt.Errorf("insert observation: %w", err)
		}
	} else {
		res, err := tx.Exec(
			`UPDATE observations SET animal = ?, species = ?, description = ?, num = ?, date = ?,
			                         latitude = ?, longitude = ?, notes = ?
			 WHERE id = ?`,
			o.Animal, o.Species, o.Description, o.Num, encodeTime(o.Date),
			encodeNullFloat(o.Latitude), encodeNullFloat(o.Longitude), o.Notes, id,
		)
		if err != nil {
			s.log.Error("observation update failed", "id", id, "error", err)
			return 0, fmt.Errorf("update observation %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			s.log.Warn("update of missing observation ignored", "id", id)
			return id, nil
		}
		if _, err := tx.Exec("DELETE FROM behaviours WHERE observation_id = ?", id); err != nil {
			s.log.Error("behaviour rewrite failed", "id", id, "error", err)
			return 0, fmt.Errorf("clear behaviours for observation %d: %w", id, err)
		}
	}

	for _, behaviour := range o.Behaviour {
		if _, err := tx.Exec(
			"INSERT INTO behaviours (behaviour, observation_id) VALUES (?, ?)",
			behaviour, id,
		); err != nil {
			s.log.Error("behaviour insert failed", "id", id, "error", err)
			return 0, fmt.Errorf("insert behaviour for observation %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.log.Error("observation write failed", "error", err)
		return 0, fmt.Errorf("commit observation: %w", err)
	}
	o.ID = id
	return id, nil
}

// Observations returns observations matching the query, each with its
// behaviour set re-assembled from the child table.
func (s *Store) Observations(q Query) ([]types.WildlifeObservation, error) {
	query := "SELECT " + observationColumns + " FROM observations"
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
		s.log.Error("observation query failed", "error", err)
		return []types.WildlifeObservation{}, fmt.Errorf("select observations: %w", err)
	}
	defer rows.Close()

	observations := []types.WildlifeObservation{}
	for rows.Next() {
		o, err := scanObservation(rows)
		if err != nil {
			s.log.Error("observation row scan failed", "error", err)
			return []types.WildlifeObservation{}, fmt.Errorf("scan observation: %w", err)
		}
		observations = append(observations, o)
	}
	if err := rows.Err(); err != nil {
		s.log.Error("observation query failed", "error", err)
		return []types.WildlifeObservation{}, fmt.Errorf("select observations: %w", err)
	}

	for i := range observations {
		behaviours, err := s.behavioursFor(observations[i].ID)
		if err != nil {
			return []types.WildlifeObservation{}, err
		}
		observations[i].Behaviour = behaviours
	}
	return observations, nil
}

// ObservationByID returns the observation with the given id, or
// ErrNotFound.
func (s *Store) ObservationByID(id int64) (*types.WildlifeObservation, error) {
	observations, err := s.Observations(Query{ByID: id})
	if err != nil {
		return nil, err
	}
	if len(observations) == 0 {
		return nil, types.ErrNotFound
	}
	return &observations[0], nil
}

func (s *Store) behavioursFor(observationID int64) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT behaviour FROM behaviours WHERE observation_id = ? ORDER BY id",
		observationID,
	)
	if err != nil {
		s.log.Error("behaviour query failed", "id", observationID, "error", err)
		return []string{}, fmt.Errorf("select behaviours for observation %d: %w", observationID, err)
	}
	defer rows.Close()

	behaviours := []string{}
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			s.log.Error("behaviour row scan failed", "id", observationID, "error", err)
			return []string{}, fmt.Errorf("scan behaviour: %w", err)
		}
		behaviours = append(behaviours, b)
	}
	if err := rows.Err(); err != nil {
		s.log.Error("behaviour query failed", "id", observationID, "error", err)
		return []string{}, fmt.Errorf("select behaviours for observation %d: %w", observationID, err)
	}
	return behaviours, nil
}

func scanObservation(rows *sql.Rows) (types.WildlifeObservation, error) {
	var (
		o                 types.WildlifeObservation
		species, desc     sql.NullString
		date              string
		lat, lng          sql.NullFloat64
		notes, submitted  sql.NullString
	)
	if err := rows.Scan(&o.ID, &o.Animal, &species, &desc, &o.Num, &date, &lat, &lng, &notes, &submitted); err != nil {
		return types.WildlifeObservation{}, err
	}
	o.Species = species.String
	o.Description = desc.String
	o.Date = decodeTime(date)
	o.Latitude = decodeNullFloat(lat)
	o.Longitude = decodeNullFloat(lng)
	o.Notes = notes.String
	o.SubmittedAt = decodeNullTime(submitted)
	return o, nil
}

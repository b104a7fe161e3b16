// Form entry table operations. Entries are the only kind with a physical
// delete, since a form line can be withdrawn before the form is sent.
package store

import (
	"database/sql"
	"fmt"

	"github.com/pentlandfirth/catchlog/pkg/types"
)

const entryColumns = "id, activity_date, latitude, longitude, gear, mesh_size, species, state, presentation, weight, DIS, BMS, num_pots_hauled, landing_discard_date, buyer_transporter_ref, submitted"

// UpsertEntry inserts the entry when it has no id, assigning and returning
// a new one, or updates the row matching its id. Updates of ids that do
// not exist are logged and ignored.
func (s *Store) UpsertEntry(e *types.Entry) (int64, error) {
	if e.ActivityDate.IsZero() || e.Gear == "" || e.Species == "" || e.State == "" || e.Presentation == "" {
		s.log.Warn("entry write skipped", "reason", "missing required fields")
		return 0, fmt.Errorf("upsert entry: %w", types.ErrIncomplete)
	}
	if err := e.Validate(); err != nil {
		s.log.Warn("entry write skipped", "error", err)
		return 0, fmt.Errorf("upsert entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var landing any
	if !e.LandingDiscardDate.IsZero() {
		landing = encodeTime(e.LandingDiscardDate)
	}

	if e.ID == 0 {
		res, err := s.db.Exec(
			`INSERT INTO entries (activity_date, latitude, longitude, gear, mesh_size, species, state,
			                      presentation, weight, DIS, BMS, num_pots_hauled, landing_discard_date,
			                      buyer_transporter_ref)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			encodeTime(e.ActivityDate), encodeNullFloat(e.Latitude), encodeNullFloat(e.Longitude),
			e.Gear, e.MeshSize, e.Species, e.State, e.Presentation, e.Weight,
			e.DIS, e.BMS, e.NumPotsHauled, landing, e.BuyerTransporterRef,
		)
		if err != nil {
			s.log.Error("entry insert failed", "error", err)
			return 0, fmt.Errorf("insert entry: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			s.log.Error("entry insert failed", "error", err)
			return 0, fmt.Errorf("insert entry: %w", err)
		}
		e.ID = id
		return id, nil
	}

	res, err := s.db.Exec(
		`UPDATE entries SET activity_date = ?, latitude = ?, longitude = ?, gear = ?, mesh_size = ?,
		                    species = ?, state = ?, presentation = ?, weight = ?, DIS = ?, BMS = ?,
		                    num_pots_hauled = ?, landing_discard_date = ?, buyer_transporter_ref = ?
		 WHERE id = ?`,
		encodeTime(e.ActivityDate), encodeNullFloat(e.Latitude), encodeNullFloat(e.Longitude),
		e.Gear, e.MeshSize, e.Species, e.State, e.Presentation, e.Weight,
		e.DIS, e.BMS, e.NumPotsHauled, landing, e.BuyerTransporterRef, e.ID,
	)
	if err != nil {
		s.log.Error("entry update failed", "id", e.ID, "error", err)
		return 0, fmt.Errorf("update entry %d: %w", e.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		s.log.Warn("update of missing entry ignored", "id", e.ID)
	}
	return e.ID, nil
}

// Entries returns form entries matching the query.
func (s *Store) Entries(q Query) ([]types.Entry, error) {
	query := "SELECT " + entryColumns + " FROM entries"
	var args []any
	switch {
	case q.ByID > 0:
		query += " WHERE id = ?"
		args = append(args, q.ByID)
	case q.Unsubmitted:
		query += " WHERE submitted IS NULL ORDER BY id"
	case q.dateRange():
		query += " WHERE activity_date >= ? AND activity_date <= ? ORDER BY activity_date"
		args = append(args, encodeTime(q.From), encodeTime(q.To))
	default:
		query += " ORDER BY id DESC LIMIT ?"
		args = append(args, q.limit())
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		s.log.Error("entry query failed", "error", err)
		return []types.Entry{}, fmt.Errorf("select entries: %w", err)
	}
	defer rows.Close()

	entries := []types.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			s.log.Error("entry row scan failed", "error", err)
			return []types.Entry{}, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		s.log.Error("entry query failed", "error", err)
		return []types.Entry{}, fmt.Errorf("select entries: %w", err)
	}
	return entries, nil
}

// EntryByID returns the entry with the given id, or ErrNotFound.
func (s *Store) EntryByID(id int64) (*types.Entry, error) {
	entries, err := s.Entries(Query{ByID: id})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, types.ErrNotFound
	}
	return &entries[0], nil
}

// EntrySummaries returns the list-view subset of entries, most recent
// first.
func (s *Store) EntrySummaries() ([]types.EntrySummary, error) {
	entries, err := s.Entries(Query{})
	if err != nil {
		return []types.EntrySummary{}, err
	}
	summaries := make([]types.EntrySummary, 0, len(entries))
	for i := range entries {
		summaries = append(summaries, entries[i].Summary())
	}
	return summaries, nil
}

// DeleteEntry physically removes the entry with the given id.
func (s *Store) DeleteEntry(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		s.log.Error("entry delete failed", "id", id, "error", err)
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return nil
}

func scanEntry(rows *sql.Rows) (types.Entry, error) {
	var (
		e            types.Entry
		activityDate string
		lat, lng     sql.NullFloat64
		meshSize     sql.NullString
		numPots      sql.NullInt64
		landing      sql.NullString
		buyerRef     sql.NullString
		submitted    sql.NullString
	)
	if err := rows.Scan(&e.ID, &activityDate, &lat, &lng, &e.Gear, &meshSize, &e.Species, &e.State,
		&e.Presentation, &e.Weight, &e.DIS, &e.BMS, &numPots, &landing, &buyerRef, &submitted); err != nil {
		return types.Entry{}, err
	}
	e.ActivityDate = decodeTime(activityDate)
	e.Latitude = decodeNullFloat(lat)
	e.Longitude = decodeNullFloat(lng)
	e.MeshSize = meshSize.String
	e.NumPotsHauled = int(numPots.Int64)
	if lt := decodeNullTime(landing); lt != nil {
		e.LandingDiscardDate = *lt
	}
	e.BuyerTransporterRef = buyerRef.String
	e.SubmittedAt = decodeNullTime(submitted)
	return e, nil
}

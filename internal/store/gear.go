// Gear incident table operations.
package store

import (
	"database/sql"
	"fmt"

	"github.com/pentlandfirth/catchlog/pkg/types"
)

const gearColumns = "id, date, latitude, longitude, notes, incident_type, gear_type, num, submitted"

// UpsertGearIncident inserts the incident when it has no id, assigning and
// returning a new one, or updates the row matching its id.
func (s *Store) UpsertGearIncident(g *types.GearIncident) (int64, error) {
	if g.Date.IsZero() || g.IncidentType == "" || g.GearType == "" {
		s.log.Warn("gear incident write skipped", "reason", "missing required fields")
		return 0, fmt.Errorf("upsert gear incident: %w", types.ErrIncomplete)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if g.ID == 0 {
		res, err := s.db.Exec(
			`INSERT INTO gear_incidents (date, latitude, longitude, notes, incident_type, gear_type, num)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			encodeTime(g.Date), encodeNullFloat(g.Latitude), encodeNullFloat(g.Longitude),
			g.Notes, g.IncidentType, g.GearType, g.Num,
		)
		if err != nil {
			s.log.Error("gear incident insert failed", "error", err)
			return 0, fmt.Errorf("insert gear incident: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			s.log.Error("gear incident insert failed", "error", err)
			return 0, fmt.Errorf("insert gear incident: %w", err)
		}
		g.ID = id
		return id, nil
	}

	res, err := s.db.Exec(
		`UPDATE gear_incidents SET date = ?, latitude = ?, longitude = ?, notes = ?,
		                           incident_type = ?, gear_type = ?, num = ?
		 WHERE id = ?`,
		encodeTime(g.Date), encodeNullFloat(g.Latitude), encodeNullFloat(g.Longitude),
		g.Notes, g.IncidentType, g.GearType, g.Num, g.ID,
	)
	if err != nil {
		s.log.Error("gear incident update failed", "id", g.ID, "error", err)
		return 0, fmt.Errorf("update gear incident %d: %w", g.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		s.log.Warn("update of missing gear incident ignored", "id", g.ID)
	}
	return g.ID, nil
}

// GearIncidents returns gear incidents matching the query.
func (s *Store) GearIncidents(q Query) ([]types.GearIncident, error) {
	query := "SELECT " + gearColumns + " FROM gear_incidents"
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
		s.log.Error("gear incident query failed", "error", err)
		return []types.GearIncident{}, fmt.Errorf("select gear incidents: %w", err)
	}
	defer rows.Close()

	incidents := []types.GearIncident{}
	for rows.Next() {
		g, err := scanGearIncident(rows)
		if err != nil {
			s.log.Error("gear incident row scan failed", "error", err)
			return []types.GearIncident{}, fmt.Errorf("scan gear incident: %w", err)
		}
		incidents = append(incidents, g)
	}
	if err := rows.Err(); err != nil {
		s.log.Error("gear incident query failed", "error", err)
		return []types.GearIncident{}, fmt.Errorf("select gear incidents: %w", err)
	}
	return incidents, nil
}

// GearIncidentByID returns the incident with the given id, or ErrNotFound.
func (s *Store) GearIncidentByID(id int64) (*types.GearIncident, error) {
	incidents, err := s.GearIncidents(Query{ByID: id})
	if err != nil {
		return nil, err
	}
	if len(incidents) == 0 {
		return nil, types.ErrNotFound
	}
	return &incidents[0], nil
}

func scanGearIncident(rows *sql.Rows) (types.GearIncident, error) {
	var (
		g                types.GearIncident
		date             string
		lat, lng         sql.NullFloat64
		notes            sql.NullString
		num              sql.NullInt64
		submitted        sql.NullString
	)
	if err := rows.Scan(&g.ID, &date, &lat, &lng, &notes, &g.IncidentType, &g.GearType, &num, &submitted); err != nil {
		return types.GearIncident{}, err
	}
	g.Date = decodeTime(date)
	g.Latitude = decodeNullFloat(lat)
	g.Longitude = decodeNullFloat(lng)
	g.Notes = notes.String
	g.Num = int(num.Int64)
	g.SubmittedAt = decodeNullTime(submitted)
	return g, nil
}

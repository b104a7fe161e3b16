package types

import (
	"fmt"
	"time"
)

// Gear incident classification.
const (
	IncidentLost          = "lost"
	IncidentFound         = "found"
	IncidentUnmarkedCreel = "unmarkedCreel"

	GearCreel = "creel"
	GearOther = "other"
)

// GearIncident records lost or found fishing gear, or an unmarked creel.
type GearIncident struct {
	Record
	Location
	Date         time.Time `json:"date"`
	Notes        string    `json:"notes,omitempty"`
	IncidentType string    `json:"incidentType"`
	GearType     string    `json:"gearType"`
	Num          int       `json:"num,omitempty"`
}

// IsComplete reports whether the incident has a date and a position.
func (g *GearIncident) IsComplete() bool {
	return !g.Date.IsZero() && g.HasLocation()
}

// DateString renders the incident date for display or export.
func (g *GearIncident) DateString(local bool) string {
	return DateString(g.Date, local)
}

// Description renders a short human-readable summary of the incident,
// e.g. "Lost gear (creel x 3)".
func (g *GearIncident) Description() string {
	var desc string
	switch g.IncidentType {
	case IncidentLost:
		desc = "Lost gear"
	case IncidentFound:
		desc = "Found gear"
	default:
		desc = "Unmarked creel"
	}
	if g.IncidentType == IncidentLost || g.IncidentType == IncidentFound {
		if g.GearType == GearCreel && g.Num > 0 {
			desc += fmt.Sprintf(" (%s x %d)", g.GearType, g.Num)
		} else {
			desc += fmt.Sprintf(" (%s)", g.GearType)
		}
	}
	return desc
}

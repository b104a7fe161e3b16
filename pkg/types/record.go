package types

import (
	"fmt"
	"math"
	"time"
)

// Record is the base shape shared by every captured record kind. IDs are
// assigned by the store on first insert and never reused or mutated.
// SubmittedAt is nil while the record is pending sync; the sync engine is
// the only writer of SubmittedAt.
type Record struct {
	ID          int64      `json:"id,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}

// Submitted reports whether the record has been acknowledged by the server.
func (r Record) Submitted() bool {
	return r.SubmittedAt != nil
}

// DateString renders a date in ISO 8601 or a short local form for display.
func DateString(date time.Time, local bool) string {
	if date.IsZero() {
		return ""
	}
	if local {
		return date.Format("Mon, 2 Jan 2006")
	}
	return date.UTC().Format(time.RFC3339)
}

// LatLng is a position split into degrees, whole minutes, and compass
// direction for display.
type LatLng struct {
	LatDeg int
	LatMin int
	LatDir string // "N" or "S"
	LngDeg int
	LngMin int
	LngDir string // "E" or "W"
}

// Location holds an optional position. Nil pointers mean "not recorded".
// Values are only ever set through the range-checked setters.
type Location struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// SetLatitude stores the latitude if it is within [-90, 90]. An
// out-of-range value leaves the stored latitude unchanged and returns
// ErrLatitudeRange.
func (l *Location) SetLatitude(v float64) error {
	if v < -90 || v > 90 {
		return fmt.Errorf("%w: %v", ErrLatitudeRange, v)
	}
	l.Latitude = &v
	return nil
}

// SetLongitude stores the longitude if it is within [-180, 180]. An
// out-of-range value leaves the stored longitude unchanged and returns
// ErrLongitudeRange.
func (l *Location) SetLongitude(v float64) error {
	if v < -180 || v > 180 {
		return fmt.Errorf("%w: %v", ErrLongitudeRange, v)
	}
	l.Longitude = &v
	return nil
}

// HasLocation reports whether both coordinates have been recorded.
func (l *Location) HasLocation() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// LatLng converts the position to degrees and minutes. The second return
// value is false if either coordinate is missing.
func (l *Location) LatLng() (LatLng, bool) {
	if !l.HasLocation() {
		return LatLng{}, false
	}

	absLat := math.Abs(*l.Latitude)
	latDeg := int(absLat)
	latMin := int((absLat - float64(latDeg)) * 60)
	latDir := "N"
	if *l.Latitude < 0 {
		latDir = "S"
	}

	absLng := math.Abs(*l.Longitude)
	lngDeg := int(absLng)
	lngMin := int((absLng - float64(lngDeg)) * 60)
	lngDir := "E"
	if *l.Longitude < 0 {
		lngDir = "W"
	}

	return LatLng{
		LatDeg: latDeg,
		LatMin: latMin,
		LatDir: latDir,
		LngDeg: lngDeg,
		LngMin: lngMin,
		LngDir: lngDir,
	}, true
}

// LocationString renders the position as degrees and minutes with compass
// directions, or an empty string if no position is recorded.
func (l *Location) LocationString() string {
	ll, ok := l.LatLng()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d° %d' %s, %d° %d' %s",
		ll.LatDeg, ll.LatMin, ll.LatDir, ll.LngDeg, ll.LngMin, ll.LngDir)
}

// Option is a catalogue entry offered to the user when filling a record.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

package types

import (
	"fmt"
	"math"
	"time"
)

// Entry is a single fishing activity line on the weekly form: where and
// when the activity happened, the gear used, and what was landed or
// discarded.
type Entry struct {
	Record
	Location
	ActivityDate        time.Time `json:"activityDate"`
	Gear                string    `json:"gear"`
	MeshSize            string    `json:"meshSize,omitempty"`
	Species             string    `json:"species"`
	State               string    `json:"state"`
	Presentation        string    `json:"presentation"`
	Weight              float64   `json:"weight"`
	DIS                 bool      `json:"DIS"`
	BMS                 bool      `json:"BMS"`
	NumPotsHauled       int       `json:"numPotsHauled,omitempty"`
	LandingDiscardDate  time.Time `json:"landingDiscardDate"`
	BuyerTransporterRef string    `json:"buyerTransporterRef,omitempty"`
}

// EntrySummary is the subset of an entry shown in list views.
type EntrySummary struct {
	ID           int64     `json:"id"`
	ActivityDate time.Time `json:"activityDate"`
	Species      string    `json:"species"`
}

// Validate checks that the landing or discard date does not precede the
// activity date.
func (e *Entry) Validate() error {
	if !e.LandingDiscardDate.IsZero() && !e.ActivityDate.IsZero() &&
		e.LandingDiscardDate.Before(e.ActivityDate) {
		return fmt.Errorf("%w: %s < %s", ErrLandingBeforeActivity,
			e.LandingDiscardDate.Format(time.RFC3339), e.ActivityDate.Format(time.RFC3339))
	}
	return nil
}

// IsComplete reports whether the entry has every field required on the
// form.
func (e *Entry) IsComplete() bool {
	return !e.ActivityDate.IsZero() &&
		e.HasLocation() &&
		e.Gear != "" &&
		e.Species != "" &&
		e.State != "" &&
		e.Presentation != "" &&
		e.Weight > 0 &&
		!e.LandingDiscardDate.IsZero()
}

// Summary returns the list-view subset of the entry.
func (e *Entry) Summary() EntrySummary {
	return EntrySummary{
		ID:           e.ID,
		ActivityDate: e.ActivityDate,
		Species:      e.Species,
	}
}

// IcesRectangle derives the ICES statistical rectangle for the entry's
// position, or an empty string if the position is missing or outside the
// grid.
//
// The grid covers 36°N to 85°30'N and 44°W to 68°30'E. Latitudinal rows of
// 30' are numbered 01 upward from 36°N. Longitudinal columns of 1° are
// lettered per 10° block starting at A (A4-A9 and the letter I are
// skipped), with the digit giving the 1° offset within the block.
func (e *Entry) IcesRectangle() string {
	if !e.HasLocation() {
		return ""
	}
	lat := *e.Latitude
	lng := *e.Longitude
	if lat < 36.0 || lat >= 85.5 || lng < -44.0 || lng >= 68.5 {
		return ""
	}

	row := int(math.Floor((lat-36.0)*2)) + 1
	rect := fmt.Sprintf("%02d", row)

	letters := []rune("ABCDEFGHJKLM")
	rect += string(letters[int(math.Floor(lng/10))+5])
	switch {
	case lng < -40.0:
		rect += fmt.Sprintf("%d", int(math.Floor(math.Abs(-44.0-lng))))
	case lng < 0.0:
		rect += fmt.Sprintf("%d", 9+int(math.Ceil(math.Mod(lng, 10))))
	default:
		rect += fmt.Sprintf("%d", int(math.Floor(math.Mod(lng, 10))))
	}
	return rect
}

// Catalogues offered when filling an entry.

// SpeciesList returns the shellfish species options.
func SpeciesList() []Option {
	return []Option{
		{ID: "CRE", Name: "Brown Crab"},
		{ID: "LBE", Name: "Lobster"},
		{ID: "NEP", Name: "Nephrops"},
		{ID: "CRS", Name: "Velvet Crab"},
		{ID: "SQC", Name: "Squid"},
	}
}

// GearList returns the fishing gear options.
func GearList() []Option {
	return []Option{
		{ID: "1", Name: "Pots/traps FPO"},
		{ID: "2", Name: "Handlines FPO"},
		{ID: "3", Name: "Single trawl"},
		{ID: "4", Name: "Deredge"},
	}
}

// MeshSizes returns the mesh size options.
func MeshSizes() []Option {
	return []Option{
		{ID: "1", Name: "80mm"},
		{ID: "2", Name: "120mm"},
	}
}

// States returns the landed-state options.
func States() []Option {
	return []Option{
		{ID: "1", Name: "Live"},
		{ID: "2", Name: "Fresh"},
		{ID: "3", Name: "Ungraded"},
	}
}

// Presentations returns the presentation options.
func Presentations() []Option {
	return []Option{
		{ID: "1", Name: "Whole"},
		{ID: "2", Name: "Head on, gutted"},
	}
}

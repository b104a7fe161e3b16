// Unit tests for form entry persistence.
package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentlandfirth/catchlog/pkg/types"
)

func testEntry(t *testing.T) *types.Entry {
	t.Helper()
	e := &types.Entry{
		ActivityDate:       time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC),
		Gear:               "Pots/traps FPO",
		MeshSize:           "80mm",
		Species:            "LBE",
		State:              "Live",
		Presentation:       "Whole",
		Weight:             18.5,
		NumPotsHauled:      40,
		LandingDiscardDate: time.Date(2025, 6, 2, 16, 0, 0, 0, time.UTC),
	}
	require.NoError(t, e.SetLatitude(57.7))
	require.NoError(t, e.SetLongitude(-0.5))
	return e
}

func TestUpsertEntryRoundTrip(t *testing.T) {
	s := setupStore(t)

	e := testEntry(t)
	id, err := s.UpsertEntry(e)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.EntryByID(id)
	require.NoError(t, err)
	assert.Equal(t, e.Gear, got.Gear)
	assert.Equal(t, e.MeshSize, got.MeshSize)
	assert.Equal(t, e.Species, got.Species)
	assert.Equal(t, e.Weight, got.Weight)
	assert.Equal(t, e.NumPotsHauled, got.NumPotsHauled)
	require.True(t, got.HasLocation())
	assert.Equal(t, 57.7, *got.Latitude)
	assert.Equal(t, -0.5, *got.Longitude)
	assert.True(t, got.ActivityDate.Equal(e.ActivityDate))
	assert.True(t, got.LandingDiscardDate.Equal(e.LandingDiscardDate))
	assert.False(t, got.Submitted())
}

func TestUpsertEntryWithoutPosition(t *testing.T) {
	s := setupStore(t)

	e := testEntry(t)
	e.Location = types.Location{}
	id, err := s.UpsertEntry(e)
	require.NoError(t, err)

	got, err := s.EntryByID(id)
	require.NoError(t, err)
	assert.Nil(t, got.Latitude)
	assert.Nil(t, got.Longitude)
	assert.False(t, got.HasLocation())
}

func TestUpsertEntryRejectsIncomplete(t *testing.T) {
	s := setupStore(t)

	e := testEntry(t)
	e.Species = ""
	_, err := s.UpsertEntry(e)
	require.ErrorIs(t, err, types.ErrIncomplete)
}

func TestUpsertEntryRejectsBadDates(t *testing.T) {
	s := setupStore(t)

	e := testEntry(t)
	e.LandingDiscardDate = e.ActivityDate.Add(-48 * time.Hour)
	_, err := s.UpsertEntry(e)
	require.ErrorIs(t, err, types.ErrLandingBeforeActivity)
}

func TestUpsertEntryIgnoresCallerSubmitted(t *testing.T) {
	s := setupStore(t)

	e := testEntry(t)
	now := time.Now()
	e.SubmittedAt = &now
	id, err := s.UpsertEntry(e)
	require.NoError(t, err)

	got, err := s.EntryByID(id)
	require.NoError(t, err)
	assert.False(t, got.Submitted())

	pending, err := s.Entries(Query{Unsubmitted: true})
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestEntrySummaries(t *testing.T) {
	s := setupStore(t)

	first := testEntry(t)
	_, err := s.UpsertEntry(first)
	require.NoError(t, err)

	second := testEntry(t)
	second.Species = "CRE"
	secondID, err := s.UpsertEntry(second)
	require.NoError(t, err)

	summaries, err := s.EntrySummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, secondID, summaries[0].ID, "most recent first")
	assert.Equal(t, "CRE", summaries[0].Species)
}

func TestDeleteEntry(t *testing.T) {
	s := setupStore(t)

	id, err := s.UpsertEntry(testEntry(t))
	require.NoError(t, err)

	require.NoError(t, s.DeleteEntry(id))

	_, err = s.EntryByID(id)
	require.ErrorIs(t, err, types.ErrNotFound)

	require.ErrorIs(t, s.DeleteEntry(id), types.ErrNotFound)
}

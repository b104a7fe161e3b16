// Unit tests for wildlife observation persistence, including the
// behaviour child relation.
package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentlandfirth/catchlog/pkg/types"
)

func testObservation(t *testing.T) *types.WildlifeObservation {
	t.Helper()
	o := &types.WildlifeObservation{
		Animal:    "Dolphin",
		Species:   "Common Dolphin",
		Num:       3,
		Date:      time.Date(2025, 7, 10, 11, 0, 0, 0, time.UTC),
		Behaviour: []string{"Feeding", "Breaching"},
		Notes:     "pod crossed ahead of the bow",
	}
	require.NoError(t, o.SetLatitude(57.1))
	require.NoError(t, o.SetLongitude(-2.1))
	return o
}

func TestUpsertObservationRoundTrip(t *testing.T) {
	s := setupStore(t)

	o := testObservation(t)
	id, err := s.UpsertObservation(o)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.ObservationByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Dolphin", got.Animal)
	assert.Equal(t, "Common Dolphin", got.Species)
	assert.Equal(t, 3, got.Num)
	assert.Equal(t, "pod crossed ahead of the bow", got.Notes)
	assert.ElementsMatch(t, []string{"Feeding", "Breaching"}, got.Behaviour)
}

func TestUpsertObservationRewritesBehaviours(t *testing.T) {
	s := setupStore(t)

	o := testObservation(t)
	id, err := s.UpsertObservation(o)
	require.NoError(t, err)

	o.Behaviour = []string{"Travelling"}
	_, err = s.UpsertObservation(o)
	require.NoError(t, err)

	got, err := s.ObservationByID(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Travelling"}, got.Behaviour,
		"the old behaviour set must be fully replaced")
}

func TestUpsertObservationWithoutBehaviours(t *testing.T) {
	s := setupStore(t)

	o := testObservation(t)
	o.Behaviour = nil
	id, err := s.UpsertObservation(o)
	require.NoError(t, err)

	got, err := s.ObservationByID(id)
	require.NoError(t, err)
	assert.Empty(t, got.Behaviour)
}

func TestUpsertObservationIgnoresCallerSubmitted(t *testing.T) {
	s := setupStore(t)

	o := testObservation(t)
	now := time.Now()
	o.SubmittedAt = &now
	id, err := s.UpsertObservation(o)
	require.NoError(t, err)

	got, err := s.ObservationByID(id)
	require.NoError(t, err)
	assert.False(t, got.Submitted())

	pending, err := s.Observations(Query{Unsubmitted: true})
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestUpsertObservationRejectsIncomplete(t *testing.T) {
	s := setupStore(t)

	o := testObservation(t)
	o.Animal = ""
	_, err := s.UpsertObservation(o)
	require.ErrorIs(t, err, types.ErrIncomplete)
}

func TestObservationUpdateMissingIDLeavesNothing(t *testing.T) {
	s := setupStore(t)

	o := testObservation(t)
	o.ID = 777
	_, err := s.UpsertObservation(o)
	require.NoError(t, err)

	all, err := s.Observations(Query{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

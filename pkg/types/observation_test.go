// Unit tests for wildlife observations and the animal catalogue.
package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObservationIsComplete(t *testing.T) {
	base := WildlifeObservation{
		Animal:    "Dolphin",
		Species:   "Common Dolphin",
		Num:       2,
		Date:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Behaviour: []string{"Bow-riding"},
	}
	assert.True(t, base.IsComplete())

	o := base
	o.Species = ""
	assert.False(t, o.IsComplete(), "needs a species or a description")

	o.Description = "grey dorsal fin, about 2m"
	assert.True(t, o.IsComplete(), "a description substitutes for a species")

	o = base
	o.Num = 0
	assert.False(t, o.IsComplete())

	o = base
	o.Behaviour = nil
	assert.False(t, o.IsComplete())

	o = base
	o.Date = time.Time{}
	assert.False(t, o.IsComplete())
}

func TestWildlifeSpecies(t *testing.T) {
	assert.Contains(t, WildlifeSpecies("Seal"), "Grey Seal")
	assert.Contains(t, WildlifeSpecies("  whale  "), "Minke Whale")
	assert.Empty(t, WildlifeSpecies("Kraken"))
}

func TestWildlifeCatalogues(t *testing.T) {
	animals := WildlifeAnimals()
	assert.NotEmpty(t, animals)
	for _, a := range animals {
		assert.NotEmpty(t, a.Name)
		assert.NotEmpty(t, a.Subspecies)
	}
	assert.Contains(t, WildlifeBehaviours(), "Feeding")
}

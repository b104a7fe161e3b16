package types

import (
	"strings"
	"time"
)

// WildlifeObservation is a sighting of marine wildlife during fishing
// activity. Behaviour holds zero or more tags from WildlifeBehaviours;
// the store keeps them in a child relation keyed by the observation id.
type WildlifeObservation struct {
	Record
	Location
	Animal      string    `json:"animal"`
	Species     string    `json:"species,omitempty"`
	Description string    `json:"description,omitempty"`
	Num         int       `json:"num"`
	Date        time.Time `json:"date"`
	Behaviour   []string  `json:"behaviour"`
	Notes       string    `json:"notes,omitempty"`
}

// IsComplete reports whether the observation has every field needed for
// submission. Either a species or a free-text description is required.
func (o *WildlifeObservation) IsComplete() bool {
	return o.Animal != "" &&
		(o.Species != "" || o.Description != "") &&
		o.Num > 0 &&
		!o.Date.IsZero() &&
		len(o.Behaviour) > 0
}

// DateString renders the observation date for display or export.
func (o *WildlifeObservation) DateString(local bool) string {
	return DateString(o.Date, local)
}

// Animal is a wildlife group with its recognisable subspecies.
type Animal struct {
	Name       string   `json:"name"`
	Subspecies []string `json:"subspecies"`
}

// WildlifeAnimals returns the animal groups offered when recording an
// observation.
func WildlifeAnimals() []Animal {
	return []Animal{
		{Name: "Seal", Subspecies: []string{"Harbour (Common) Seal", "Grey Seal"}},
		{Name: "Porpoise", Subspecies: []string{"Harbour Porpoise"}},
		{Name: "Dolphin", Subspecies: []string{
			"Bottlenose Dolphin",
			"Common Dolphin",
			"Risso's Dolphin",
			"White-beaked Dolphin",
			"Atlantic White-sided Dolphin",
			"Killer Whale (Orca)",
			"Pilot Whale",
		}},
		{Name: "Whale", Subspecies: []string{
			"Minke Whale",
			"Humpback Whale",
			"Sperm Whale",
			"Fin Whale",
			"Sei Whale",
		}},
		{Name: "Shark", Subspecies: []string{"Basking Shark", "Porbeagle Shark"}},
	}
}

// WildlifeSpecies returns the subspecies for an animal group, matching the
// group name case-insensitively. Unknown groups yield an empty list.
func WildlifeSpecies(animal string) []string {
	want := strings.ToLower(strings.TrimSpace(animal))
	for _, a := range WildlifeAnimals() {
		if strings.ToLower(strings.TrimSpace(a.Name)) == want {
			return a.Subspecies
		}
	}
	return []string{}
}

// WildlifeBehaviours returns the behaviour tags offered when recording an
// observation.
func WildlifeBehaviours() []string {
	return []string{
		"Approaching the vessel",
		"Feeding",
		"Interacting with fishing gear",
		"Bow-riding",
		"Breaching",
		"Travelling",
	}
}

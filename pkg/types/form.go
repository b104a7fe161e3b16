package types

import (
	"encoding/json"
	"time"
)

// Form holds the week-level details that head the activity form: vessel
// and owner identification, ports, and the reporting fishery office. It is
// kept as a single serialized blob in the settings store; the entries
// themselves live in their own table.
type Form struct {
	FisheryOffice    *FisheryOffice `json:"fisheryOffice,omitempty"`
	PLN              string         `json:"pln"`
	VesselName       string         `json:"vesselName"`
	OwnerMaster      string         `json:"ownerMaster"`
	Address          string         `json:"address"`
	PortOfDeparture  string         `json:"portOfDeparture"`
	PortOfLanding    string         `json:"portOfLanding"`
	TotalPotsFishing int            `json:"totalPotsFishing"`
	Comments         string         `json:"comments,omitempty"`
	WeekStart        *time.Time     `json:"weekStart,omitempty"`
}

// Serialize encodes the form for key-value storage.
func (f *Form) Serialize() (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DeserializeForm decodes a form previously stored with Serialize.
func DeserializeForm(serialized string) (*Form, error) {
	var f Form
	if err := json.Unmarshal([]byte(serialized), &f); err != nil {
		return nil, err
	}
	return &f, nil
}

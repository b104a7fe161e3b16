package types

import (
	"encoding/json"
	"time"
)

// ConsentSecondary groups the secondary-use consent checkboxes.
type ConsentSecondary struct {
	AgreeArchiving bool `json:"agreeArchiving"`
	AwareRisks     bool `json:"awareRisks"`
	AgreeTakePart  bool `json:"agreeTakePart"`
}

// ConsentPhotography groups the optional photography consent checkboxes.
// These are not required for the consent record to be complete.
type ConsentPhotography struct {
	AgreePhotoTaken     bool `json:"agreePhotoTaken"`
	AgreePhotoPublished bool `json:"agreePhotoPublished"`
	AgreePhotoFutureUse bool `json:"agreePhotoFutureUse"`
}

// Consent is the participant's research consent checklist. There is one
// logical consent record per user; it is stored as a serialized blob in
// the settings store and submitted at most once.
type Consent struct {
	UnderstoodSheet      bool               `json:"understoodSheet"`
	QuestionsOpportunity bool               `json:"questionsOpportunity"`
	QuestionsAnswered    bool               `json:"questionsAnswered"`
	UnderstandWithdrawal bool               `json:"understandWithdrawal"`
	UnderstandCoding     bool               `json:"understandCoding"`
	Secondary            ConsentSecondary   `json:"secondary"`
	Photography          ConsentPhotography `json:"photography"`
	Name                 string             `json:"name"`
	Date                 time.Time          `json:"date"`
}

// IsComplete reports whether every required consent box is ticked and the
// participant is named and dated. Photography consent is optional.
func (c *Consent) IsComplete() bool {
	return c.UnderstoodSheet &&
		c.QuestionsOpportunity &&
		c.QuestionsAnswered &&
		c.UnderstandWithdrawal &&
		c.UnderstandCoding &&
		c.Secondary.AgreeArchiving &&
		c.Secondary.AwareRisks &&
		c.Secondary.AgreeTakePart &&
		c.Name != "" &&
		!c.Date.IsZero()
}

// DateString renders the consent date for display.
func (c *Consent) DateString(local bool) string {
	return DateString(c.Date, local)
}

// Serialize encodes the consent record for key-value storage.
func (c *Consent) Serialize() (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DeserializeConsent decodes a consent record previously stored with
// Serialize.
func DeserializeConsent(serialized string) (*Consent, error) {
	var c Consent
	if err := json.Unmarshal([]byte(serialized), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

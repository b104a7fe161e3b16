// Unit tests for the consent checklist.
package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullConsent() Consent {
	return Consent{
		UnderstoodSheet:      true,
		QuestionsOpportunity: true,
		QuestionsAnswered:    true,
		UnderstandWithdrawal: true,
		UnderstandCoding:     true,
		Secondary: ConsentSecondary{
			AgreeArchiving: true,
			AwareRisks:     true,
			AgreeTakePart:  true,
		},
		Name: "A Fisher",
		Date: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestConsentIsComplete(t *testing.T) {
	c := fullConsent()
	assert.True(t, c.IsComplete())

	c = fullConsent()
	c.Secondary.AwareRisks = false
	assert.False(t, c.IsComplete())

	c = fullConsent()
	c.Name = ""
	assert.False(t, c.IsComplete())

	c = fullConsent()
	c.Date = time.Time{}
	assert.False(t, c.IsComplete())

	// Photography consent is optional either way.
	c = fullConsent()
	c.Photography = ConsentPhotography{AgreePhotoTaken: true}
	assert.True(t, c.IsComplete())
}

func TestConsentSerializeRoundTrip(t *testing.T) {
	c := fullConsent()
	c.Photography.AgreePhotoTaken = true

	serialized, err := c.Serialize()
	require.NoError(t, err)

	got, err := DeserializeConsent(serialized)
	require.NoError(t, err)
	assert.Equal(t, &c, got)
}

func TestDeserializeConsentRejectsGarbage(t *testing.T) {
	_, err := DeserializeConsent("{not json")
	require.Error(t, err)
}

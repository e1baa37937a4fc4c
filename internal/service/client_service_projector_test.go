package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-health-share/models"
)

func TestProject_RendersOnlyPresentFields(t *testing.T) {
	p := Project(models.PublicProfile{BloodType: ptr("O+")})

	assert.Equal(t, fallbackTitle, p.Title)
	require.Len(t, p.Lines, 1)
	assert.Equal(t, ProjectedLine{Field: models.FieldBloodType, Label: "Blood type", Value: "O+"}, p.Lines[0])
	assert.False(t, p.Empty)
	assert.False(t, p.EmergencyBanner)

	for _, line := range p.Lines {
		assert.NotEqual(t, models.FieldAllergies, line.Field)
		assert.NotEqual(t, models.FieldEmergencyContact, line.Field)
	}
}

func TestProject_FixedOrder(t *testing.T) {
	p := Project(models.PublicProfile{
		EmergencyContact:  &models.EmergencyContact{Name: "John Doe", Phone: "+100200300", Relationship: "spouse"},
		Allergies:         []string{"peanuts", "penicillin"},
		Name:              ptr("Jane Doe"),
		ChronicConditions: []string{},
	})

	require.Len(t, p.Lines, 4)
	assert.Equal(t, "Jane Doe", p.Title)
	assert.Equal(t, models.FieldFullName, p.Lines[0].Field)
	assert.Equal(t, "peanuts, penicillin", p.Lines[1].Value)
	assert.Equal(t, emptyListValue, p.Lines[2].Value)
	assert.Equal(t, "John Doe (spouse), +100200300", p.Lines[3].Value)
}

func TestProject_EmptyAndEmergency(t *testing.T) {
	p := Project(models.PublicProfile{})
	assert.True(t, p.Empty)
	assert.Empty(t, p.Lines)

	p = Project(models.PublicProfile{EmergencyMode: true})
	assert.True(t, p.Empty)
	assert.True(t, p.EmergencyBanner)
	assert.Equal(t, emergencyBanner, p.BannerText)
}

func TestFormatContact(t *testing.T) {
	assert.Equal(t, "+1", formatContact(models.EmergencyContact{Phone: "+1"}))
	assert.Equal(t, "John", formatContact(models.EmergencyContact{Name: "John"}))
	assert.Equal(t, "John, +1", formatContact(models.EmergencyContact{Name: "John", Phone: "+1"}))
}

package service

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-health-share/models"
)

const (
	fallbackTitle   = "Shared health profile"
	emergencyBanner = "EMERGENCY VIEW: only critical information is shown."
	emptyListValue  = "none listed"
)

var fieldLabels = map[models.FieldName]string{
	models.FieldFullName:          "Name",
	models.FieldProfilePicture:    "Photo",
	models.FieldDateOfBirth:       "Date of birth",
	models.FieldGender:            "Gender",
	models.FieldBloodType:         "Blood type",
	models.FieldAllergies:         "Allergies",
	models.FieldChronicConditions: "Chronic conditions",
	models.FieldEmergencyContact:  "Emergency contact",
}

// FieldLabel returns the display label of f.
func FieldLabel(f models.FieldName) string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return string(f)
}

// ProjectedLine is one rendered attribute.
type ProjectedLine struct {
	Field models.FieldName
	Label string
	Value string
}

// Projection is the display form of a received profile.
type Projection struct {
	Title string
	Lines []ProjectedLine

	// EmergencyBanner is set for payloads the server restricted to the
	// emergency allow-list.
	EmergencyBanner bool
	BannerText      string

	// Empty is set when the server sent no attribute at all.
	Empty bool
}

// Project renders exactly the attributes present in p, in the fixed order of
// [models.AllFields]. It does not filter and never fills in absent
// attributes.
func Project(p models.PublicProfile) Projection {
	out := Projection{Title: fallbackTitle}
	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		out.Title = *p.Name
	}
	if p.EmergencyMode {
		out.EmergencyBanner = true
		out.BannerText = emergencyBanner
	}

	for _, f := range models.AllFields {
		if !p.Has(f) {
			continue
		}
		out.Lines = append(out.Lines, ProjectedLine{
			Field: f,
			Label: FieldLabel(f),
			Value: fieldValue(p, f),
		})
	}
	out.Empty = len(out.Lines) == 0

	return out
}

func fieldValue(p models.PublicProfile, f models.FieldName) string {
	switch f {
	case models.FieldFullName:
		return *p.Name
	case models.FieldProfilePicture:
		return *p.ProfilePicture
	case models.FieldDateOfBirth:
		return *p.DateOfBirth
	case models.FieldGender:
		return *p.Gender
	case models.FieldBloodType:
		return *p.BloodType
	case models.FieldAllergies:
		return joinList(p.Allergies)
	case models.FieldChronicConditions:
		return joinList(p.ChronicConditions)
	case models.FieldEmergencyContact:
		return formatContact(*p.EmergencyContact)
	}
	return ""
}

func joinList(items []string) string {
	if len(items) == 0 {
		return emptyListValue
	}
	return strings.Join(items, ", ")
}

func formatContact(c models.EmergencyContact) string {
	name := c.Name
	if c.Relationship != "" {
		name = fmt.Sprintf("%s (%s)", c.Name, c.Relationship)
	}
	switch {
	case name == "":
		return c.Phone
	case c.Phone == "":
		return name
	}
	return name + ", " + c.Phone
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EmergencyContact is the person to notify on the owner's behalf.
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship,omitempty"`
}

// PublicProfile is the privacy-filtered payload served to a visitor.
//
// Every attribute is optional. A nil field means the backend did not send it,
// either because the owner withheld it or because it was never filled in.
// Both cases look the same to the client.
type PublicProfile struct {
	Name              *string           `json:"name,omitempty"`
	ProfilePicture    *string           `json:"profilePicture,omitempty"`
	DateOfBirth       *string           `json:"dateOfBirth,omitempty"`
	Gender            *string           `json:"gender,omitempty"`
	BloodType         *string           `json:"bloodType,omitempty"`
	Allergies         []string          `json:"allergies,omitempty"`
	ChronicConditions []string          `json:"chronicConditions,omitempty"`
	EmergencyContact  *EmergencyContact `json:"emergencyContact,omitempty"`

	// EmergencyMode marks a payload restricted to the critical-field list.
	EmergencyMode bool `json:"emergencyMode,omitempty"`
}

// Has reports whether the attribute f carries a value.
func (p PublicProfile) Has(f FieldName) bool {
	switch f {
	case FieldFullName:
		return p.Name != nil
	case FieldProfilePicture:
		return p.ProfilePicture != nil
	case FieldDateOfBirth:
		return p.DateOfBirth != nil
	case FieldGender:
		return p.Gender != nil
	case FieldBloodType:
		return p.BloodType != nil
	case FieldAllergies:
		return p.Allergies != nil
	case FieldChronicConditions:
		return p.ChronicConditions != nil
	case FieldEmergencyContact:
		return p.EmergencyContact != nil
	}
	return false
}

// Only returns a copy of p that keeps the attributes listed in fields and
// drops everything else. EmergencyMode is reset; callers set it explicitly.
func (p PublicProfile) Only(fields FieldSet) PublicProfile {
	var out PublicProfile
	for _, f := range fields {
		switch f {
		case FieldFullName:
			out.Name = p.Name
		case FieldProfilePicture:
			out.ProfilePicture = p.ProfilePicture
		case FieldDateOfBirth:
			out.DateOfBirth = p.DateOfBirth
		case FieldGender:
			out.Gender = p.Gender
		case FieldBloodType:
			out.BloodType = p.BloodType
		case FieldAllergies:
			out.Allergies = p.Allergies
		case FieldChronicConditions:
			out.ChronicConditions = p.ChronicConditions
		case FieldEmergencyContact:
			out.EmergencyContact = p.EmergencyContact
		}
	}
	return out
}

// Merge overwrites the attributes of p with every non-nil attribute of patch.
func (p PublicProfile) Merge(patch PublicProfile) PublicProfile {
	if patch.Name != nil {
		p.Name = patch.Name
	}
	if patch.ProfilePicture != nil {
		p.ProfilePicture = patch.ProfilePicture
	}
	if patch.DateOfBirth != nil {
		p.DateOfBirth = patch.DateOfBirth
	}
	if patch.Gender != nil {
		p.Gender = patch.Gender
	}
	if patch.BloodType != nil {
		p.BloodType = patch.BloodType
	}
	if patch.Allergies != nil {
		p.Allergies = patch.Allergies
	}
	if patch.ChronicConditions != nil {
		p.ChronicConditions = patch.ChronicConditions
	}
	if patch.EmergencyContact != nil {
		p.EmergencyContact = patch.EmergencyContact
	}
	return p
}

// OwnerProfile is the full server-side record behind a share handle.
type OwnerProfile struct {
	// UserID is the owner account.
	UserID int64

	// Username is the share handle visitors use to open the profile.
	Username string

	// Email receives one-time codes for otp-gated shares.
	Email string

	// Attributes hold every attribute the owner filled in, unfiltered.
	Attributes PublicProfile

	Share     SharePolicy
	Emergency EmergencyPolicy
}

// Settings returns the owner-facing view of the sharing configuration.
func (p OwnerProfile) Settings() ProfileSettings {
	return ProfileSettings{
		Username:        p.Username,
		IsPublicProfile: p.Share.IsPublic,
		ShareLinkSettings: ShareLinkSettings{
			AccessType:  p.Share.AccessType,
			HasPassword: p.Share.PasswordHash != "",
			ExpiresAt:   p.Share.ExpiresAt,
		},
		PublicFields:  p.Share.PublicFields,
		EmergencyMode: p.Emergency,
		Attributes:    p.Attributes,
	}
}

// TableName returns the name of the database table associated with the
// OwnerProfile model.
func (p OwnerProfile) TableName() string {
	return "profiles"
}

// ProfileSettings is returned by GET /api/profile and is what the owner
// client edits.
type ProfileSettings struct {
	Username          string            `json:"username"`
	IsPublicProfile   bool              `json:"isPublicProfile"`
	ShareLinkSettings ShareLinkSettings `json:"shareLinkSettings"`
	PublicFields      FieldSet          `json:"publicFields"`
	EmergencyMode     EmergencyPolicy   `json:"emergencyMode"`
	Attributes        PublicProfile     `json:"attributes"`
}

// EmergencyPolicyPatch is a partial update of [EmergencyPolicy]. Nil fields
// are left untouched.
type EmergencyPolicyPatch struct {
	Enabled          *bool     `json:"enabled,omitempty"`
	ShowCriticalOnly *bool     `json:"showCriticalOnly,omitempty"`
	CriticalFields   *FieldSet `json:"criticalFields,omitempty"`
}

// ProfileUpdate is the body of PUT /api/profile. Only non-nil parts are
// applied; everything else on the stored profile is preserved.
type ProfileUpdate struct {
	IsPublicProfile   *bool                   `json:"isPublicProfile,omitempty"`
	ShareLinkSettings *ShareLinkSettingsPatch `json:"shareLinkSettings,omitempty"`
	PublicFields      *FieldSet               `json:"publicFields,omitempty"`
	EmergencyMode     *EmergencyPolicyPatch   `json:"emergencyMode,omitempty"`

	// Attributes replace the stored attribute values that are non-nil.
	Attributes *PublicProfile `json:"attributes,omitempty"`
}

// Empty reports whether the update changes nothing.
func (u ProfileUpdate) Empty() bool {
	return u.IsPublicProfile == nil &&
		(u.ShareLinkSettings == nil || u.ShareLinkSettings.Empty()) &&
		u.PublicFields == nil &&
		u.EmergencyMode == nil &&
		u.Attributes == nil
}

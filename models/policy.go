// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// AccessType is the challenge a visitor must pass before a public profile is
// shown.
type AccessType string

const (
	// AccessPublic lets anyone holding the link view the profile.
	AccessPublic AccessType = "public"
	// AccessPassword requires the share password set by the owner.
	AccessPassword AccessType = "password"
	// AccessOTP requires a one-time code delivered to the owner's contact.
	AccessOTP AccessType = "otp"
)

// Valid reports whether a is one of the known access types.
func (a AccessType) Valid() bool {
	switch a {
	case AccessPublic, AccessPassword, AccessOTP:
		return true
	}
	return false
}

// RequiresChallenge reports whether visitors have to pass a challenge.
func (a AccessType) RequiresChallenge() bool {
	return a == AccessPassword || a == AccessOTP
}

// FieldName identifies a profile attribute that can be made public.
type FieldName string

const (
	FieldFullName          FieldName = "name"
	FieldProfilePicture    FieldName = "profilePicture"
	FieldDateOfBirth       FieldName = "dateOfBirth"
	FieldGender            FieldName = "gender"
	FieldBloodType         FieldName = "bloodType"
	FieldAllergies         FieldName = "allergies"
	FieldChronicConditions FieldName = "chronicConditions"
	FieldEmergencyContact  FieldName = "emergencyContact"
)

// AllFields lists every shareable attribute in display order.
var AllFields = []FieldName{
	FieldFullName,
	FieldProfilePicture,
	FieldDateOfBirth,
	FieldGender,
	FieldBloodType,
	FieldAllergies,
	FieldChronicConditions,
	FieldEmergencyContact,
}

// DefaultCriticalFields is the emergency allow-list used until the owner
// customises it.
var DefaultCriticalFields = FieldSet{
	FieldBloodType,
	FieldAllergies,
	FieldEmergencyContact,
	FieldChronicConditions,
}

// Valid reports whether f is a known attribute.
func (f FieldName) Valid() bool {
	return slices.Contains(AllFields, f)
}

// FieldSet is an ordered set of field names. It is serialised as a JSON array
// and keeps the order in which members were added.
type FieldSet []FieldName

// Has reports whether f is a member of the set.
func (s FieldSet) Has(f FieldName) bool {
	return slices.Contains(s, f)
}

// With returns a copy of the set that contains f.
func (s FieldSet) With(f FieldName) FieldSet {
	if s.Has(f) {
		return slices.Clone(s)
	}
	return append(slices.Clone(s), f)
}

// Without returns a copy of the set without f.
func (s FieldSet) Without(f FieldName) FieldSet {
	out := make(FieldSet, 0, len(s))
	for _, member := range s {
		if member != f {
			out = append(out, member)
		}
	}
	return out
}

// Validate returns an error naming the first unknown field in the set.
func (s FieldSet) Validate() error {
	for _, f := range s {
		if !f.Valid() {
			return fmt.Errorf("unknown field %q", f)
		}
	}
	return nil
}

// SharePolicy is the owner's share-link configuration as stored by the
// backend.
type SharePolicy struct {
	IsPublic     bool
	AccessType   AccessType
	PasswordHash string
	ExpiresAt    *time.Time
	PublicFields FieldSet
}

// Expired reports whether the policy expiry lies before now.
func (p SharePolicy) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && !p.ExpiresAt.After(now)
}

// Reachable reports whether a visitor may reach the profile by handle at all.
// An expired policy behaves as if IsPublic were false.
func (p SharePolicy) Reachable(now time.Time) bool {
	return p.IsPublic && !p.Expired(now)
}

// EmergencyPolicy is the alternate, more restrictive allow-list used for
// first-responder access.
type EmergencyPolicy struct {
	Enabled          bool     `json:"enabled"`
	ShowCriticalOnly bool     `json:"showCriticalOnly"`
	CriticalFields   FieldSet `json:"criticalFields"`
}

// ShareLinkSettings is the client-visible part of [SharePolicy]. The password
// hash never leaves the backend; HasPassword tells the owner whether one is
// stored.
type ShareLinkSettings struct {
	AccessType  AccessType `json:"accessType"`
	HasPassword bool       `json:"hasPassword"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// ShareLinkSettingsPatch is a partial update of the share-link settings.
//
// ExpiresAt is tri-state: untouched when ExpiresAtSet is false, cleared when
// ExpiresAtSet is true and ExpiresAt is nil, and replaced otherwise. It is
// encoded as an absent key, an explicit null and a timestamp respectively.
type ShareLinkSettingsPatch struct {
	AccessType   *AccessType
	Password     *string
	ExpiresAt    *time.Time
	ExpiresAtSet bool
}

// MarshalJSON implements [json.Marshaler].
func (p ShareLinkSettingsPatch) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 3)
	if p.AccessType != nil {
		out["accessType"] = *p.AccessType
	}
	if p.Password != nil {
		out["password"] = *p.Password
	}
	if p.ExpiresAtSet {
		if p.ExpiresAt == nil {
			out["expiresAt"] = nil
		} else {
			out["expiresAt"] = p.ExpiresAt.UTC().Format(time.RFC3339)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements [json.Unmarshaler].
func (p *ShareLinkSettingsPatch) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*p = ShareLinkSettingsPatch{}

	if v, ok := raw["accessType"]; ok {
		var at AccessType
		if err := json.Unmarshal(v, &at); err != nil {
			return fmt.Errorf("accessType: %w", err)
		}
		p.AccessType = &at
	}
	if v, ok := raw["password"]; ok {
		var pw string
		if err := json.Unmarshal(v, &pw); err != nil {
			return fmt.Errorf("password: %w", err)
		}
		p.Password = &pw
	}
	if v, ok := raw["expiresAt"]; ok {
		p.ExpiresAtSet = true
		var ts *time.Time
		if err := json.Unmarshal(v, &ts); err != nil {
			return fmt.Errorf("expiresAt: %w", err)
		}
		p.ExpiresAt = ts
	}

	return nil
}

// Empty reports whether the patch changes nothing.
func (p ShareLinkSettingsPatch) Empty() bool {
	return p.AccessType == nil && p.Password == nil && !p.ExpiresAtSet
}

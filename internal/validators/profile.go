package validators

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"
	"time"

	"github.com/MKhiriev/go-health-share/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldShareLinkSettings = "share_link_settings"
	FieldPublicFields      = "public_fields"
	FieldEmergencyMode     = "emergency_mode"
	FieldNotEmpty          = "not_empty"

	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldLogin    = "login"
)

const (
	minSharePasswordLength   = 4
	minAccountPasswordLength = 8
)

// usernameRe matches share handles: they end up in URLs.
var usernameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{1,31}$`)

// ProfileValidator implements [Validator] for owner-side payloads:
// models.ProfileUpdate, models.RegisterRequest and models.LoginRequest.
type ProfileValidator struct {
	now func() time.Time
}

// NewProfileValidator constructs a [ProfileValidator].
func NewProfileValidator() Validator {
	return &ProfileValidator{now: time.Now}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer forms
// are accepted. Returns ErrUnsupportedType for anything else.
func (v *ProfileValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ProfileUpdate:
		return v.validateProfileUpdate(ctx, value, fields...)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(ctx, *value, fields...)

	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateProfileUpdate validates a partial profile update. Absent parts of
// the update are not checked.
func (v *ProfileValidator) validateProfileUpdate(_ context.Context, u models.ProfileUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNotEmpty, FieldShareLinkSettings, FieldPublicFields, FieldEmergencyMode}
	}

	for _, f := range fields {
		switch f {
		case FieldNotEmpty:
			if u.Empty() {
				return ErrNoFieldsToUpdate
			}
		case FieldShareLinkSettings:
			if u.ShareLinkSettings == nil {
				continue
			}
			if err := v.validateShareLink(*u.ShareLinkSettings); err != nil {
				return err
			}
		case FieldPublicFields:
			if u.PublicFields == nil {
				continue
			}
			if err := validateFieldSet(*u.PublicFields); err != nil {
				return fmt.Errorf("publicFields: %w", err)
			}
		case FieldEmergencyMode:
			if u.EmergencyMode == nil || u.EmergencyMode.CriticalFields == nil {
				continue
			}
			critical := *u.EmergencyMode.CriticalFields
			if len(critical) == 0 {
				return ErrEmptyCriticalFields
			}
			if err := validateFieldSet(critical); err != nil {
				return fmt.Errorf("criticalFields: %w", err)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ProfileValidator) validateShareLink(p models.ShareLinkSettingsPatch) error {
	if p.AccessType != nil && !p.AccessType.Valid() {
		return ErrInvalidAccessType
	}
	// an empty password clears the stored one
	if p.Password != nil && *p.Password != "" && len(*p.Password) < minSharePasswordLength {
		return ErrPasswordTooShort
	}
	if p.ExpiresAtSet && p.ExpiresAt != nil && !p.ExpiresAt.After(v.now()) {
		return ErrExpiryInPast
	}
	return nil
}

func validateFieldSet(s models.FieldSet) error {
	seen := make(map[models.FieldName]struct{}, len(s))
	for _, f := range s {
		if !f.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidFieldName, f)
		}
		if _, dup := seen[f]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateFieldName, f)
		}
		seen[f] = struct{}{}
	}
	return nil
}

func (v *ProfileValidator) validateRegisterRequest(r models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if !usernameRe.MatchString(r.Username) {
				return ErrInvalidUsername
			}
		case FieldEmail:
			if _, err := mail.ParseAddress(r.Email); err != nil {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if len(r.Password) < minAccountPasswordLength {
				return ErrAccountPasswordLength
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ProfileValidator) validateLoginRequest(r models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if r.EmailOrPhone == "" {
				return ErrEmptyLogin
			}
		case FieldPassword:
			if r.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

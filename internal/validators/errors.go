package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrNoFieldsToUpdate      = errors.New("at least one field must be provided for update")
	ErrInvalidAccessType     = errors.New("invalid access type")
	ErrPasswordTooShort      = errors.New("share password is too short")
	ErrExpiryInPast          = errors.New("expiry date must be in the future")
	ErrInvalidFieldName      = errors.New("invalid field name")
	ErrDuplicateFieldName    = errors.New("duplicate field name")
	ErrEmptyCriticalFields   = errors.New("critical fields cannot be empty")
	ErrInvalidUsername       = errors.New("invalid username")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrAccountPasswordLength = errors.New("account password must be at least 8 characters")
	ErrEmptyLogin            = errors.New("login is required")
	ErrEmptyPassword         = errors.New("password is required")
)

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-health-share/models"
)

// Backend errors.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")
	ErrWrongOTP            = errors.New("wrong one-time code")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrEmailMismatch     = errors.New("email does not match the profile owner")
	ErrOTPDeliveryFailed = errors.New("one-time code delivery failed")
	ErrEmergencyDisabled = errors.New("emergency access is disabled")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Errors shared by the backend and the visitor client.
var (
	// ErrProfileNotShared is terminal: the handle is unknown, the profile is
	// not public, the link expired or its policy cannot be satisfied.
	ErrProfileNotShared = errors.New("profile is not shared")

	// ErrChallengeRequired is matched by [*ChallengeRequiredError].
	ErrChallengeRequired = errors.New("challenge required")

	// ErrOTPExpired means the code expired or ran out of attempts; a new one
	// has to be requested.
	ErrOTPExpired = errors.New("one-time code expired")

	// ErrOTPCooldown means a code was requested too recently.
	ErrOTPCooldown = errors.New("one-time code requested too recently")
)

// Visitor and owner client errors.
var (
	ErrCredentialRejected  = errors.New("credential rejected")
	ErrEmptyCredential     = errors.New("credential is empty")
	ErrNetwork             = errors.New("network error")
	ErrOTPAlreadyRequested = errors.New("one-time code already requested")
	ErrOTPNotRequested     = errors.New("one-time code was not requested")
	ErrNoChallenge         = errors.New("no challenge is pending")
	ErrRequestInFlight     = errors.New("a request is already in flight")
	ErrStaleResult         = errors.New("result belongs to a closed or restarted session")
	ErrSessionClosed       = errors.New("session is closed")

	ErrUpdateInFlight   = errors.New("an update of this setting is already in flight")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrUnknownPreset    = errors.New("unknown expiry preset")
	ErrNotLoaded        = errors.New("profile settings are not loaded")
	ErrNotAuthenticated = errors.New("owner is not logged in")
	ErrUsernameTaken    = errors.New("username or email already taken")
	ErrClipboard        = errors.New("clipboard is not available")
)

// ChallengeRequiredError tells the caller which challenge must be passed
// before the profile can be opened.
type ChallengeRequiredError struct {
	AccessType models.AccessType
}

func (e *ChallengeRequiredError) Error() string {
	return fmt.Sprintf("%s challenge required", e.AccessType)
}

// Is makes the error match [ErrChallengeRequired].
func (e *ChallengeRequiredError) Is(target error) bool {
	return target == ErrChallengeRequired
}

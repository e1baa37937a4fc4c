package adapter

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-health-share/models"
)

// Status sentinels. They are wrapped by [*RejectedError].
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

var (
	// ErrOTPExpired is wrapped when the backend reports code "otp_expired".
	ErrOTPExpired = errors.New("one-time code expired")

	// ErrOTPDeliveryFailed is wrapped when the backend reports code
	// "otp_delivery_failed". The challenge itself is still valid.
	ErrOTPDeliveryFailed = errors.New("one-time code delivery failed")

	// ErrTransport wraps connection failures and timeouts.
	ErrTransport = errors.New("transport error")

	// ErrDecode is returned for a 2xx answer whose body cannot be read.
	ErrDecode = errors.New("malformed response")

	// ErrMissingToken is returned when a successful exchange carries no token.
	ErrMissingToken = errors.New("response carries no token")
)

// RejectedError is a non-2xx answer of the backend.
type RejectedError struct {
	// Status is the HTTP status code.
	Status int
	// Code is the machine-readable reason from the envelope, if any.
	Code string
	// Message is the server's display string, if any.
	Message string
	// Err is the status sentinel.
	Err error
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("http %d: %v: %s", e.Status, e.Err, e.Message)
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

// AuthRequiredError means the profile exists but a challenge has to be passed
// first.
type AuthRequiredError struct {
	AccessType models.AccessType
	Message    string
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("profile requires %s access", e.AccessType)
}

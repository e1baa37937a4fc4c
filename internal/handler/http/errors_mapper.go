package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-health-share/internal/service"
	"github.com/MKhiriev/go-health-share/internal/store"
	"github.com/MKhiriev/go-health-share/models"
)

// errorResponse is how one error is reported to the client.
type errorResponse struct {
	target  error
	status  int
	code    string
	message string
}

// errorResponses is checked in order: several errors wrap more than one
// sentinel, and the first match wins.
var errorResponses = []errorResponse{
	{service.ErrProfileNotShared, http.StatusNotFound, "", "Profile not found or not public"},
	{service.ErrOTPExpired, http.StatusUnauthorized, models.CodeOTPExpired, "The code has expired. Request a new one."},
	{service.ErrOTPCooldown, http.StatusTooManyRequests, models.CodeOTPCooldown, "Please wait before requesting another code."},
	{service.ErrWrongOTP, http.StatusUnauthorized, "", "Incorrect code"},
	{service.ErrWrongPassword, http.StatusUnauthorized, "", "Invalid login or password"},
	{service.ErrEmailMismatch, http.StatusBadRequest, "", "The email does not match our records"},
	{service.ErrOTPDeliveryFailed, http.StatusBadGateway, models.CodeOTPDeliveryFailed, "The code could not be delivered. Try again later."},
	{service.ErrEmergencyDisabled, http.StatusForbidden, "", "Emergency access is disabled"},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, "", "Token is expired or invalid"},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, "", "Invalid data provided"},
	{service.ErrTokenCreationFailed, http.StatusInternalServerError, "", "Internal server error"},
	{store.ErrUsernameAlreadyExists, http.StatusConflict, "", "Username or email already taken"},
	{store.ErrProfileNotFound, http.StatusNotFound, "", "Profile not found"},
	{store.ErrNoUserWasFound, http.StatusNotFound, "", "User not found"},
	{errInvalidJSON, http.StatusBadRequest, "", "Invalid JSON was passed"},
	{errEmptyHandle, http.StatusNotFound, "", "Profile not found or not public"},
	{ErrNoUserInContext, http.StatusUnauthorized, "", "Unauthorized"},
	{errRouteNotFound, http.StatusNotFound, "", "Not found"},
}

// envelopeFromError builds the status and envelope reporting err. A pending
// challenge is reported as 401 with requiresAuth and the access type.
func envelopeFromError(err error) (int, models.Envelope[any]) {
	var challenge *service.ChallengeRequiredError
	if errors.As(err, &challenge) {
		return http.StatusUnauthorized, models.Envelope[any]{
			RequiresAuth: true,
			AccessType:   challenge.AccessType,
			Code:         models.CodeRequiresAuth,
			Message:      "This profile is protected",
		}
	}

	for _, r := range errorResponses {
		if errors.Is(err, r.target) {
			return r.status, models.Envelope[any]{Code: r.code, Message: r.message}
		}
	}

	return http.StatusInternalServerError, models.Envelope[any]{Message: "Internal server error"}
}

func statusFromError(err error) int {
	status, _ := envelopeFromError(err)
	return status
}

package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-health-share/models"
	"github.com/go-resty/resty/v2"
)

var statusSentinels = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusGone:                ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
	http.StatusServiceUnavailable:  ErrServiceUnavailable,
	http.StatusGatewayTimeout:      ErrBadGateway,
}

// mapHTTPError returns nil for a 2xx response and a typed error otherwise.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	env := peekEnvelope(resp.Body())

	if status == http.StatusUnauthorized && env.RequiresAuth {
		return &AuthRequiredError{AccessType: env.AccessType, Message: env.Message}
	}

	sentinel, ok := statusSentinels[status]
	if !ok {
		sentinel = ErrUnexpectedStatus
	}
	switch env.Code {
	case models.CodeOTPExpired:
		sentinel = ErrOTPExpired
	case models.CodeOTPDeliveryFailed:
		sentinel = ErrOTPDeliveryFailed
	}

	message := env.Message
	if message == "" && !looksLikeJSON(resp.Body()) {
		message = strings.TrimSpace(string(resp.Body()))
	}

	return &RejectedError{
		Status:  status,
		Code:    env.Code,
		Message: message,
		Err:     sentinel,
	}
}

// mapTransportError wraps a resty error so it matches [ErrTransport].
func mapTransportError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
}

// peekEnvelope decodes the envelope fields that do not depend on the data
// type. A body that is not an envelope yields the zero value.
func peekEnvelope(body []byte) models.Envelope[json.RawMessage] {
	var env models.Envelope[json.RawMessage]
	_ = json.Unmarshal(body, &env)
	return env
}

// decodeEnvelope decodes a 2xx body into an envelope carrying T.
func decodeEnvelope[T any](resp *resty.Response) (models.Envelope[T], error) {
	var env models.Envelope[T]
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return env, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return env, nil
}

func looksLikeJSON(body []byte) bool {
	trimmed := strings.TrimSpace(string(body))
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}

// IsRetryable reports whether err is worth retrying unchanged: transport
// failures and 5xx answers.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrTransport) {
		return true
	}
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Status >= http.StatusInternalServerError
	}
	return false
}

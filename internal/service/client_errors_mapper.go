// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-health-share/internal/adapter"
)

// mapAdapterError translates an adapter error into a client business error.
// The adapter error stays in the chain so [DisplayMessage] can still read the
// server's message.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	var authRequired *adapter.AuthRequiredError
	if errors.As(err, &authRequired) {
		return &ChallengeRequiredError{AccessType: authRequired.AccessType}
	}

	// a failed delivery is a 502 but leaves the challenge usable
	if errors.Is(err, adapter.ErrOTPDeliveryFailed) {
		return fmt.Errorf("%w: %w", ErrOTPDeliveryFailed, err)
	}

	if adapter.IsRetryable(err) {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	switch {
	case errors.Is(err, adapter.ErrOTPExpired):
		return fmt.Errorf("%w: %w", ErrOTPExpired, err)
	case errors.Is(err, adapter.ErrTooManyRequests):
		return fmt.Errorf("%w: %w", ErrOTPCooldown, err)
	case errors.Is(err, adapter.ErrNotFound), errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrProfileNotShared, err)
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrBadRequest):
		return fmt.Errorf("%w: %w", ErrCredentialRejected, err)
	case errors.Is(err, adapter.ErrConflict):
		return fmt.Errorf("%w: %w", ErrUsernameTaken, err)
	case errors.Is(err, adapter.ErrDecode), errors.Is(err, adapter.ErrMissingToken):
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	return err
}

// DisplayMessage returns the server's display string carried by err, or
// fallback when the server sent none.
func DisplayMessage(err error, fallback string) string {
	var rejected *adapter.RejectedError
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message
	}
	var authRequired *adapter.AuthRequiredError
	if errors.As(err, &authRequired) && authRequired.Message != "" {
		return authRequired.Message
	}
	return fallback
}

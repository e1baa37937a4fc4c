// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-health-share/internal/service"
)

// humanizeError turns a service error into a line for the status bar.
// Server display messages are preferred over the error chain.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrNetwork):
		return "No network or the server is unavailable"
	case errors.Is(err, service.ErrUpdateInFlight):
		return "Still saving the previous change"
	case errors.Is(err, service.ErrPasswordMismatch):
		return "Passwords do not match"
	case errors.Is(err, service.ErrUsernameTaken):
		return "Username or email already taken"
	case errors.Is(err, service.ErrClipboard):
		return "Clipboard is not available"
	}

	if msg := service.DisplayMessage(err, ""); msg != "" {
		return msg
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "No network or the server is unavailable"
	}

	return err.Error()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrNoUserInContext is returned by owner handlers reached without the
	// auth middleware.
	ErrNoUserInContext = errors.New("no authenticated user in request context")
)

// Errors produced while decoding requests.
var (
	errInvalidJSON = errors.New("invalid JSON was passed")
	errEmptyHandle = errors.New("empty profile handle")

	errRouteNotFound = errors.New("route not found")
)

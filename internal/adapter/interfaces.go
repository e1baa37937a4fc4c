// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the remote profile-sharing API.
//
// [ServerAdapter] decouples the client services from the wire protocol. The
// package ships a REST implementation built on resty ([NewHTTPServerAdapter]).
//
// Every non-2xx answer is returned as a [*RejectedError] that wraps one of
// the status sentinels from errors.go, so callers can use [errors.Is] with
// [ErrNotFound], [ErrUnauthorized] and friends, and [errors.As] to read the
// server's display message. A 401 that asks for a challenge is returned as
// [*AuthRequiredError] instead. Transport failures wrap [ErrTransport].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-health-share/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// PublicProfileAdapter covers the unauthenticated visitor endpoints. None of
// these calls carries the owner bearer token.
type PublicProfileAdapter interface {
	// GetPublicProfile fetches the profile behind handle. token is the
	// visitor access token and may be empty.
	GetPublicProfile(ctx context.Context, handle, token string) (models.PublicProfile, error)

	// GetEmergencyProfile fetches the emergency view of handle.
	GetEmergencyProfile(ctx context.Context, handle, token string) (models.PublicProfile, error)

	// VerifyPassword exchanges the share password for an access token.
	VerifyPassword(ctx context.Context, handle, password string) (string, error)

	// RequestOTP asks the backend to deliver a one-time code and returns the
	// server's display message. email may be empty.
	RequestOTP(ctx context.Context, handle, email string) (string, error)

	// VerifyOTP exchanges a one-time code for an access token.
	VerifyOTP(ctx context.Context, handle, code string) (string, error)
}

// OwnerAdapter covers the authenticated owner endpoints.
type OwnerAdapter interface {
	// SetToken stores the bearer token attached to every owner request.
	SetToken(token string)

	// Token returns the stored bearer token, or "" when none is set.
	Token() string

	// Register creates an owner account and stores the returned token.
	Register(ctx context.Context, req models.RegisterRequest) (models.LoginResponse, error)

	// Login authenticates an owner and stores the returned token.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

	// GetProfile returns the owner's sharing configuration.
	GetProfile(ctx context.Context) (models.ProfileSettings, error)

	// UpdateProfile sends a partial update and returns the stored result.
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.ProfileSettings, error)

	// TriggerSOS issues an emergency token for the owner's profile.
	TriggerSOS(ctx context.Context) (models.EmergencyAccess, error)

	// GetServerVersion returns the backend version string.
	GetServerVersion(ctx context.Context) (string, error)
}

// ServerAdapter is the full remote API.
type ServerAdapter interface {
	PublicProfileAdapter
	OwnerAdapter
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Envelope is the JSON wrapper every API response uses.
//
// Success is false for every error response. RequiresAuth together with
// AccessType tells the visitor client which challenge to show; Code carries a
// machine-readable reason such as [CodeOTPExpired].
type Envelope[T any] struct {
	Success      bool       `json:"success"`
	Data         T          `json:"data,omitempty"`
	Token        string     `json:"token,omitempty"`
	Message      string     `json:"message,omitempty"`
	Code         string     `json:"code,omitempty"`
	RequiresAuth bool       `json:"requiresAuth,omitempty"`
	AccessType   AccessType `json:"accessType,omitempty"`
}

// Error codes carried in [Envelope.Code].
const (
	CodeOTPExpired        = "otp_expired"
	CodeOTPCooldown       = "otp_cooldown"
	CodeOTPDeliveryFailed = "otp_delivery_failed"
	CodeRequiresAuth      = "requires_auth"
)

// VerifyPasswordRequest is the body of POST .../verify-password.
type VerifyPasswordRequest struct {
	Password string `json:"password"`
}

// RequestOTPRequest is the body of POST .../request-otp. Email is optional;
// when set it must match the owner's address.
type RequestOTPRequest struct {
	Email string `json:"email,omitempty"`
}

// VerifyOTPRequest is the body of POST .../verify-otp.
type VerifyOTPRequest struct {
	OTP string `json:"otp"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login. EmailOrPhone accepts the
// username as well.
type LoginRequest struct {
	EmailOrPhone string `json:"emailOrPhone"`
	Password     string `json:"password"`
}

// LoginResponse is the data part of a successful login or registration.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

// EmergencyAccess is returned by POST /api/emergency/sos. Token opens the
// emergency view of the owner's profile until ExpiresAt.
type EmergencyAccess struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

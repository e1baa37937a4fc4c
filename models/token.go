// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenScope tells what a token was issued for.
type TokenScope string

const (
	// ScopeSession authenticates an owner on /api/profile and friends.
	ScopeSession TokenScope = "session"
	// ScopeProfile opens a challenge-gated public profile.
	ScopeProfile TokenScope = "profile"
	// ScopeEmergency opens the emergency view of a profile.
	ScopeEmergency TokenScope = "emergency"
)

// AccessClaims is the claim set of every token the backend issues.
//
// For owner sessions the subject is the numeric user id. For profile and
// emergency tokens the subject is the profile handle and AccessType records
// the challenge that was passed, so a token stops working once the owner
// switches to another access type.
type AccessClaims struct {
	jwt.RegisteredClaims

	Scope      TokenScope `json:"scope"`
	AccessType AccessType `json:"access,omitempty"`
}

// Token wraps a JWT together with its parsed claims.
type Token struct {
	// Token is the underlying JWT. Only the compact form is meaningful
	// outside the server process.
	*jwt.Token `json:"-"`

	AccessClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// GetUserID parses the subject of a session token as a user id.
func (t *Token) GetUserID() (int64, error) {
	if t.Scope != ScopeSession {
		return 0, fmt.Errorf("token scope %q carries no user id", t.Scope)
	}

	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

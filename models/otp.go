// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// OTPChallenge is an issued one-time code for a profile handle. The code
// itself is never stored, only its keyed hash.
type OTPChallenge struct {
	Handle      string    `json:"handle"`
	CodeHash    string    `json:"codeHash"`
	Email       string    `json:"email"`
	RequestedAt time.Time `json:"requestedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Attempts    int       `json:"attempts"`
}

// Expired reports whether the code can no longer be redeemed at now.
func (c OTPChallenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// OTPMessage is what the notifier delivers to the owner's inbox.
type OTPMessage struct {
	Handle    string    `json:"handle"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

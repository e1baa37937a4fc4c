// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is a profile owner account.
type User struct {
	// UserID is the internal identifier of the account.
	UserID int64 `json:"id"`

	// Username is unique and doubles as the public share handle.
	Username string `json:"username"`

	// Email is unique and receives share OTP codes.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the account password. It never
	// leaves the server.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table associated with the
// User model.
func (u User) TableName() string {
	return "users"
}

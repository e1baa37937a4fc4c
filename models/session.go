// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AccessGrant is a visitor's proof of a passed challenge. It is scoped to one
// profile handle, lives in memory for the lifetime of a share screen, and is
// never persisted.
type AccessGrant struct {
	ProfileHandle string
	Token         string
}

// For reports whether the grant may be presented when opening handle.
func (g *AccessGrant) For(handle string) bool {
	return g != nil && g.Token != "" && g.ProfileHandle == handle
}

// OwnerSession is the authenticated owner context handed to owner-side
// screens and services.
type OwnerSession struct {
	UserID      int64
	Username    string
	AccessToken string
}

// Authenticated reports whether the session carries a token.
func (s *OwnerSession) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}

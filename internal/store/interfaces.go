// Package store holds the persistence layer: PostgreSQL repositories for
// owner accounts and profiles, Redis and in-memory stores for OTP
// challenges, and the client's SQLite credential store.
package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-health-share/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists owner accounts.
type UserRepository interface {
	// CreateUser stores a new account together with its default profile.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByLogin looks an account up by username or email.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// ProfileRepository persists profiles and their sharing policy.
type ProfileRepository interface {
	// GetProfileByUsername returns the profile behind a share handle.
	GetProfileByUsername(ctx context.Context, username string) (models.OwnerProfile, error)
	// GetProfileByUserID returns the profile of an owner.
	GetProfileByUserID(ctx context.Context, userID int64) (models.OwnerProfile, error)
	// UpdateProfile locks the owner's profile row, passes it to apply and
	// stores the result in the same transaction. Concurrent partial updates
	// of different fields therefore never overwrite each other.
	UpdateProfile(ctx context.Context, userID int64, apply func(*models.OwnerProfile) error) (models.OwnerProfile, error)
}

// OTPStore keeps issued one-time-code challenges until they expire.
type OTPStore interface {
	// SaveChallenge stores c under c.Handle, replacing any previous one.
	// The entry disappears after ttl.
	SaveChallenge(ctx context.Context, c models.OTPChallenge, ttl time.Duration) error
	// GetChallenge returns the live challenge for handle or
	// [ErrChallengeNotFound].
	GetChallenge(ctx context.Context, handle string) (models.OTPChallenge, error)
	// DeleteChallenge removes the challenge for handle. Deleting a missing
	// challenge is not an error.
	DeleteChallenge(ctx context.Context, handle string) error
}

// CredentialStore is the client key/value store for the owner session.
type CredentialStore interface {
	Put(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

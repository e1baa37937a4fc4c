package service

import (
	"context"

	"github.com/MKhiriev/go-health-share/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// PublicProfileService evaluates the share policy of a profile for a visitor.
type PublicProfileService interface {
	// GetPublicProfile returns the allow-listed attributes of handle.
	// token is the visitor access token and may be empty; when the policy
	// demands a challenge and the token does not satisfy it, the error is a
	// [*ChallengeRequiredError].
	GetPublicProfile(ctx context.Context, handle, token string) (models.PublicProfile, error)

	// GetEmergencyProfile returns the emergency projection of handle. token
	// must be an emergency token issued by SOS for the same handle.
	GetEmergencyProfile(ctx context.Context, handle, token string) (models.PublicProfile, error)
}

// ChallengeService exchanges visitor credentials for access tokens.
type ChallengeService interface {
	VerifyPassword(ctx context.Context, handle, password string) (models.Token, error)

	// RequestOTP issues a code, hands it to the notifier and returns a
	// display message for the visitor.
	RequestOTP(ctx context.Context, handle, email string) (string, error)

	VerifyOTP(ctx context.Context, handle, code string) (models.Token, error)
}

// ProfileService manages an owner's sharing configuration.
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (models.ProfileSettings, error)

	// UpdateProfile applies a partial update; everything the update does not
	// name is preserved.
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.ProfileSettings, error)

	// TriggerSOS issues an emergency token for the owner's profile.
	TriggerSOS(ctx context.Context, userID int64) (models.EmergencyAccess, error)
}

// AuthService registers and authenticates owners.
type AuthService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService reports build information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

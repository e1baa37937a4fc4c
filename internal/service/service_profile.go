package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/store"
	"github.com/MKhiriev/go-health-share/internal/utils"
	"github.com/MKhiriev/go-health-share/models"
)

type profileService struct {
	profiles store.ProfileRepository

	tokenSignKey           string
	tokenIssuer            string
	emergencyTokenDuration time.Duration

	hashPassword func(string) (string, error)
	logger       *logger.Logger
}

// NewProfileService constructs a [ProfileService].
func NewProfileService(profiles store.ProfileRepository, cfg config.App, logger *logger.Logger) ProfileService {
	return &profileService{
		profiles:               profiles,
		tokenSignKey:           cfg.TokenSignKey,
		tokenIssuer:            cfg.TokenIssuer,
		emergencyTokenDuration: cfg.EmergencyTokenDuration,
		hashPassword:           utils.HashPassword,
		logger:                 logger,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID int64) (models.ProfileSettings, error) {
	profile, err := s.profiles.GetProfileByUserID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("error loading profile")
		return models.ProfileSettings{}, err
	}
	return profile.Settings(), nil
}

// UpdateProfile hashes a new share password outside the row lock and then
// applies the update inside the repository transaction.
func (s *profileService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.ProfileSettings, error) {
	log := logger.FromContext(ctx).With().Str("func", "*profileService.UpdateProfile").Int64("user_id", userID).Logger()

	var passwordHash *string
	if link := update.ShareLinkSettings; link != nil && link.Password != nil {
		hash := ""
		if *link.Password != "" {
			var err error
			if hash, err = s.hashPassword(*link.Password); err != nil {
				return models.ProfileSettings{}, fmt.Errorf("error hashing share password: %w", err)
			}
		}
		passwordHash = &hash
	}

	updated, err := s.profiles.UpdateProfile(ctx, userID, func(p *models.OwnerProfile) error {
		applyUpdate(p, update, passwordHash)
		return nil
	})
	if err != nil {
		log.Err(err).Msg("error updating profile")
		return models.ProfileSettings{}, err
	}

	log.Info().
		Bool("is_public", updated.Share.IsPublic).
		Str("access_type", string(updated.Share.AccessType)).
		Msg("profile sharing updated")
	return updated.Settings(), nil
}

// applyUpdate merges the non-nil parts of u into p. Switching the access type
// keeps the stored password; turning the profile private keeps the fields
// and the access type.
func applyUpdate(p *models.OwnerProfile, u models.ProfileUpdate, passwordHash *string) {
	if u.IsPublicProfile != nil {
		p.Share.IsPublic = *u.IsPublicProfile
	}

	if link := u.ShareLinkSettings; link != nil {
		if link.AccessType != nil {
			p.Share.AccessType = *link.AccessType
		}
		if passwordHash != nil {
			p.Share.PasswordHash = *passwordHash
		}
		if link.ExpiresAtSet {
			p.Share.ExpiresAt = link.ExpiresAt
		}
	}

	if u.PublicFields != nil {
		p.Share.PublicFields = *u.PublicFields
	}

	if e := u.EmergencyMode; e != nil {
		if e.Enabled != nil {
			p.Emergency.Enabled = *e.Enabled
		}
		if e.ShowCriticalOnly != nil {
			p.Emergency.ShowCriticalOnly = *e.ShowCriticalOnly
		}
		if e.CriticalFields != nil {
			p.Emergency.CriticalFields = *e.CriticalFields
		}
	}

	if u.Attributes != nil {
		p.Attributes = p.Attributes.Merge(*u.Attributes)
	}
}

func (s *profileService) TriggerSOS(ctx context.Context, userID int64) (models.EmergencyAccess, error) {
	log := logger.FromContext(ctx)

	profile, err := s.profiles.GetProfileByUserID(ctx, userID)
	if err != nil {
		return models.EmergencyAccess{}, err
	}

	if !profile.Emergency.Enabled {
		return models.EmergencyAccess{}, ErrEmergencyDisabled
	}

	token, err := utils.GenerateJWTToken(s.tokenIssuer, models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: profile.Username},
		Scope:            models.ScopeEmergency,
	}, s.emergencyTokenDuration, s.tokenSignKey)
	if err != nil {
		return models.EmergencyAccess{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	log.Warn().Int64("user_id", userID).Str("handle", profile.Username).Msg("SOS triggered")
	return models.EmergencyAccess{Token: token.SignedString, ExpiresAt: token.ExpiresAt.Time}, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/store"
	"github.com/MKhiriev/go-health-share/internal/utils"
	"github.com/MKhiriev/go-health-share/models"
)

// publicProfileService is the policy enforcement point for visitors. It never
// returns an attribute outside the allow-list of the current policy.
type publicProfileService struct {
	profiles store.ProfileRepository

	tokenSignKey string
	tokenIssuer  string

	now    func() time.Time
	logger *logger.Logger
}

// NewPublicProfileService constructs a [PublicProfileService].
func NewPublicProfileService(profiles store.ProfileRepository, cfg config.App, logger *logger.Logger) PublicProfileService {
	return &publicProfileService{
		profiles:     profiles,
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		now:          time.Now,
		logger:       logger,
	}
}

func (s *publicProfileService) GetPublicProfile(ctx context.Context, handle, token string) (models.PublicProfile, error) {
	profile, err := loadSharedProfile(ctx, s.profiles, handle, s.now())
	if err != nil {
		return models.PublicProfile{}, err
	}

	accessType := profile.Share.AccessType
	if accessType.RequiresChallenge() {
		if token == "" {
			return models.PublicProfile{}, &ChallengeRequiredError{AccessType: accessType}
		}

		parsed, err := utils.ValidateAndParseJWTToken(token, s.tokenSignKey, s.tokenIssuer, models.ScopeProfile)
		if err != nil || parsed.Subject != profile.Username || parsed.AccessType != accessType {
			logger.FromContext(ctx).Debug().Err(err).Str("handle", handle).Msg("visitor token rejected")
			return models.PublicProfile{}, &ChallengeRequiredError{AccessType: accessType}
		}
	}

	return profile.Attributes.Only(profile.Share.PublicFields), nil
}

func (s *publicProfileService) GetEmergencyProfile(ctx context.Context, handle, token string) (models.PublicProfile, error) {
	log := logger.FromContext(ctx)

	profile, err := s.profiles.GetProfileByUsername(ctx, handle)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return models.PublicProfile{}, ErrProfileNotShared
		}
		return models.PublicProfile{}, fmt.Errorf("error loading profile: %w", err)
	}

	if !profile.Emergency.Enabled {
		log.Debug().Str("handle", handle).Msg("emergency access disabled")
		return models.PublicProfile{}, ErrProfileNotShared
	}

	parsed, err := utils.ValidateAndParseJWTToken(token, s.tokenSignKey, s.tokenIssuer, models.ScopeEmergency)
	if err != nil || parsed.Subject != profile.Username {
		log.Debug().Err(err).Str("handle", handle).Msg("emergency token rejected")
		return models.PublicProfile{}, ErrTokenIsExpiredOrInvalid
	}

	return emergencyView(profile), nil
}

// emergencyView projects the critical fields, or every attribute when the
// owner turned the critical-only restriction off.
func emergencyView(p models.OwnerProfile) models.PublicProfile {
	fields := models.FieldSet(models.AllFields)
	if p.Emergency.ShowCriticalOnly {
		fields = p.Emergency.CriticalFields
		if len(fields) == 0 {
			fields = models.DefaultCriticalFields
		}
	}

	view := p.Attributes.Only(fields)
	view.EmergencyMode = true
	return view
}

// loadSharedProfile returns the profile behind handle if a visitor may reach
// it at now. Unknown, private, expired and inconsistent profiles all come
// back as [ErrProfileNotShared].
func loadSharedProfile(ctx context.Context, profiles store.ProfileRepository, handle string, now time.Time) (models.OwnerProfile, error) {
	log := logger.FromContext(ctx)

	profile, err := profiles.GetProfileByUsername(ctx, handle)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return models.OwnerProfile{}, ErrProfileNotShared
		}
		log.Err(err).Str("func", "loadSharedProfile").Msg("error loading profile")
		return models.OwnerProfile{}, fmt.Errorf("error loading profile: %w", err)
	}

	if !profile.Share.Reachable(now) {
		log.Debug().Str("handle", handle).Msg("profile is private or expired")
		return models.OwnerProfile{}, ErrProfileNotShared
	}

	if !policySatisfiable(profile) {
		log.Warn().Str("handle", handle).Str("access_type", string(profile.Share.AccessType)).
			Msg("share policy cannot be satisfied, serving as not shared")
		return models.OwnerProfile{}, ErrProfileNotShared
	}

	return profile, nil
}

// policySatisfiable reports whether a visitor could ever pass the policy:
// password needs a stored hash and otp needs an owner email.
func policySatisfiable(p models.OwnerProfile) bool {
	switch p.Share.AccessType {
	case models.AccessPublic:
		return true
	case models.AccessPassword:
		return p.Share.PasswordHash != ""
	case models.AccessOTP:
		return p.Email != ""
	}
	return false
}

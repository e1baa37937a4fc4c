package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/notify"
	"github.com/MKhiriev/go-health-share/internal/store"
	"github.com/MKhiriev/go-health-share/internal/utils"
	"github.com/MKhiriev/go-health-share/models"
)

// challengeService verifies visitor credentials against the share policy
// and issues profile-scoped tokens.
//
// OTP codes are stored only as an HMAC keyed with the token signing key. A
// challenge lives for otpTTL, can be re-issued after otpCooldown and is
// burnt after otpMaxAttempts wrong codes.
type challengeService struct {
	profiles store.ProfileRepository
	otps     store.OTPStore
	notifier notify.Notifier

	tokenSignKey        string
	tokenIssuer         string
	accessTokenDuration time.Duration

	otpTTL         time.Duration
	otpCooldown    time.Duration
	otpMaxAttempts int
	otpLength      int

	now         func() time.Time
	generateOTP func(length int) (string, error)
	logger      *logger.Logger
}

// NewChallengeService constructs a [ChallengeService].
func NewChallengeService(profiles store.ProfileRepository, otps store.OTPStore, notifier notify.Notifier, app config.App, share config.Share, logger *logger.Logger) ChallengeService {
	return &challengeService{
		profiles:            profiles,
		otps:                otps,
		notifier:            notifier,
		tokenSignKey:        app.TokenSignKey,
		tokenIssuer:         app.TokenIssuer,
		accessTokenDuration: app.AccessTokenDuration,
		otpTTL:              share.OTPTTL,
		otpCooldown:         share.OTPResendCooldown,
		otpMaxAttempts:      share.OTPMaxAttempts,
		otpLength:           share.OTPLength,
		now:                 time.Now,
		generateOTP:         utils.GenerateOTP,
		logger:              logger,
	}
}

func (s *challengeService) VerifyPassword(ctx context.Context, handle, password string) (models.Token, error) {
	log := logger.FromContext(ctx)

	profile, err := s.challengedProfile(ctx, handle, models.AccessPassword)
	if err != nil {
		return models.Token{}, err
	}

	if password == "" {
		return models.Token{}, ErrInvalidDataProvided
	}

	if !utils.CheckPassword(profile.Share.PasswordHash, password) {
		log.Info().Str("handle", handle).Msg("wrong share password")
		return models.Token{}, ErrWrongPassword
	}

	return s.issueToken(profile, models.AccessPassword)
}

func (s *challengeService) RequestOTP(ctx context.Context, handle, email string) (string, error) {
	log := logger.FromContext(ctx).With().Str("func", "*challengeService.RequestOTP").Str("handle", handle).Logger()

	profile, err := s.challengedProfile(ctx, handle, models.AccessOTP)
	if err != nil {
		return "", err
	}

	if email != "" && !strings.EqualFold(strings.TrimSpace(email), profile.Email) {
		return "", ErrEmailMismatch
	}

	now := s.now()

	existing, err := s.otps.GetChallenge(ctx, profile.Username)
	switch {
	case err == nil:
		if now.Sub(existing.RequestedAt) < s.otpCooldown {
			return "", ErrOTPCooldown
		}
	case !errors.Is(err, store.ErrChallengeNotFound):
		log.Err(err).Msg("error reading otp challenge")
		return "", fmt.Errorf("error reading otp challenge: %w", err)
	}

	code, err := s.generateOTP(s.otpLength)
	if err != nil {
		return "", fmt.Errorf("error generating otp: %w", err)
	}

	challenge := models.OTPChallenge{
		Handle:      profile.Username,
		CodeHash:    utils.HashString(code, s.tokenSignKey),
		Email:       profile.Email,
		RequestedAt: now,
		ExpiresAt:   now.Add(s.otpTTL),
	}
	if err = s.otps.SaveChallenge(ctx, challenge, s.otpTTL); err != nil {
		log.Err(err).Msg("error saving otp challenge")
		return "", fmt.Errorf("error saving otp challenge: %w", err)
	}

	err = s.notifier.SendOTP(ctx, models.OTPMessage{
		Handle:    profile.Username,
		Email:     profile.Email,
		Code:      code,
		ExpiresAt: challenge.ExpiresAt,
	})
	if err != nil {
		log.Err(err).Msg("error delivering otp")
		_ = s.otps.DeleteChallenge(ctx, profile.Username)
		return "", fmt.Errorf("%w: %w", ErrOTPDeliveryFailed, err)
	}

	log.Info().Time("expires_at", challenge.ExpiresAt).Msg("otp issued")
	return fmt.Sprintf("A one-time code was sent to %s", maskEmail(profile.Email)), nil
}

func (s *challengeService) VerifyOTP(ctx context.Context, handle, code string) (models.Token, error) {
	log := logger.FromContext(ctx).With().Str("func", "*challengeService.VerifyOTP").Str("handle", handle).Logger()

	profile, err := s.challengedProfile(ctx, handle, models.AccessOTP)
	if err != nil {
		return models.Token{}, err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return models.Token{}, ErrInvalidDataProvided
	}

	challenge, err := s.otps.GetChallenge(ctx, profile.Username)
	if errors.Is(err, store.ErrChallengeNotFound) {
		return models.Token{}, ErrOTPExpired
	}
	if err != nil {
		log.Err(err).Msg("error reading otp challenge")
		return models.Token{}, fmt.Errorf("error reading otp challenge: %w", err)
	}

	now := s.now()
	if challenge.Expired(now) {
		_ = s.otps.DeleteChallenge(ctx, profile.Username)
		return models.Token{}, ErrOTPExpired
	}

	if !utils.EqualHash(utils.HashString(code, s.tokenSignKey), challenge.CodeHash) {
		challenge.Attempts++
		if challenge.Attempts >= s.otpMaxAttempts {
			log.Info().Int("attempts", challenge.Attempts).Msg("otp attempts exhausted")
			_ = s.otps.DeleteChallenge(ctx, profile.Username)
			return models.Token{}, ErrOTPExpired
		}

		if err = s.otps.SaveChallenge(ctx, challenge, challenge.ExpiresAt.Sub(now)); err != nil {
			log.Err(err).Msg("error saving otp attempts")
		}
		return models.Token{}, ErrWrongOTP
	}

	if err = s.otps.DeleteChallenge(ctx, profile.Username); err != nil {
		log.Err(err).Msg("error deleting redeemed otp")
	}

	return s.issueToken(profile, models.AccessOTP)
}

// challengedProfile loads a reachable profile and checks that it is guarded by
// want. Exchanging a credential for the wrong challenge is a bad request.
func (s *challengeService) challengedProfile(ctx context.Context, handle string, want models.AccessType) (models.OwnerProfile, error) {
	profile, err := loadSharedProfile(ctx, s.profiles, handle, s.now())
	if err != nil {
		return models.OwnerProfile{}, err
	}
	if profile.Share.AccessType != want {
		return models.OwnerProfile{}, ErrInvalidDataProvided
	}
	return profile, nil
}

func (s *challengeService) issueToken(profile models.OwnerProfile, accessType models.AccessType) (models.Token, error) {
	token, err := utils.GenerateJWTToken(s.tokenIssuer, models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: profile.Username},
		Scope:            models.ScopeProfile,
		AccessType:       accessType,
	}, s.accessTokenDuration, s.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token, nil
}

// maskEmail keeps the first character of the local part and the domain.
func maskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "your email"
	}
	return email[:1] + strings.Repeat("*", max(at-1, 3)) + email[at:]
}

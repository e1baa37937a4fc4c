package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-health-share/internal/adapter"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/models"
)

type challengeResolver struct {
	adapter adapter.PublicProfileAdapter
	logger  *logger.Logger
}

// NewChallengeResolver constructs a [ChallengeResolver]. It keeps no state:
// the OTP step lives in [ShareSession].
func NewChallengeResolver(publicAdapter adapter.PublicProfileAdapter, logger *logger.Logger) ChallengeResolver {
	return &challengeResolver{adapter: publicAdapter, logger: logger}
}

func (r *challengeResolver) VerifyPassword(ctx context.Context, handle, password string) (models.AccessGrant, error) {
	if password == "" {
		return models.AccessGrant{}, ErrEmptyCredential
	}

	token, err := r.adapter.VerifyPassword(ctx, handle, password)
	if err != nil {
		logger.FromContextOr(ctx, r.logger).Debug().Err(err).Str("handle", handle).Msg("password exchange failed")
		return models.AccessGrant{}, mapAdapterError(err)
	}

	return models.AccessGrant{ProfileHandle: handle, Token: token}, nil
}

func (r *challengeResolver) RequestOTP(ctx context.Context, handle, email string) (string, error) {
	message, err := r.adapter.RequestOTP(ctx, handle, strings.TrimSpace(email))
	if err != nil {
		logger.FromContextOr(ctx, r.logger).Debug().Err(err).Str("handle", handle).Msg("otp request failed")
		return "", mapAdapterError(err)
	}

	return message, nil
}

func (r *challengeResolver) VerifyOTP(ctx context.Context, handle, code string) (models.AccessGrant, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.AccessGrant{}, ErrEmptyCredential
	}

	token, err := r.adapter.VerifyOTP(ctx, handle, code)
	if err != nil {
		logger.FromContextOr(ctx, r.logger).Debug().Err(err).Str("handle", handle).Msg("otp exchange failed")
		return models.AccessGrant{}, mapAdapterError(err)
	}

	return models.AccessGrant{ProfileHandle: handle, Token: token}, nil
}

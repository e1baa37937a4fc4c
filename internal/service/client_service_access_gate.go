package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-health-share/internal/adapter"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/models"
)

// Display strings used when the server sent none. They never name the
// policy that caused the failure.
const (
	msgProfileUnavailable = "This profile is not available."
	msgNetworkFailure     = "Could not reach the server. Check your connection and try again."
	msgInconsistent       = "The profile could not be opened. Please try again later."
)

// FailureKind classifies a failed resolve.
type FailureKind int

const (
	// FailureNotShared is terminal: unknown handle, private or expired link.
	FailureNotShared FailureKind = iota + 1
	// FailureNetwork is retryable: transport error, timeout or 5xx.
	FailureNetwork
	// FailureInconsistent means the server asked for the same challenge
	// again right after it was passed.
	FailureInconsistent
)

func (k FailureKind) String() string {
	switch k {
	case FailureNotShared:
		return "not_shared"
	case FailureNetwork:
		return "network"
	case FailureInconsistent:
		return "inconsistent"
	}
	return "unknown"
}

// Retryable reports whether retrying the resolve can help.
func (k FailureKind) Retryable() bool {
	return k == FailureNetwork || k == FailureInconsistent
}

// Outcome is the result of [AccessGate.Resolve]: one of [ViewingOutcome],
// [ChallengeOutcome] or [FailedOutcome].
type Outcome interface {
	outcome()
}

// ViewingOutcome carries the profile exactly as the server sent it.
type ViewingOutcome struct {
	Profile models.PublicProfile
}

// ChallengeOutcome asks the visitor to pass AccessType first.
type ChallengeOutcome struct {
	AccessType models.AccessType
}

// FailedOutcome carries a display message that is safe to show.
type FailedOutcome struct {
	Kind    FailureKind
	Message string
}

func (ViewingOutcome) outcome()   {}
func (ChallengeOutcome) outcome() {}
func (FailedOutcome) outcome()    {}

type accessGate struct {
	adapter adapter.PublicProfileAdapter
	logger  *logger.Logger
}

// NewAccessGate constructs an [AccessGate] on top of the visitor endpoints.
func NewAccessGate(publicAdapter adapter.PublicProfileAdapter, logger *logger.Logger) AccessGate {
	return &accessGate{adapter: publicAdapter, logger: logger}
}

func (g *accessGate) Resolve(ctx context.Context, handle, token string) Outcome {
	profile, err := g.adapter.GetPublicProfile(ctx, handle, token)
	return g.outcome(ctx, handle, profile, err)
}

func (g *accessGate) ResolveEmergency(ctx context.Context, handle, token string) Outcome {
	profile, err := g.adapter.GetEmergencyProfile(ctx, handle, token)
	return g.outcome(ctx, handle, profile, err)
}

func (g *accessGate) outcome(ctx context.Context, handle string, profile models.PublicProfile, err error) Outcome {
	if err == nil {
		return ViewingOutcome{Profile: profile}
	}

	log := logger.FromContextOr(ctx, g.logger).With().Str("handle", handle).Logger()
	mapped := mapAdapterError(err)

	var challenge *ChallengeRequiredError
	if errors.As(mapped, &challenge) {
		if !challenge.AccessType.RequiresChallenge() {
			log.Warn().Str("access_type", string(challenge.AccessType)).Msg("server asked for an unknown challenge")
			return FailedOutcome{Kind: FailureInconsistent, Message: msgInconsistent}
		}
		return ChallengeOutcome{AccessType: challenge.AccessType}
	}

	if errors.Is(mapped, ErrNetwork) {
		log.Warn().Err(err).Msg("profile fetch failed")
		return FailedOutcome{Kind: FailureNetwork, Message: DisplayMessage(err, msgNetworkFailure)}
	}

	log.Info().Err(err).Msg("profile is not available")
	return FailedOutcome{Kind: FailureNotShared, Message: DisplayMessage(err, msgProfileUnavailable)}
}

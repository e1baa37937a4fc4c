package service

import (
	"context"

	"github.com/MKhiriev/go-health-share/models"
)

// AccessGate decides whether a visitor sees a profile or a challenge.
// Resolve only issues GET requests, so calling it twice with the same inputs
// yields the same outcome class.
type AccessGate interface {
	// Resolve fetches the public profile of handle. token is the access
	// token of the current grant and may be empty.
	Resolve(ctx context.Context, handle, token string) Outcome

	// ResolveEmergency fetches the emergency view of handle with an SOS
	// token.
	ResolveEmergency(ctx context.Context, handle, token string) Outcome
}

// ChallengeResolver exchanges a visitor credential for an access grant.
//
// Errors match [ErrEmptyCredential] for input refused locally,
// [ErrCredentialRejected] or [ErrOTPExpired] for recoverable rejections,
// [ErrProfileNotShared] for terminal ones and [ErrNetwork] for transport
// failures.
type ChallengeResolver interface {
	VerifyPassword(ctx context.Context, handle, password string) (models.AccessGrant, error)

	// RequestOTP asks the backend to send a code and returns its display
	// message. email may be empty, in which case the owner's registered
	// contact is used.
	RequestOTP(ctx context.Context, handle, email string) (string, error)

	VerifyOTP(ctx context.Context, handle, code string) (models.AccessGrant, error)
}

// ProfileConfigurator edits the owner's share policy. Every setter applies
// its change to the local snapshot at once, sends an independent partial
// update and reverts the change when the backend rejects it. A rejected
// update is reported as [*PolicyUpdateError]; a setter called while the same
// setting is still in flight fails with [ErrUpdateInFlight].
type ProfileConfigurator interface {
	// Load fetches the owner's settings and replaces the local snapshot.
	Load(ctx context.Context) (models.ProfileSettings, error)

	// Snapshot returns a copy of the local view, optimistic changes included.
	Snapshot() (models.ProfileSettings, error)

	SetPublic(ctx context.Context, public bool) error
	SetAccessType(ctx context.Context, accessType models.AccessType) error

	// SetPassword stores a new share password. An empty password clears
	// the stored one.
	SetPassword(ctx context.Context, password, confirm string) error

	SetExpiry(ctx context.Context, preset ExpiryPreset) error
	TogglePublicField(ctx context.Context, field models.FieldName) error
	SetEmergencyEnabled(ctx context.Context, enabled bool) error
	SetShowCriticalOnly(ctx context.Context, criticalOnly bool) error
	ToggleCriticalField(ctx context.Context, field models.FieldName) error

	// TriggerSOS issues an emergency token for the owner's profile.
	TriggerSOS(ctx context.Context) (models.EmergencyAccess, error)
}

// ShareLinkService builds and distributes the owner's share link.
type ShareLinkService interface {
	ShareURL(username string) string

	// CopyShareLink copies the share link to the system clipboard and
	// returns it.
	CopyShareLink(username string) (string, error)

	// ShareQR renders the share link as a terminal QR code.
	ShareQR(username string) (string, error)

	// EmergencyURL builds the first-responder link for an SOS token.
	EmergencyURL(username, token string) string
}

// ClientAuthService logs the owner in and keeps the session credential in
// the local credential store.
type ClientAuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.OwnerSession, error)
	Login(ctx context.Context, req models.LoginRequest) (models.OwnerSession, error)

	// Restore loads a stored session and checks it against the backend.
	// It fails with [ErrNotAuthenticated] when there is no usable session.
	Restore(ctx context.Context) (models.OwnerSession, error)

	Logout(ctx context.Context) error
}

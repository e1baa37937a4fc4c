package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/models"
)

// Display strings for recoverable challenge rejections.
const (
	msgWrongPassword = "Incorrect password. Please try again."
	msgWrongOTP      = "Incorrect code. Please try again."
	msgOTPExpired    = "The code has expired. Request a new one."
	msgOTPCooldown   = "Please wait before requesting another code."
	msgOTPRejected   = "The code could not be sent."
)

// Phase is the top-level state of a [ShareSession].
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseViewing
	PhaseChallenging
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseViewing:
		return "viewing"
	case PhaseChallenging:
		return "challenging"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// OTPStep is the position in the one-time-code exchange.
type OTPStep int

const (
	OTPIdle OTPStep = iota
	OTPRequested
	OTPExpired
	OTPVerified
)

// SessionState is a snapshot of a [ShareSession]. Which fields are
// meaningful depends on Phase:
//
//	PhaseViewing      Profile, Emergency
//	PhaseChallenging  Challenge, OTPStep, Notice
//	PhaseFailed       Failure, Notice
type SessionState struct {
	Phase     Phase
	Profile   models.PublicProfile
	Emergency bool

	Challenge models.AccessType
	OTPStep   OTPStep

	Failure FailureKind

	// Notice is the latest display message: a rejection, the OTP delivery
	// message or the failure text.
	Notice string

	// Busy is true while a request of this session is outstanding.
	Busy bool
}

// ShareSession drives the share screen for one handle. It keeps a single
// outstanding request at a time and discards results that arrive after
// [ShareSession.Close] or a newer [ShareSession.Retry].
//
// All methods are safe for concurrent use; network calls run without the
// lock held.
type ShareSession struct {
	gate     AccessGate
	resolver ChallengeResolver
	handle   string

	// emergencyToken switches the session to the SOS view.
	emergencyToken string

	mu         sync.Mutex
	generation uint64
	closed     bool
	busy       bool
	grant      *models.AccessGrant
	otpEmail   string
	state      SessionState

	logger *logger.Logger
}

// NewShareSession creates a session for a visitor opening handle.
func NewShareSession(gate AccessGate, resolver ChallengeResolver, handle string, logger *logger.Logger) *ShareSession {
	return &ShareSession{
		gate:     gate,
		resolver: resolver,
		handle:   handle,
		logger:   logger,
	}
}

// NewEmergencySession creates a session that opens the emergency view of
// handle with an SOS token. It never presents a challenge.
func NewEmergencySession(gate AccessGate, handle, token string, logger *logger.Logger) *ShareSession {
	return &ShareSession{
		gate:           gate,
		handle:         handle,
		emergencyToken: token,
		logger:         logger,
	}
}

// Handle returns the profile handle the session was opened for.
func (s *ShareSession) Handle() string {
	return s.handle
}

// State returns the current snapshot.
func (s *ShareSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	state.Busy = s.busy
	return state
}

// Open resolves the profile with the grant held so far.
func (s *ShareSession) Open(ctx context.Context) (SessionState, error) {
	gen, token, err := s.begin(func() error { return nil })
	if err != nil {
		return s.State(), err
	}

	outcome := s.resolve(ctx, token)
	return s.finish(gen, func() error {
		s.applyOutcome(outcome, "")
		return nil
	})
}

// Retry drops the grant and the OTP step and resolves from scratch. A
// request still in flight becomes stale.
func (s *ShareSession) Retry(ctx context.Context) (SessionState, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return s.State(), ErrSessionClosed
	}
	s.generation++
	s.busy = false
	s.grant = nil
	s.otpEmail = ""
	s.state = SessionState{Phase: PhaseLoading}
	s.mu.Unlock()

	return s.Open(ctx)
}

// Close discards the grant. Results of requests still in flight are
// dropped.
func (s *ShareSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.generation++
	s.grant = nil
	s.busy = false
}

// SubmitPassword exchanges password for a grant and re-resolves the
// profile with it. A wrong password keeps the password challenge.
func (s *ShareSession) SubmitPassword(ctx context.Context, password string) (SessionState, error) {
	gen, _, err := s.begin(func() error {
		if !s.challenging(models.AccessPassword) {
			return ErrNoChallenge
		}
		if password == "" {
			return ErrEmptyCredential
		}
		return nil
	})
	if err != nil {
		return s.State(), err
	}

	grant, err := s.resolver.VerifyPassword(ctx, s.handle, password)
	if err != nil {
		return s.finish(gen, func() error {
			return s.applyRejection(err, msgWrongPassword)
		})
	}

	return s.exchanged(ctx, gen, grant, models.AccessPassword)
}

// RequestOTP asks for the first one-time code. A second request has to go
// through [ShareSession.ResendOTP].
func (s *ShareSession) RequestOTP(ctx context.Context, email string) (SessionState, error) {
	gen, _, err := s.begin(func() error {
		if !s.challenging(models.AccessOTP) {
			return ErrNoChallenge
		}
		if s.state.OTPStep != OTPIdle {
			return ErrOTPAlreadyRequested
		}
		s.otpEmail = email
		return nil
	})
	if err != nil {
		return s.State(), err
	}

	return s.requestOTP(ctx, gen, email)
}

// ResendOTP requests a fresh code after [ShareSession.RequestOTP]. It keeps
// the Requested step so an entered code is not discarded.
func (s *ShareSession) ResendOTP(ctx context.Context) (SessionState, error) {
	var email string
	gen, _, err := s.begin(func() error {
		if !s.challenging(models.AccessOTP) {
			return ErrNoChallenge
		}
		if s.state.OTPStep != OTPRequested && s.state.OTPStep != OTPExpired {
			return ErrOTPNotRequested
		}
		email = s.otpEmail
		return nil
	})
	if err != nil {
		return s.State(), err
	}

	return s.requestOTP(ctx, gen, email)
}

func (s *ShareSession) requestOTP(ctx context.Context, gen uint64, email string) (SessionState, error) {
	message, err := s.resolver.RequestOTP(ctx, s.handle, email)
	return s.finish(gen, func() error {
		if err != nil {
			switch {
			case errors.Is(err, ErrOTPCooldown):
				s.state.Notice = DisplayMessage(err, msgOTPCooldown)
				return err
			case errors.Is(err, ErrOTPDeliveryFailed):
				s.state.Notice = DisplayMessage(err, msgOTPRejected)
				return err
			}
			return s.applyRejection(err, msgOTPRejected)
		}
		s.state.OTPStep = OTPRequested
		s.state.Notice = message
		return nil
	})
}

// SubmitOTP exchanges code for a grant. A wrong code keeps the Requested
// step; an expired one moves to Expired and needs a resend.
func (s *ShareSession) SubmitOTP(ctx context.Context, code string) (SessionState, error) {
	gen, _, err := s.begin(func() error {
		if !s.challenging(models.AccessOTP) {
			return ErrNoChallenge
		}
		switch s.state.OTPStep {
		case OTPIdle:
			return ErrOTPNotRequested
		case OTPExpired:
			return ErrOTPExpired
		}
		if strings.TrimSpace(code) == "" {
			return ErrEmptyCredential
		}
		return nil
	})
	if err != nil {
		return s.State(), err
	}

	grant, err := s.resolver.VerifyOTP(ctx, s.handle, code)
	if err != nil {
		return s.finish(gen, func() error {
			if errors.Is(err, ErrOTPExpired) {
				s.state.OTPStep = OTPExpired
				s.state.Notice = DisplayMessage(err, msgOTPExpired)
				return err
			}
			return s.applyRejection(err, msgWrongOTP)
		})
	}

	return s.exchanged(ctx, gen, grant, models.AccessOTP)
}

// exchanged stores a fresh grant and resolves the profile with it. Being
// asked for the same challenge again is treated as a server inconsistency.
func (s *ShareSession) exchanged(ctx context.Context, gen uint64, grant models.AccessGrant, passed models.AccessType) (SessionState, error) {
	if _, err := s.finishStep(gen, func() {
		s.grant = &grant
		if passed == models.AccessOTP {
			s.state.OTPStep = OTPVerified
		}
	}); err != nil {
		return s.State(), err
	}

	outcome := s.resolve(ctx, grant.Token)
	return s.finish(gen, func() error {
		s.applyOutcome(outcome, passed)
		return nil
	})
}

func (s *ShareSession) resolve(ctx context.Context, token string) Outcome {
	if s.emergencyToken != "" {
		return s.gate.ResolveEmergency(ctx, s.handle, s.emergencyToken)
	}
	return s.gate.Resolve(ctx, s.handle, token)
}

// applyOutcome moves the session to the state the outcome describes. passed
// is the challenge the visitor has just passed, if any. Caller holds mu.
func (s *ShareSession) applyOutcome(outcome Outcome, passed models.AccessType) {
	switch o := outcome.(type) {
	case ViewingOutcome:
		s.state = SessionState{
			Phase:     PhaseViewing,
			Profile:   o.Profile,
			Emergency: o.Profile.EmergencyMode,
		}

	case ChallengeOutcome:
		if s.emergencyToken != "" || (passed != "" && o.AccessType == passed) {
			s.logger.Warn().
				Str("handle", s.handle).
				Str("access_type", string(o.AccessType)).
				Msg("challenge requested again after a successful exchange")
			s.grant = nil
			s.state = SessionState{Phase: PhaseFailed, Failure: FailureInconsistent, Notice: msgInconsistent}
			return
		}
		s.grant = nil
		s.state = SessionState{Phase: PhaseChallenging, Challenge: o.AccessType}

	case FailedOutcome:
		s.grant = nil
		s.state = SessionState{Phase: PhaseFailed, Failure: o.Kind, Notice: o.Message}
	}
}

// applyRejection handles a failed exchange. Recoverable rejections keep the
// challenge; terminal and transport failures leave it. Caller holds mu.
func (s *ShareSession) applyRejection(err error, fallback string) error {
	switch {
	case errors.Is(err, ErrEmptyCredential):
	case errors.Is(err, ErrCredentialRejected):
		s.state.Notice = DisplayMessage(err, fallback)
	case errors.Is(err, ErrNetwork):
		s.grant = nil
		s.state = SessionState{Phase: PhaseFailed, Failure: FailureNetwork, Notice: DisplayMessage(err, msgNetworkFailure)}
	default:
		s.grant = nil
		s.state = SessionState{Phase: PhaseFailed, Failure: FailureNotShared, Notice: DisplayMessage(err, msgProfileUnavailable)}
	}
	return err
}

func (s *ShareSession) challenging(accessType models.AccessType) bool {
	return s.state.Phase == PhaseChallenging && s.state.Challenge == accessType
}

// begin starts a request after check passes. It returns the generation the
// result must match and the token of the current grant.
func (s *ShareSession) begin(check func() error) (uint64, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, "", ErrSessionClosed
	}
	if s.busy {
		return 0, "", ErrRequestInFlight
	}
	if err := check(); err != nil {
		return 0, "", err
	}

	s.busy = true
	token := ""
	if s.grant.For(s.handle) {
		token = s.grant.Token
	}
	return s.generation, token, nil
}

// finishStep applies an intermediate result and keeps the request open.
func (s *ShareSession) finishStep(gen uint64, apply func()) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.generation {
		return s.state, ErrStaleResult
	}
	apply()
	return s.state, nil
}

// finish applies the final result of a request and releases the session.
func (s *ShareSession) finish(gen uint64, apply func() error) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.generation {
		return s.state, ErrStaleResult
	}

	err := apply()
	s.busy = false
	return s.state, err
}

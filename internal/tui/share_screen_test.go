package tui

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/service"
	"github.com/MKhiriev/go-health-share/models"
)

// fakeGate replays outcomes in order and repeats the last one.
type fakeGate struct {
	mu       sync.Mutex
	outcomes []service.Outcome
	tokens   []string
}

func (g *fakeGate) Resolve(_ context.Context, _, token string) service.Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tokens = append(g.tokens, token)
	out := g.outcomes[0]
	if len(g.outcomes) > 1 {
		g.outcomes = g.outcomes[1:]
	}
	return out
}

func (g *fakeGate) ResolveEmergency(ctx context.Context, handle, token string) service.Outcome {
	return g.Resolve(ctx, handle, token)
}

type fakeResolver struct {
	mu        sync.Mutex
	passwords []string
	grant     models.AccessGrant
	err       error
}

func (r *fakeResolver) VerifyPassword(_ context.Context, _, password string) (models.AccessGrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passwords = append(r.passwords, password)
	return r.grant, r.err
}

func (r *fakeResolver) RequestOTP(context.Context, string, string) (string, error) {
	return "Code sent", nil
}

func (r *fakeResolver) VerifyOTP(context.Context, string, string) (models.AccessGrant, error) {
	return r.grant, r.err
}

func newTestShareModel(gate *fakeGate, resolver *fakeResolver) *ShareModel {
	session := service.NewShareSession(gate, resolver, "alice", logger.Nop())
	return NewShareModel(context.Background(), session)
}

// step feeds the session results produced by cmd back into m.
func step(t *testing.T, m *ShareModel, cmd tea.Cmd) {
	t.Helper()
	msg, ok := findMsg[sessionStepMsg](runCmd(cmd))
	require.True(t, ok, "expected a session step")
	m.Update(msg)
}

func profile() models.PublicProfile {
	return models.PublicProfile{
		Name:      ptr("Alice Example"),
		BloodType: ptr("O+"),
	}
}

// ── Open ────────────────────────────────────────────────────────────────────

func TestShareModel_OpenPublicProfile(t *testing.T) {
	gate := &fakeGate{outcomes: []service.Outcome{service.ViewingOutcome{Profile: profile()}}}
	m := newTestShareModel(gate, &fakeResolver{})

	assert.Contains(t, m.View(), "Opening profile")

	step(t, m, m.Init())

	assert.Equal(t, service.PhaseViewing, m.state.Phase)
	view := m.View()
	assert.Contains(t, view, "Alice Example")
	assert.Contains(t, view, "O+")
}

func TestShareModel_EmptyProfile(t *testing.T) {
	gate := &fakeGate{outcomes: []service.Outcome{service.ViewingOutcome{}}}
	m := newTestShareModel(gate, &fakeResolver{})

	step(t, m, m.Init())

	assert.Contains(t, m.View(), "has not shared any details")
}

// ── Password ────────────────────────────────────────────────────────────────

func TestShareModel_PasswordUnlock(t *testing.T) {
	gate := &fakeGate{outcomes: []service.Outcome{
		service.ChallengeOutcome{AccessType: models.AccessPassword},
		service.ViewingOutcome{Profile: profile()},
	}}
	resolver := &fakeResolver{grant: models.AccessGrant{ProfileHandle: "alice", Token: "grant-token"}}
	m := newTestShareModel(gate, resolver)

	step(t, m, m.Init())
	require.Equal(t, service.PhaseChallenging, m.state.Phase)
	assert.True(t, m.password.Focused())
	assert.Contains(t, m.View(), "protected by a password")

	// q is typed into the field instead of quitting
	m.Update(keyRunes("q"))
	m.Update(keyRunes("wert"))
	assert.Equal(t, "qwert", m.password.Value())

	_, cmd := m.Update(keyType(tea.KeyEnter))
	assert.True(t, m.state.Busy)
	step(t, m, cmd)

	assert.Equal(t, service.PhaseViewing, m.state.Phase)
	assert.Equal(t, []string{"qwert"}, resolver.passwords)
	assert.Contains(t, gate.tokens, "grant-token")
	assert.Contains(t, m.View(), "Alice Example")
}

func TestShareModel_WrongPasswordKeepsChallenge(t *testing.T) {
	gate := &fakeGate{outcomes: []service.Outcome{service.ChallengeOutcome{AccessType: models.AccessPassword}}}
	resolver := &fakeResolver{err: service.ErrCredentialRejected}
	m := newTestShareModel(gate, resolver)

	step(t, m, m.Init())
	m.Update(keyRunes("nope"))

	_, cmd := m.Update(keyType(tea.KeyEnter))
	step(t, m, cmd)

	assert.Equal(t, service.PhaseChallenging, m.state.Phase)
	assert.Equal(t, models.AccessPassword, m.state.Challenge)
	assert.Empty(t, m.password.Value())
	assert.NotEmpty(t, m.state.Notice)
}

func TestShareModel_EmptyPasswordIsRefusedLocally(t *testing.T) {
	gate := &fakeGate{outcomes: []service.Outcome{service.ChallengeOutcome{AccessType: models.AccessPassword}}}
	resolver := &fakeResolver{}
	m := newTestShareModel(gate, resolver)

	step(t, m, m.Init())

	_, cmd := m.Update(keyType(tea.KeyEnter))
	step(t, m, cmd)

	assert.Empty(t, resolver.passwords)
	assert.Equal(t, "Please enter a value", m.errMsg)
}

// ── OTP ─────────────────────────────────────────────────────────────────────

func TestShareModel_OTPRequestMovesToCode(t *testing.T) {
	gate := &fakeGate{outcomes: []service.Outcome{service.ChallengeOutcome{AccessType: models.AccessOTP}}}
	m := newTestShareModel(gate, &fakeResolver{})

	step(t, m, m.Init())
	require.Equal(t, service.OTPIdle, m.state.OTPStep)
	assert.True(t, m.email.Focused())
	assert.Contains(t, m.otpHotKeys(), "send code")

	_, cmd := m.Update(keyType(tea.KeyEnter))
	step(t, m, cmd)

	assert.Equal(t, service.OTPRequested, m.state.OTPStep)
	assert.True(t, m.code.Focused())
	assert.Contains(t, m.otpHotKeys(), "resend")
}

func TestShareModel_ResendKeepsTypedCode(t *testing.T) {
	gate := &fakeGate{outcomes: []service.Outcome{service.ChallengeOutcome{AccessType: models.AccessOTP}}}
	m := newTestShareModel(gate, &fakeResolver{})

	step(t, m, m.Init())
	_, cmd := m.Update(keyType(tea.KeyEnter))
	step(t, m, cmd)
	require.Equal(t, service.OTPRequested, m.state.OTPStep)

	m.Update(keyRunes("4829"))
	require.Equal(t, "4829", m.code.Value())

	_, cmd = m.Update(keyType(tea.KeyCtrlR))
	step(t, m, cmd)

	assert.Equal(t, service.OTPRequested, m.state.OTPStep)
	assert.Equal(t, "4829", m.code.Value())
	assert.True(t, m.code.Focused())
}

// ── Failures ────────────────────────────────────────────────────────────────

func TestShareModel_NetworkFailureRetry(t *testing.T) {
	gate := &fakeGate{outcomes: []service.Outcome{
		service.FailedOutcome{Kind: service.FailureNetwork, Message: "Could not reach the server."},
		service.ViewingOutcome{Profile: profile()},
	}}
	m := newTestShareModel(gate, &fakeResolver{})

	step(t, m, m.Init())
	require.Equal(t, service.PhaseFailed, m.state.Phase)
	assert.Contains(t, m.View(), "press r to try again")

	_, cmd := m.Update(keyRunes("r"))
	assert.Equal(t, service.PhaseLoading, m.state.Phase)
	step(t, m, cmd)

	assert.Equal(t, service.PhaseViewing, m.state.Phase)
}

func TestShareModel_NotSharedHasNoRetryHint(t *testing.T) {
	gate := &fakeGate{outcomes: []service.Outcome{
		service.FailedOutcome{Kind: service.FailureNotShared, Message: "This profile is not available."},
	}}
	m := newTestShareModel(gate, &fakeResolver{})

	step(t, m, m.Init())

	view := m.View()
	assert.Contains(t, view, "This profile is not available.")
	assert.False(t, strings.Contains(view, "try again"))
	assert.False(t, strings.Contains(view, "r: retry"))

	_, cmd := m.Update(keyRunes("r"))

	assert.Nil(t, cmd)
	assert.Equal(t, service.PhaseFailed, m.state.Phase)
	assert.Len(t, gate.tokens, 1, "a terminal failure must not resolve again")
}

func TestShareModel_StaleStepIsIgnored(t *testing.T) {
	gate := &fakeGate{outcomes: []service.Outcome{service.ViewingOutcome{Profile: profile()}}}
	m := newTestShareModel(gate, &fakeResolver{})
	step(t, m, m.Init())

	m.Update(sessionStepMsg{state: service.SessionState{Phase: service.PhaseFailed}, err: service.ErrStaleResult})

	assert.Equal(t, service.PhaseViewing, m.state.Phase)
}

// ── Refresh ─────────────────────────────────────────────────────────────────

func TestShareModel_RefreshKeepsGrant(t *testing.T) {
	gate := &fakeGate{outcomes: []service.Outcome{
		service.ChallengeOutcome{AccessType: models.AccessPassword},
		service.ViewingOutcome{Profile: profile()},
	}}
	resolver := &fakeResolver{grant: models.AccessGrant{ProfileHandle: "alice", Token: "grant-token"}}
	m := newTestShareModel(gate, resolver)

	step(t, m, m.Init())
	m.Update(keyRunes("secret"))
	_, cmd := m.Update(keyType(tea.KeyEnter))
	step(t, m, cmd)
	require.Equal(t, service.PhaseViewing, m.state.Phase)

	_, cmd = m.Update(keyRunes("r"))
	step(t, m, cmd)

	assert.Equal(t, service.PhaseViewing, m.state.Phase)
	assert.Equal(t, []string{"secret"}, resolver.passwords, "refresh must not ask for the password again")
	assert.Equal(t, "grant-token", gate.tokens[len(gate.tokens)-1])
}

// ── Keys ────────────────────────────────────────────────────────────────────

func TestShareModel_QuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{name: "esc", key: keyType(tea.KeyEsc)},
		{name: "ctrl+c", key: keyType(tea.KeyCtrlC)},
		{name: "q", key: keyRunes("q")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := &fakeGate{outcomes: []service.Outcome{service.ViewingOutcome{Profile: profile()}}}
			m := newTestShareModel(gate, &fakeResolver{})
			step(t, m, m.Init())

			_, cmd := m.Update(tt.key)
			assert.True(t, quits(cmd))
		})
	}
}

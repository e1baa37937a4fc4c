package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-health-share/internal/service"
	"github.com/MKhiriev/go-health-share/models"
)

func expectSession(m testMocks) {
	m.auth.EXPECT().ParseToken(gomock.Any(), "session-token").Return(sessionToken(42), nil)
}

// ── auth middleware ─────────────────────────────────────────────────

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header http.Header
		setup  func(m testMocks)
	}{
		{name: "no header", setup: func(testMocks) {}},
		{name: "not bearer", header: http.Header{"Authorization": {"Basic abc"}}, setup: func(testMocks) {}},
		{
			name:   "invalid token",
			header: bearer("garbage"),
			setup: func(m testMocks) {
				m.auth.EXPECT().ParseToken(gomock.Any(), "garbage").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)
			},
		},
		{
			name:   "visitor token",
			header: bearer("abc"),
			setup: func(m testMocks) {
				tok := sessionToken(42)
				tok.Scope = models.ScopeProfile
				m.auth.EXPECT().ParseToken(gomock.Any(), "abc").Return(tok, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			tt.setup(m)

			rec := do(t, h.Init(), http.MethodGet, "/api/profile", nil, tt.header)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, decodeEnvelope[any](t, rec).Success)
		})
	}
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	tok, err := getTokenFromAuthHeader("Bearer my-jwt")
	require.NoError(t, err)
	assert.Equal(t, "my-jwt", tok)

	_, err = getTokenFromAuthHeader("")
	assert.ErrorIs(t, err, ErrEmptyAuthorizationHeader)

	_, err = getTokenFromAuthHeader("Token my-jwt")
	assert.ErrorIs(t, err, ErrInvalidAuthorizationHeader)
}

// ── owner profile ───────────────────────────────────────────────────

func TestGetProfile(t *testing.T) {
	h, m := newTestHandler(t)
	expectSession(m)
	m.profiles.EXPECT().GetProfile(gomock.Any(), int64(42)).Return(models.ProfileSettings{
		Username:        "jane-doe",
		IsPublicProfile: true,
		ShareLinkSettings: models.ShareLinkSettings{
			AccessType:  models.AccessPassword,
			HasPassword: true,
		},
		PublicFields: models.FieldSet{models.FieldFullName},
	}, nil)

	rec := do(t, h.Init(), http.MethodGet, "/api/profile", nil, bearer("session-token"))

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope[models.ProfileSettings](t, rec)
	assert.True(t, env.Data.IsPublicProfile)
	assert.True(t, env.Data.ShareLinkSettings.HasPassword)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestUpdateProfile_PassesPartialUpdate(t *testing.T) {
	h, m := newTestHandler(t)
	expectSession(m)
	m.profiles.EXPECT().UpdateProfile(gomock.Any(), int64(42), gomock.Any()).
		DoAndReturn(func(_ any, _ int64, u models.ProfileUpdate) (models.ProfileSettings, error) {
			require.NotNil(t, u.ShareLinkSettings)
			assert.True(t, u.ShareLinkSettings.ExpiresAtSet)
			assert.Nil(t, u.ShareLinkSettings.ExpiresAt)
			assert.Nil(t, u.ShareLinkSettings.AccessType)
			assert.Nil(t, u.IsPublicProfile)
			return models.ProfileSettings{Username: "jane-doe"}, nil
		})

	rec := do(t, h.Init(), http.MethodPut, "/api/profile",
		`{"shareLinkSettings":{"expiresAt":null}}`, bearer("session-token"))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateProfile_InvalidField(t *testing.T) {
	h, m := newTestHandler(t)
	expectSession(m)
	m.profiles.EXPECT().UpdateProfile(gomock.Any(), int64(42), gomock.Any()).
		Return(models.ProfileSettings{}, service.ErrInvalidDataProvided)

	rec := do(t, h.Init(), http.MethodPut, "/api/profile", `{"publicFields":["ssn"]}`, bearer("session-token"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTriggerSOS(t *testing.T) {
	h, m := newTestHandler(t)
	expectSession(m)
	expires := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	m.profiles.EXPECT().TriggerSOS(gomock.Any(), int64(42)).
		Return(models.EmergencyAccess{Token: "sos", ExpiresAt: expires}, nil)

	rec := do(t, h.Init(), http.MethodPost, "/api/emergency/sos", nil, bearer("session-token"))

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope[models.EmergencyAccess](t, rec)
	assert.Equal(t, "sos", env.Data.Token)
	assert.True(t, expires.Equal(env.Data.ExpiresAt))
}

func TestTriggerSOS_Disabled(t *testing.T) {
	h, m := newTestHandler(t)
	expectSession(m)
	m.profiles.EXPECT().TriggerSOS(gomock.Any(), int64(42)).Return(models.EmergencyAccess{}, service.ErrEmergencyDisabled)

	rec := do(t, h.Init(), http.MethodPost, "/api/emergency/sos", nil, bearer("session-token"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

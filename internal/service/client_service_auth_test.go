package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-health-share/internal/adapter"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/mock"
	"github.com/MKhiriev/go-health-share/internal/store"
	"github.com/MKhiriev/go-health-share/models"
)

func newTestClientAuth(t *testing.T) (ClientAuthService, *mock.MockOwnerAdapter, *mock.MockCredentialStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	owner := mock.NewMockOwnerAdapter(ctrl)
	credentials := mock.NewMockCredentialStore(ctrl)

	return NewClientAuthService(credentials, owner, logger.Nop()), owner, credentials
}

func storedSession(t *testing.T) string {
	t.Helper()
	raw, err := json.Marshal(models.OwnerSession{UserID: 42, Username: "jane-doe", AccessToken: "session-token"})
	require.NoError(t, err)
	return string(raw)
}

// ── Login / Register ────────────────────────────────────────────────────────

func TestClientAuthService_Login(t *testing.T) {
	svc, owner, credentials := newTestClientAuth(t)
	req := models.LoginRequest{EmailOrPhone: "jane@example.com", Password: "correct horse"}

	gomock.InOrder(
		owner.EXPECT().Login(gomock.Any(), req).Return(models.LoginResponse{
			AccessToken: "session-token",
			User:        models.User{UserID: 42, Username: "jane-doe"},
		}, nil),
		owner.EXPECT().SetToken("session-token"),
		credentials.EXPECT().Put(gomock.Any(), sessionCredentialKey, storedSession(t)).Return(nil),
	)

	session, err := svc.Login(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.OwnerSession{UserID: 42, Username: "jane-doe", AccessToken: "session-token"}, session)
}

func TestClientAuthService_LoginRejected(t *testing.T) {
	svc, owner, _ := newTestClientAuth(t)

	owner.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.LoginResponse{}, rejected(http.StatusUnauthorized, adapter.ErrUnauthorized, "Invalid login or password"))

	_, err := svc.Login(context.Background(), models.LoginRequest{EmailOrPhone: "jane", Password: "x"})
	assert.ErrorIs(t, err, ErrCredentialRejected)
}

func TestClientAuthService_RegisterTaken(t *testing.T) {
	svc, owner, _ := newTestClientAuth(t)

	owner.EXPECT().Register(gomock.Any(), gomock.Any()).
		Return(models.LoginResponse{}, rejected(http.StatusConflict, adapter.ErrConflict, ""))

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "jane-doe"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

// ── Restore / Logout ────────────────────────────────────────────────────────

func TestClientAuthService_Restore(t *testing.T) {
	svc, owner, credentials := newTestClientAuth(t)

	gomock.InOrder(
		credentials.EXPECT().Get(gomock.Any(), sessionCredentialKey).Return(storedSession(t), nil),
		owner.EXPECT().SetToken("session-token"),
		owner.EXPECT().GetProfile(gomock.Any()).Return(models.ProfileSettings{Username: "jane-doe"}, nil),
	)

	session, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", session.Username)
}

func TestClientAuthService_RestoreWithoutSession(t *testing.T) {
	svc, _, credentials := newTestClientAuth(t)

	credentials.EXPECT().Get(gomock.Any(), sessionCredentialKey).Return("", store.ErrCredentialNotFound)

	_, err := svc.Restore(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestClientAuthService_RestoreExpiredSession(t *testing.T) {
	svc, owner, credentials := newTestClientAuth(t)

	gomock.InOrder(
		credentials.EXPECT().Get(gomock.Any(), sessionCredentialKey).Return(storedSession(t), nil),
		owner.EXPECT().SetToken("session-token"),
		owner.EXPECT().GetProfile(gomock.Any()).
			Return(models.ProfileSettings{}, rejected(http.StatusUnauthorized, adapter.ErrUnauthorized, "")),
		owner.EXPECT().SetToken(""),
		credentials.EXPECT().Delete(gomock.Any(), sessionCredentialKey).Return(nil),
	)

	_, err := svc.Restore(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestClientAuthService_Logout(t *testing.T) {
	svc, owner, credentials := newTestClientAuth(t)

	owner.EXPECT().SetToken("")
	credentials.EXPECT().Delete(gomock.Any(), sessionCredentialKey).Return(nil)

	require.NoError(t, svc.Logout(context.Background()))
}

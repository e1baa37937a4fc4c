package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/mock"
	"github.com/MKhiriev/go-health-share/internal/store"
	"github.com/MKhiriev/go-health-share/internal/utils"
	"github.com/MKhiriev/go-health-share/models"
)

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository) {
	t.Helper()

	users := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(users, testAppConfig, logger.Nop()).(*authService)

	return svc, users
}

// ── RegisterUser ────────────────────────────────────────────────────────────

func TestAuthService_RegisterUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users := newTestAuthSvc(t, ctrl)

	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "jane-doe", u.Username)
			assert.Equal(t, "jane@example.com", u.Email)
			assert.True(t, utils.CheckPassword(u.PasswordHash, "correct horse"))
			u.UserID = 42
			return u, nil
		})

	user, err := svc.RegisterUser(context.Background(), models.RegisterRequest{
		Username: " Jane-Doe ",
		Email:    "jane@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
}

func TestAuthService_RegisterUser_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{Username: "jane", Email: "bad", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_RegisterUser_Taken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users := newTestAuthSvc(t, ctrl)

	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUsernameAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{
		Username: "jane-doe", Email: "jane@example.com", Password: "correct horse",
	})
	assert.ErrorIs(t, err, store.ErrUsernameAlreadyExists)
}

// ── Login ───────────────────────────────────────────────────────────────────

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users := newTestAuthSvc(t, ctrl)

	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)
	stored := models.User{UserID: 42, Username: "jane-doe", PasswordHash: hash}

	users.EXPECT().FindUserByLogin(gomock.Any(), "jane@example.com").Return(stored, nil).Times(2)

	user, err := svc.Login(context.Background(), models.LoginRequest{EmailOrPhone: "jane@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)

	_, err = svc.Login(context.Background(), models.LoginRequest{EmailOrPhone: "jane@example.com", Password: "wrong horse"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users := newTestAuthSvc(t, ctrl)

	users.EXPECT().FindUserByLogin(gomock.Any(), "ghost").Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.Login(context.Background(), models.LoginRequest{EmailOrPhone: "ghost", Password: "x"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.Login(context.Background(), models.LoginRequest{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── Tokens ──────────────────────────────────────────────────────────────────

func TestAuthService_CreateAndParseToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 42})
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(42), token.Subject)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)

	userID, err := parsed.GetUserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestAuthService_ParseToken_RejectsOtherScopes(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.ParseToken(context.Background(), signToken(t, "jane-doe", models.ScopeProfile, models.AccessOTP))
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	_, err = svc.ParseToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/store"
	"github.com/MKhiriev/go-health-share/internal/utils"
	"github.com/MKhiriev/go-health-share/internal/validators"
	"github.com/MKhiriev/go-health-share/models"
)

// authService registers owners, verifies their bcrypt password hashes and
// issues session-scoped JWTs.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a session token remains valid.
	tokenDuration time.Duration

	hashPassword func(string) (string, error)
	logger       *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with token parameters from cfg.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		validator:      validators.NewProfileValidator(),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		hashPassword:   utils.HashPassword,
		logger:         logger,
	}
}

// RegisterUser validates the request, hashes the password and creates the
// account together with its private default profile.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Email = strings.TrimSpace(req.Email)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Info().Err(err).Str("username", req.Username).Msg("invalid registration data")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return user, nil
}

// Login looks the account up by username or email and checks the password.
// An unknown login and a wrong password both yield [ErrWrongPassword].
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByLogin(ctx, strings.TrimSpace(req.EmailOrPhone))
	if err != nil {
		log.Info().Err(err).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrWrongPassword, err)
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		log.Info().Int64("id", user.UserID).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return user, nil
}

// CreateToken issues a session JWT whose subject is the user id.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: strconv.FormatInt(user.UserID, 10)},
		Scope:            models.ScopeSession,
	}, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a session token. Any failure is reported as
// [ErrTokenIsExpiredOrInvalid].
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, models.ScopeSession)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("session token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

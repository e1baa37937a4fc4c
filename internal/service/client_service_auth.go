package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-health-share/internal/adapter"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/store"
	"github.com/MKhiriev/go-health-share/models"
)

// sessionCredentialKey is the credential store key of the owner session.
const sessionCredentialKey = "owner_session"

type clientAuthService struct {
	credentials store.CredentialStore
	adapter     adapter.OwnerAdapter
	logger      *logger.Logger
}

// NewClientAuthService constructs a [ClientAuthService]. After a successful
// Login, Register or Restore every owner call made through ownerAdapter is
// authenticated.
func NewClientAuthService(credentials store.CredentialStore, ownerAdapter adapter.OwnerAdapter, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{credentials: credentials, adapter: ownerAdapter, logger: logger}
}

func (a *clientAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.OwnerSession, error) {
	resp, err := a.adapter.Register(ctx, req)
	if err != nil {
		return models.OwnerSession{}, mapAdapterError(err)
	}
	return a.remember(ctx, resp)
}

func (a *clientAuthService) Login(ctx context.Context, req models.LoginRequest) (models.OwnerSession, error) {
	resp, err := a.adapter.Login(ctx, req)
	if err != nil {
		return models.OwnerSession{}, mapAdapterError(err)
	}
	return a.remember(ctx, resp)
}

// remember hands the token to the adapter and persists the session.
func (a *clientAuthService) remember(ctx context.Context, resp models.LoginResponse) (models.OwnerSession, error) {
	session := models.OwnerSession{
		UserID:      resp.User.UserID,
		Username:    resp.User.Username,
		AccessToken: resp.AccessToken,
	}
	a.adapter.SetToken(session.AccessToken)

	raw, err := json.Marshal(session)
	if err != nil {
		return session, fmt.Errorf("error encoding session: %w", err)
	}
	if err = a.credentials.Put(ctx, sessionCredentialKey, string(raw)); err != nil {
		a.logger.Err(err).Msg("session could not be stored")
		return session, fmt.Errorf("error storing session: %w", err)
	}

	return session, nil
}

func (a *clientAuthService) Restore(ctx context.Context) (models.OwnerSession, error) {
	raw, err := a.credentials.Get(ctx, sessionCredentialKey)
	if errors.Is(err, store.ErrCredentialNotFound) {
		return models.OwnerSession{}, ErrNotAuthenticated
	}
	if err != nil {
		return models.OwnerSession{}, fmt.Errorf("error reading session: %w", err)
	}

	var session models.OwnerSession
	if err = json.Unmarshal([]byte(raw), &session); err != nil || !session.Authenticated() {
		a.logger.Warn().Msg("stored session is unreadable, dropping it")
		_ = a.credentials.Delete(ctx, sessionCredentialKey)
		return models.OwnerSession{}, ErrNotAuthenticated
	}

	a.adapter.SetToken(session.AccessToken)
	if _, err = a.adapter.GetProfile(ctx); err != nil {
		mapped := mapAdapterError(err)
		if errors.Is(mapped, ErrCredentialRejected) {
			a.adapter.SetToken("")
			_ = a.credentials.Delete(ctx, sessionCredentialKey)
			return models.OwnerSession{}, ErrNotAuthenticated
		}
		return models.OwnerSession{}, mapped
	}

	return session, nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	a.adapter.SetToken("")
	if err := a.credentials.Delete(ctx, sessionCredentialKey); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

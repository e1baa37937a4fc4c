package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/service"
	"github.com/MKhiriev/go-health-share/internal/tui"
	"github.com/MKhiriev/go-health-share/models"
)

type App struct {
	visit  config.Visit
	auth   service.ClientAuthService
	ui     UI
	logger *logger.Logger
}

func NewApp(cfg *config.ClientConfig, auth service.ClientAuthService, ui UI, log *logger.Logger) (*App, error) {
	if cfg == nil || auth == nil || ui == nil {
		return nil, errors.New("client: missing dependency")
	}
	return &App{visit: cfg.Visit, auth: auth, ui: ui, logger: log}, nil
}

// Run executes the selected flow. Leaving a flow on purpose is not an
// error.
func (a *App) Run(ctx context.Context) error {
	err := a.run(ctx)
	if errors.Is(err, tui.ErrUserQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) run(ctx context.Context) error {
	if a.visit.Handle != "" {
		return a.runVisitor(ctx)
	}

	for {
		session, err := a.ownerSession(ctx)
		if err != nil {
			return err
		}

		logout, err := a.ui.OwnerLoop(ctx, session)
		if err != nil {
			return fmt.Errorf("owner loop: %w", err)
		}
		if !logout {
			return nil
		}

		if err = a.auth.Logout(ctx); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		a.logger.Info().Str("username", session.Username).Msg("owner logged out")
	}
}

func (a *App) runVisitor(ctx context.Context) error {
	log := a.logger.Info().Str("handle", a.visit.Handle)
	if a.visit.EmergencyToken != "" {
		log.Msg("opening emergency view")
		return a.ui.EmergencyFlow(ctx, a.visit.Handle, a.visit.EmergencyToken)
	}
	log.Msg("opening shared profile")
	return a.ui.ShareFlow(ctx, a.visit.Handle)
}

func (a *App) ownerSession(ctx context.Context) (models.OwnerSession, error) {
	session, err := a.auth.Restore(ctx)
	switch {
	case err == nil:
		a.logger.Info().Str("username", session.Username).Msg("session restored")
		return session, nil
	case errors.Is(err, service.ErrNotAuthenticated):
	default:
		return models.OwnerSession{}, fmt.Errorf("restore session: %w", err)
	}

	session, err = a.ui.LoginFlow(ctx)
	if err != nil {
		return models.OwnerSession{}, err
	}
	return session, nil
}

package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/service"
	"github.com/MKhiriev/go-health-share/models"
)

var ErrUserQuit = errors.New("user quit the program")

// TUI runs the terminal programs of the client. Every flow is a separate
// bubbletea program.
type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, log *logger.Logger) (*TUI, error) {
	if services == nil {
		return nil, errors.New("tui: nil services")
	}
	return &TUI{services: services, buildInfo: buildInfo, logger: log}, nil
}

// LoginFlow shows the login and registration pages until the owner has a
// session.
func (t *TUI) LoginFlow(ctx context.Context) (models.OwnerSession, error) {
	pages := map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.services.AuthService),
		"register": NewRegisterModel(ctx, t.services.AuthService),
	}

	root := NewRootModel(pages, "menu", t.buildInfo)
	finalModel, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return models.OwnerSession{}, err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.OwnerSession{}, tea.ErrProgramKilled
	}
	if result.quitByUser || !result.session.Authenticated() {
		return models.OwnerSession{}, ErrUserQuit
	}

	return result.session, nil
}

// OwnerLoop runs the privacy settings screen. logout is true when the
// owner asked to sign out.
func (t *TUI) OwnerLoop(ctx context.Context, session models.OwnerSession) (logout bool, err error) {
	model := NewSettingsModel(ctx, t.services, session)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return false, err
	}

	result, ok := finalModel.(*SettingsModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}

// ShareFlow opens the public profile of handle as a visitor.
func (t *TUI) ShareFlow(ctx context.Context, handle string) error {
	return t.runVisitor(ctx, t.services.NewShareSession(handle))
}

// EmergencyFlow opens the first-responder view of handle.
func (t *TUI) EmergencyFlow(ctx context.Context, handle, token string) error {
	return t.runVisitor(ctx, t.services.NewEmergencySession(handle, token))
}

func (t *TUI) runVisitor(ctx context.Context, session *service.ShareSession) error {
	defer session.Close()

	model := NewShareModel(ctx, session)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ErrUserQuit
		}
		return err
	}
	return nil
}

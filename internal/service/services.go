package service

import (
	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/notify"
	"github.com/MKhiriev/go-health-share/internal/store"
)

type Services struct {
	AuthService          AuthService
	PublicProfileService PublicProfileService
	ChallengeService     ChallengeService
	ProfileService       ProfileService
	AppInfoService       AppInfoService
}

func NewServices(storages *store.Storages, notifier notify.Notifier, cfg *config.ServerConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:          NewAuthService(storages.UserRepository, cfg.App, logger),
		PublicProfileService: NewPublicProfileService(storages.ProfileRepository, cfg.App, logger),
		ChallengeService:     NewChallengeService(storages.ProfileRepository, storages.OTPStore, notifier, cfg.App, cfg.Share, logger),
		ProfileService:       NewProfileValidationService().Wrap(NewProfileService(storages.ProfileRepository, cfg.App, logger)),
		AppInfoService:       appInfo,
	}, nil
}

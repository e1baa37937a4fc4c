package service

import (
	"github.com/MKhiriev/go-health-share/internal/adapter"
	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/store"
)

type ClientServices struct {
	Gate         AccessGate
	Challenges   ChallengeResolver
	Configurator ProfileConfigurator
	ShareLinks   ShareLinkService
	AuthService  ClientAuthService

	logger *logger.Logger
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg config.ClientShare, log *logger.Logger) *ClientServices {
	return &ClientServices{
		Gate:         NewAccessGate(serverAdapter, log),
		Challenges:   NewChallengeResolver(serverAdapter, log),
		Configurator: NewProfileConfigurator(serverAdapter, log),
		ShareLinks:   NewShareLinkService(cfg, log),
		AuthService:  NewClientAuthService(storages.Credentials, serverAdapter, log),
		logger:       log,
	}
}

// NewShareSession opens a visitor session for handle. Each session holds
// its own grant.
func (c *ClientServices) NewShareSession(handle string) *ShareSession {
	return NewShareSession(c.Gate, c.Challenges, handle, c.logger)
}

// NewEmergencySession opens the SOS view of handle.
func (c *ClientServices) NewEmergencySession(handle, token string) *ShareSession {
	return NewEmergencySession(c.Gate, handle, token, c.logger)
}

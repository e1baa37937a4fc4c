package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base address of the remote API.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DSN is the SQLite file holding the owner session credential.
	DSN string
}

// ClientShare holds the share-link settings used by the owner screens.
type ClientShare struct {
	FrontendBaseURL string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Storage ClientStorage
	Share   ClientShare
	Visit   Visit
}

// VisitorMode reports whether the client should open a shared profile
// instead of the owner flow.
func (c *ClientConfig) VisitorMode() bool {
	return c.Visit.Handle != ""
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{DSN: cfg.Storage.DB.DSN},
		Share:   ClientShare{FrontendBaseURL: cfg.Share.FrontendBaseURL},
		Visit:   cfg.Visit,
	}
}

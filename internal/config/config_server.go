package config

import "fmt"

// ServerConfig is the reference backend's view of [StructuredConfig].
type ServerConfig struct {
	App     App
	Storage Storage
	Server  Server
	Workers Workers
	Share   Share
	Notify  Notify
}

// GetServerConfig builds and validates the backend configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := newServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

func newServerConfig(cfg *StructuredConfig) *ServerConfig {
	return &ServerConfig{
		App:     cfg.App,
		Storage: cfg.Storage,
		Server:  cfg.Server,
		Workers: cfg.Workers,
		Share:   cfg.Share,
		Notify:  cfg.Notify,
	}
}

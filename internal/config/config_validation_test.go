package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validServerConfig() *ServerConfig {
	cfg := defaults()
	cfg.App.TokenSignKey = "secret"
	cfg.Storage.DB.DSN = "postgres://localhost/share"
	return newServerConfig(cfg)
}

func validClientConfig() *ClientConfig {
	cfg := defaults()
	cfg.Storage.DB.DSN = "client.db"
	return newClientConfig(cfg)
}

func TestServerConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfig)
		want   error
	}{
		{name: "valid", mutate: func(*ServerConfig) {}},
		{name: "missing sign key", mutate: func(c *ServerConfig) { c.App.TokenSignKey = "" }, want: ErrInvalidAppConfigs},
		{name: "zero access token duration", mutate: func(c *ServerConfig) { c.App.AccessTokenDuration = 0 }, want: ErrInvalidAppConfigs},
		{name: "missing dsn", mutate: func(c *ServerConfig) { c.Storage.DB.DSN = "" }, want: ErrInvalidStorageConfigs},
		{name: "missing address", mutate: func(c *ServerConfig) { c.Server.HTTPAddress = "" }, want: ErrInvalidServerConfigs},
		{name: "otp too short", mutate: func(c *ServerConfig) { c.Share.OTPLength = 3 }, want: ErrInvalidShareConfigs},
		{name: "no attempts", mutate: func(c *ServerConfig) { c.Share.OTPMaxAttempts = 0 }, want: ErrInvalidShareConfigs},
		{name: "memory store without janitor", mutate: func(c *ServerConfig) { c.Workers.OTPJanitorInterval = 0 }, want: ErrInvalidWorkerConfigs},
		{
			name: "redis store needs no janitor",
			mutate: func(c *ServerConfig) {
				c.Workers.OTPJanitorInterval = 0
				c.Storage.Redis.Address = "localhost:6379"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validServerConfig()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ClientConfig)
		want   error
	}{
		{name: "valid", mutate: func(*ClientConfig) {}},
		{name: "missing address", mutate: func(c *ClientConfig) { c.Adapter.HTTPAddress = "" }, want: ErrInvalidAdapterConfigs},
		{name: "zero timeout", mutate: func(c *ClientConfig) { c.Adapter.RequestTimeout = 0 }, want: ErrInvalidAdapterConfigs},
		{name: "missing dsn", mutate: func(c *ClientConfig) { c.Storage.DSN = "" }, want: ErrInvalidStorageConfigs},
		{name: "in-memory dsn", mutate: func(c *ClientConfig) { c.Storage.DSN = ":memory:" }, want: ErrInvalidStorageConfigs},
		{
			name: "visitor needs no storage",
			mutate: func(c *ClientConfig) {
				c.Storage.DSN = ""
				c.Visit.Handle = "jane-doe"
			},
		},
		{name: "relative frontend url", mutate: func(c *ClientConfig) { c.Share.FrontendBaseURL = "health.example" }, want: ErrInvalidShareConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClientConfig()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

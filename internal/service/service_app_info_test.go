package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
)

func TestNewAppInfoService(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "v1.0.0"}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", svc.GetAppVersion(context.Background()))
}

func TestNewAppInfoService_NoVersion(t *testing.T) {
	_, err := NewAppInfoService(config.App{}, logger.Nop())
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

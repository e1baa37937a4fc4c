package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
)

func newTestShareLinks(write func(string) error) *shareLinkService {
	s := NewShareLinkService(config.ClientShare{FrontendBaseURL: "https://health.example.com/"}, logger.Nop()).(*shareLinkService)
	s.writeClipboard = write
	return s
}

func TestShareLinkService_ShareURL(t *testing.T) {
	s := newTestShareLinks(nil)

	assert.Equal(t, "https://health.example.com/share/jane-doe", s.ShareURL("jane-doe"))
	assert.Equal(t, "https://health.example.com/emergency/jane-doe?token=a%2Bb", s.EmergencyURL("jane-doe", "a+b"))
}

func TestShareLinkService_CopyShareLink(t *testing.T) {
	var copied string
	s := newTestShareLinks(func(v string) error {
		copied = v
		return nil
	})

	link, err := s.CopyShareLink("jane-doe")
	require.NoError(t, err)
	assert.Equal(t, link, copied)

	s.writeClipboard = func(string) error { return errors.New("no display") }
	link, err = s.CopyShareLink("jane-doe")
	assert.ErrorIs(t, err, ErrClipboard)
	assert.Equal(t, "https://health.example.com/share/jane-doe", link)
}

func TestShareLinkService_ShareQR(t *testing.T) {
	qr, err := newTestShareLinks(nil).ShareQR("jane-doe")
	require.NoError(t, err)
	assert.NotEmpty(t, qr)
}

package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/skip2/go-qrcode"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
)

type shareLinkService struct {
	baseURL string

	writeClipboard func(string) error
	logger         *logger.Logger
}

// NewShareLinkService constructs a [ShareLinkService] for the frontend at
// cfg.FrontendBaseURL.
func NewShareLinkService(cfg config.ClientShare, logger *logger.Logger) ShareLinkService {
	return &shareLinkService{
		baseURL:        strings.TrimRight(cfg.FrontendBaseURL, "/"),
		writeClipboard: clipboard.WriteAll,
		logger:         logger,
	}
}

// ShareURL returns <FrontendBaseURL>/share/<username>.
func (s *shareLinkService) ShareURL(username string) string {
	return s.baseURL + "/share/" + url.PathEscape(username)
}

func (s *shareLinkService) EmergencyURL(username, token string) string {
	return s.baseURL + "/emergency/" + url.PathEscape(username) + "?token=" + url.QueryEscape(token)
}

func (s *shareLinkService) CopyShareLink(username string) (string, error) {
	link := s.ShareURL(username)
	if err := s.writeClipboard(link); err != nil {
		s.logger.Warn().Err(err).Msg("clipboard write failed")
		return link, fmt.Errorf("%w: %w", ErrClipboard, err)
	}
	return link, nil
}

func (s *shareLinkService) ShareQR(username string) (string, error) {
	code, err := qrcode.New(s.ShareURL(username), qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("error encoding share link: %w", err)
	}
	return code.ToSmallString(false), nil
}

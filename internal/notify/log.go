package notify

import (
	"context"

	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/models"
)

type logNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier returns a [Notifier] that writes every code to log.
func NewLogNotifier(log *logger.Logger) Notifier {
	return &logNotifier{logger: log}
}

func (n *logNotifier) SendOTP(_ context.Context, msg models.OTPMessage) error {
	n.logger.Info().
		Str("handle", msg.Handle).
		Str("email", msg.Email).
		Str("code", msg.Code).
		Time("expires_at", msg.ExpiresAt).
		Msg("one-time code issued")
	return nil
}

func (n *logNotifier) Close() error {
	return nil
}

// Package notify delivers one-time share codes to profile owners. The AMQP
// notifier hands messages to a mail worker through RabbitMQ; the log
// notifier writes them to the server log for local development.
package notify

import (
	"context"

	"github.com/MKhiriev/go-health-share/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/notify_mock.go -package=mock

// Notifier delivers OTP messages.
type Notifier interface {
	SendOTP(ctx context.Context, msg models.OTPMessage) error
	Close() error
}

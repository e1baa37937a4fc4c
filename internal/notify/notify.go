package notify

import (
	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
)

// New returns the AMQP notifier when a broker URL is configured and the log
// notifier otherwise.
func New(cfg config.Notify, log *logger.Logger) (Notifier, error) {
	if cfg.AMQPURL == "" {
		log.Warn().Str("func", "notify.New").Msg("no AMQP url configured, one-time codes are written to the log")
		return NewLogNotifier(log), nil
	}

	return NewAMQPNotifier(cfg, log)
}

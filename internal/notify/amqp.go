package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/models"
)

// publisher is the subset of *amqp091.Channel the notifier uses.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type amqpNotifier struct {
	conn    *amqp091.Connection
	channel publisher
	queue   string
	logger  *logger.Logger
}

// NewAMQPNotifier connects to the broker and declares the durable delivery
// queue.
func NewAMQPNotifier(cfg config.Notify, log *logger.Logger) (Notifier, error) {
	conn, err := amqp091.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		cfg.Queue, // name
		true,      // durable
		false,     // auto-deleted
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	log.Info().Str("func", "NewAMQPNotifier").Str("queue", cfg.Queue).Msg("otp notifier initialized")

	return &amqpNotifier{
		conn:    conn,
		channel: channel,
		queue:   cfg.Queue,
		logger:  log,
	}, nil
}

func (n *amqpNotifier) SendOTP(ctx context.Context, msg models.OTPMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal otp message: %w", err)
	}

	err = n.channel.PublishWithContext(ctx,
		"",      // default exchange
		n.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
			Headers: amqp091.Table{
				"event_type": "share.otp.issued",
				"handle":     msg.Handle,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish otp message: %w", err)
	}

	logger.FromContext(ctx).Debug().Str("handle", msg.Handle).Msg("published otp message")
	return nil
}

func (n *amqpNotifier) Close() error {
	if n.channel != nil {
		if err := n.channel.Close(); err != nil {
			n.logger.Err(err).Msg("error closing RabbitMQ channel")
		}
	}

	if n.conn != nil {
		if err := n.conn.Close(); err != nil {
			return fmt.Errorf("error closing RabbitMQ connection: %w", err)
		}
	}

	return nil
}

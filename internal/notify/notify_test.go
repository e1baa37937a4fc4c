package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/models"
)

type fakeChannel struct {
	key      string
	exchange string
	msg      amqp091.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

var testMessage = models.OTPMessage{
	Handle:    "jane-doe",
	Email:     "jane@example.com",
	Code:      "482913",
	ExpiresAt: time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC),
}

func TestNew_WithoutBrokerFallsBackToLog(t *testing.T) {
	n, err := New(config.Notify{}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &logNotifier{}, n)
}

func TestLogNotifier_SendOTP(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(logger.New(&buf, "test"))

	require.NoError(t, n.SendOTP(context.Background(), testMessage))
	assert.Contains(t, buf.String(), `"handle":"jane-doe"`)
	assert.Contains(t, buf.String(), `"code":"482913"`)
	assert.NoError(t, n.Close())
}

func TestAMQPNotifier_SendOTP(t *testing.T) {
	ch := &fakeChannel{}
	n := &amqpNotifier{channel: ch, queue: "share.otp", logger: logger.Nop()}

	require.NoError(t, n.SendOTP(context.Background(), testMessage))

	assert.Equal(t, "", ch.exchange)
	assert.Equal(t, "share.otp", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp091.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "jane-doe", ch.msg.Headers["handle"])

	var got models.OTPMessage
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, testMessage, got)
}

func TestAMQPNotifier_SendOTPError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	n := &amqpNotifier{channel: ch, queue: "share.otp", logger: logger.Nop()}

	err := n.SendOTP(context.Background(), testMessage)
	assert.ErrorContains(t, err, "channel closed")
}

func TestAMQPNotifier_Close(t *testing.T) {
	ch := &fakeChannel{}
	n := &amqpNotifier{channel: ch, logger: logger.Nop()}

	require.NoError(t, n.Close())
	assert.True(t, ch.closed)
}

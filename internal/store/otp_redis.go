package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/models"
)

var _ OTPStore = (*RedisOTPStore)(nil)

// RedisOTPStore keeps challenges in Redis with a native key TTL, so several
// server replicas share the same challenges.
type RedisOTPStore struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisOTPStore connects to Redis and verifies the connection.
func NewRedisOTPStore(ctx context.Context, cfg config.Redis, log *logger.Logger) (*RedisOTPStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisOTPStore").Msg("error connecting redis (ping)")
		client.Close()
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	log.Info().Str("func", "NewRedisOTPStore").Str("address", cfg.Address).Msg("connected to redis successfully")

	return &RedisOTPStore{client: client, logger: log}, nil
}

func (r *RedisOTPStore) SaveChallenge(ctx context.Context, c models.OTPChallenge, ttl time.Duration) error {
	if ttl <= 0 {
		return r.DeleteChallenge(ctx, c.Handle)
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}

	if err = r.client.Set(ctx, challengeKey(c.Handle), data, ttl).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*RedisOTPStore.SaveChallenge").Msg("error saving challenge")
		return err
	}
	return nil
}

func (r *RedisOTPStore) GetChallenge(ctx context.Context, handle string) (models.OTPChallenge, error) {
	data, err := r.client.Get(ctx, challengeKey(handle)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.OTPChallenge{}, ErrChallengeNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*RedisOTPStore.GetChallenge").Msg("error reading challenge")
		return models.OTPChallenge{}, err
	}

	var c models.OTPChallenge
	if err = json.Unmarshal(data, &c); err != nil {
		return models.OTPChallenge{}, fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}
	return c, nil
}

func (r *RedisOTPStore) DeleteChallenge(ctx context.Context, handle string) error {
	return r.client.Del(ctx, challengeKey(handle)).Err()
}

// Close closes the underlying client.
func (r *RedisOTPStore) Close() error {
	return r.client.Close()
}

func challengeKey(handle string) string {
	return "share:otp:" + handle
}

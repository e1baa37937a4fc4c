package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
)

// Storages groups every server-side store.
type Storages struct {
	UserRepository    UserRepository
	ProfileRepository ProfileRepository
	OTPStore          OTPStore

	db      *DB
	closers []io.Closer
}

// NewStorages connects PostgreSQL and picks the OTP store: Redis when an
// address is configured, process memory otherwise.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	s := &Storages{
		UserRepository:    NewUserRepository(db, log),
		ProfileRepository: NewProfileRepository(db, log),
		db:                db,
		closers:           []io.Closer{db},
	}

	if cfg.Redis.Address != "" {
		redisStore, err := NewRedisOTPStore(ctx, cfg.Redis, log)
		if err != nil {
			db.Close()
			return nil, err
		}
		s.OTPStore = redisStore
		s.closers = append(s.closers, redisStore)
	} else {
		log.Warn().Msg("no redis address configured, keeping otp challenges in memory")
		s.OTPStore = NewMemoryOTPStore()
	}

	return s, nil
}

// MemoryOTPStore returns the in-memory OTP store, or nil when challenges live
// in Redis.
func (s *Storages) MemoryOTPStore() *MemoryOTPStore {
	m, _ := s.OTPStore.(*MemoryOTPStore)
	return m
}

// Ping checks the database connection.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases every connection in reverse order of creation.
func (s *Storages) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ClientStorages groups the client-side stores.
type ClientStorages struct {
	Credentials CredentialStore

	db *DB
}

// NewClientStorages opens the local SQLite database.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	db, err := NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &ClientStorages{
		Credentials: NewCredentialStore(db, log),
		db:          db,
	}, nil
}

// Close closes the local database.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-health-share/internal/logger"
)

const credentialsTable = "credentials"

// credentialStore is the SQLite-backed [CredentialStore] of the client.
type credentialStore struct {
	db     *DB
	logger *logger.Logger
}

// NewCredentialStore constructs a [CredentialStore] on top of the client
// database.
func NewCredentialStore(db *DB, logger *logger.Logger) CredentialStore {
	return &credentialStore{db: db, logger: logger}
}

func (s *credentialStore) Put(ctx context.Context, key, value string) error {
	query, args, err := sq.Insert(credentialsTable).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*credentialStore.Put").Msg("error saving credential")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (s *credentialStore) Get(ctx context.Context, key string) (string, error) {
	query, args, err := sq.Select("value").
		From(credentialsTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", ErrCredentialNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*credentialStore.Get").Msg("error reading credential")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return value, nil
}

func (s *credentialStore) Delete(ctx context.Context, key string) error {
	query, args, err := sq.Delete(credentialsTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*credentialStore.Delete").Msg("error deleting credential")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

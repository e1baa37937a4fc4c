package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-health-share/internal/logger"
)

const (
	maxTxAttempts = 3
	retryBackoff  = 50 * time.Millisecond
)

// psql renders squirrel queries with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DB is a connection pool together with the driver-specific error
// classification used to decide on retries.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// withRetry runs op again while it fails with an error classified as
// [Retryable], at most maxTxAttempts times.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	for attempt := 1; ; attempt++ {
		err := op()
		if err == nil || attempt == maxTxAttempts || db.errorClassificator == nil ||
			db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).Int("attempt", attempt).Msg("retrying transaction")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
}

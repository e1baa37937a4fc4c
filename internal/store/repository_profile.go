package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/models"
)

var profileColumns = []string{
	"p.user_id",
	"u.username",
	"u.email",
	"p.attributes",
	"p.is_public",
	"p.access_type",
	"p.share_password_hash",
	"p.expires_at",
	"p.public_fields",
	"p.emergency_enabled",
	"p.emergency_critical_only",
	"p.critical_fields",
}

type profileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProfileRepository constructs a [ProfileRepository] backed by db.
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

func selectProfile() sq.SelectBuilder {
	return psql.Select(profileColumns...).
		From("profiles p").
		Join("users u ON u.user_id = p.user_id")
}

func (r *profileRepository) GetProfileByUsername(ctx context.Context, username string) (models.OwnerProfile, error) {
	return r.getProfile(ctx, r.db.DB, selectProfile().Where(sq.Eq{"u.username": username}))
}

func (r *profileRepository) GetProfileByUserID(ctx context.Context, userID int64) (models.OwnerProfile, error) {
	return r.getProfile(ctx, r.db.DB, selectProfile().Where(sq.Eq{"p.user_id": userID}))
}

// UpdateProfile implements [ProfileRepository]. The whole read-modify-write
// is retried when PostgreSQL aborts it with a serialization failure or a
// deadlock.
func (r *profileRepository) UpdateProfile(ctx context.Context, userID int64, apply func(*models.OwnerProfile) error) (models.OwnerProfile, error) {
	var updated models.OwnerProfile
	err := r.db.withRetry(ctx, func() error {
		var err error
		updated, err = r.updateProfileTx(ctx, userID, apply)
		return err
	})
	if err != nil {
		return models.OwnerProfile{}, err
	}
	return updated, nil
}

func (r *profileRepository) updateProfileTx(ctx context.Context, userID int64, apply func(*models.OwnerProfile) error) (models.OwnerProfile, error) {
	log := logger.FromContext(ctx).With().Str("func", "*profileRepository.UpdateProfile").Logger()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("error beginning transaction")
		return models.OwnerProfile{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	profile, err := r.getProfile(ctx, tx, selectProfile().Where(sq.Eq{"p.user_id": userID}).Suffix("FOR UPDATE OF p"))
	if err != nil {
		return models.OwnerProfile{}, err
	}

	if err = apply(&profile); err != nil {
		return models.OwnerProfile{}, err
	}

	values, err := profileValues(profile)
	if err != nil {
		return models.OwnerProfile{}, err
	}

	query, args, err := psql.Update(profile.TableName()).
		SetMap(values).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return models.OwnerProfile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Msg("error updating profile")
		return models.OwnerProfile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("error committing transaction")
		return models.OwnerProfile{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return profile, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *profileRepository) getProfile(ctx context.Context, q queryRower, b sq.SelectBuilder) (models.OwnerProfile, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return models.OwnerProfile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		p              models.OwnerProfile
		accessType     string
		expiresAt      sql.NullTime
		attributes     []byte
		publicFields   []byte
		criticalFields []byte
	)
	err = q.QueryRowContext(ctx, query, args...).Scan(
		&p.UserID,
		&p.Username,
		&p.Email,
		&attributes,
		&p.Share.IsPublic,
		&accessType,
		&p.Share.PasswordHash,
		&expiresAt,
		&publicFields,
		&p.Emergency.Enabled,
		&p.Emergency.ShowCriticalOnly,
		&criticalFields,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.OwnerProfile{}, ErrProfileNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*profileRepository.getProfile").Msg("error scanning profile")
		return models.OwnerProfile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	p.Share.AccessType = models.AccessType(accessType)
	if expiresAt.Valid {
		t := expiresAt.Time
		p.Share.ExpiresAt = &t
	}

	if err = decodeColumn(attributes, &p.Attributes); err != nil {
		return models.OwnerProfile{}, err
	}
	if err = decodeColumn(publicFields, &p.Share.PublicFields); err != nil {
		return models.OwnerProfile{}, err
	}
	if err = decodeColumn(criticalFields, &p.Emergency.CriticalFields); err != nil {
		return models.OwnerProfile{}, err
	}

	return p, nil
}

func profileValues(p models.OwnerProfile) (map[string]any, error) {
	attributes, err := encodeColumn(p.Attributes)
	if err != nil {
		return nil, err
	}
	publicFields, err := encodeColumn(nonNilFields(p.Share.PublicFields))
	if err != nil {
		return nil, err
	}
	criticalFields, err := encodeColumn(nonNilFields(p.Emergency.CriticalFields))
	if err != nil {
		return nil, err
	}

	var expiresAt any
	if p.Share.ExpiresAt != nil {
		expiresAt = p.Share.ExpiresAt.UTC()
	}

	return map[string]any{
		"attributes":              attributes,
		"is_public":               p.Share.IsPublic,
		"access_type":             string(p.Share.AccessType),
		"share_password_hash":     p.Share.PasswordHash,
		"expires_at":              expiresAt,
		"public_fields":           publicFields,
		"emergency_enabled":       p.Emergency.Enabled,
		"emergency_critical_only": p.Emergency.ShowCriticalOnly,
		"critical_fields":         criticalFields,
		"updated_at":              sq.Expr("NOW()"),
	}, nil
}

func nonNilFields(s models.FieldSet) models.FieldSet {
	if s == nil {
		return models.FieldSet{}
	}
	return s
}

func encodeColumn(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}
	return string(b), nil
}

func decodeColumn(b []byte, v any) error {
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}
	return nil
}

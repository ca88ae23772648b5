package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
	"github.com/yigit/htiportal/internal/pkg/dberrors"
)

// PgCredentialRepository stores password hashes
type PgCredentialRepository struct {
	db DBTX
}

// NewCredentialRepository creates a new PgCredentialRepository
func NewCredentialRepository(db DBTX) *PgCredentialRepository {
	return &PgCredentialRepository{db: db}
}

// GetHash returns the stored password hash for a profile.
func (r *PgCredentialRepository) GetHash(ctx context.Context, profileID uuid.UUID) (string, error) {
	sql, args, err := psql.Select("password_hash").
		From("auth_credentials").
		Where(squirrel.Eq{"profile_id": profileID}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build get credential query: %w", err)
	}

	var hash string
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrResourceNotFound
		}
		return "", fmt.Errorf("error getting credential: %w", err)
	}
	return hash, nil
}

// SetHash creates or replaces a profile's password hash.
func (r *PgCredentialRepository) SetHash(ctx context.Context, profileID uuid.UUID, hash string) error {
	sql, args, err := psql.Insert("auth_credentials").
		Columns("profile_id", "password_hash").
		Values(profileID, hash).
		Suffix("ON CONFLICT (profile_id) DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set credential query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProfileNotFound
		}
		return fmt.Errorf("error setting credential: %w", err)
	}
	return nil
}

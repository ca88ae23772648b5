package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
)

// PgStaffRepository handles staff database operations
type PgStaffRepository struct {
	db DBTX
}

// NewStaffRepository creates a new PgStaffRepository
func NewStaffRepository(db DBTX) *PgStaffRepository {
	return &PgStaffRepository{db: db}
}

// GetByID retrieves a staff record by ID
func (r *PgStaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	sql, args, err := psql.Select("id", "profile_id", "staff_no", "department_id", "designation", "created_at", "updated_at").
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get staff query: %w", err)
	}

	var s models.Staff
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.ProfileID, &s.StaffNo, &s.DepartmentID, &s.Designation, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStaffNotFound
		}
		return nil, fmt.Errorf("error getting staff: %w", err)
	}
	return &s, nil
}

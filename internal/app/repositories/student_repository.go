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

// PgStudentRepository handles student database operations
type PgStudentRepository struct {
	db DBTX
}

// NewStudentRepository creates a new PgStudentRepository
func NewStudentRepository(db DBTX) *PgStudentRepository {
	return &PgStudentRepository{db: db}
}

// GetIDByProfileID resolves the student row owned by a profile.
func (r *PgStudentRepository) GetIDByProfileID(ctx context.Context, profileID uuid.UUID) (uuid.UUID, error) {
	sql, args, err := psql.Select("id").
		From("students").
		Where(squirrel.Eq{"profile_id": profileID}).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build get student id query: %w", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, apperrors.ErrStudentNotFound
		}
		return uuid.Nil, fmt.Errorf("error getting student by profile: %w", err)
	}
	return id, nil
}

// GetByID retrieves a student by ID
func (r *PgStudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	sql, args, err := psql.Select(
		"id", "profile_id", "matric_no", "program_id", "department_id", "level", "course_session_id",
		"status", "guardian_first_name", "guardian_last_name", "guardian_phone", "guardian_relationship",
		"created_at", "updated_at",
	).
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var s models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.ProfileID, &s.MatricNo, &s.ProgramID, &s.DepartmentID, &s.Level, &s.CourseSessionID,
		&s.Status, &s.GuardianFirstName, &s.GuardianLastName, &s.GuardianPhone, &s.GuardianRelationship,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return &s, nil
}

// Update applies a column map to a student row.
func (r *PgStudentRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return updateByID(ctx, r.db, "students", id, fields, apperrors.ErrStudentNotFound)
}

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
	"github.com/yigit/htiportal/internal/pkg/logger"
)

var offeringColumns = []string{
	"co.id", "co.course_id", "co.session_id", "co.semester", "co.level", "co.is_published", "co.created_at",
	"c.code", "c.title", "c.units",
}

// PgCourseOfferingRepository handles course offering database operations
type PgCourseOfferingRepository struct {
	db DBTX
}

// NewCourseOfferingRepository creates a new PgCourseOfferingRepository
func NewCourseOfferingRepository(db DBTX) *PgCourseOfferingRepository {
	return &PgCourseOfferingRepository{db: db}
}

func offeringSelect() squirrel.SelectBuilder {
	return psql.Select(offeringColumns...).
		From("course_offerings co").
		Join("courses c ON c.id = co.course_id")
}

// visibleOfferingsQuery selects published offerings, newest first, limited to the
// scope's id set when it has one.
func visibleOfferingsQuery(scope models.OfferingScope) squirrel.SelectBuilder {
	q := offeringSelect().
		Where(squirrel.Eq{"co.is_published": true}).
		OrderBy("co.created_at DESC")
	if scope.Restricted() {
		q = q.Where(squirrel.Eq{"co.id": scope.OfferingIDs})
	}
	return q
}

// ListPublished returns published offerings within scope.
func (r *PgCourseOfferingRepository) ListPublished(ctx context.Context, scope models.OfferingScope) ([]*models.CourseOffering, error) {
	offerings := []*models.CourseOffering{}
	if scope.Restricted() && len(scope.OfferingIDs) == 0 {
		return offerings, nil
	}

	sql, args, err := visibleOfferingsQuery(scope).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list offerings query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list offerings query")
		return nil, fmt.Errorf("error querying course offerings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course offering: %w", err)
		}
		offerings = append(offerings, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course offerings: %w", err)
	}

	return offerings, nil
}

func scanOffering(row pgx.Row) (*models.CourseOffering, error) {
	var o models.CourseOffering
	err := row.Scan(
		&o.ID, &o.CourseID, &o.SessionID, &o.Semester, &o.Level, &o.IsPublished, &o.CreatedAt,
		&o.CourseCode, &o.CourseTitle, &o.CourseUnits,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID retrieves a course offering regardless of its published state.
func (r *PgCourseOfferingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CourseOffering, error) {
	sql, args, err := offeringSelect().Where(squirrel.Eq{"co.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get offering query: %w", err)
	}

	o, err := scanOffering(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOfferingNotFound
		}
		return nil, fmt.Errorf("error getting course offering: %w", err)
	}
	return o, nil
}

// SetPublished writes the published flag.
func (r *PgCourseOfferingRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	sql, args, err := psql.Update("course_offerings").
		Set("is_published", published).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build publish query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("offeringID", id.String()).Msg("Error updating publish flag")
		return fmt.Errorf("error updating course offering: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrOfferingNotFound
	}
	return nil
}

// CountStaff counts staff assigned to an offering.
func (r *PgCourseOfferingRepository) CountStaff(ctx context.Context, offeringID uuid.UUID) (int, error) {
	sql, args, err := psql.Select("COUNT(*)").
		From("course_offering_staff").
		Where(squirrel.Eq{"course_offering_id": offeringID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count staff query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting offering staff: %w", err)
	}
	return count, nil
}

// AssignedOfferingIDs returns the offerings a staff member is assigned to.
func (r *PgCourseOfferingRepository) AssignedOfferingIDs(ctx context.Context, staffID uuid.UUID) ([]uuid.UUID, error) {
	sql, args, err := psql.Select("course_offering_id").
		From("course_offering_staff").
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build assigned offerings query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying assigned offerings: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning assigned offering: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assigned offerings: %w", err)
	}
	return ids, nil
}

// IsStaffAssigned reports whether staffID teaches offeringID.
func (r *PgCourseOfferingRepository) IsStaffAssigned(ctx context.Context, offeringID, staffID uuid.UUID) (bool, error) {
	sql, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From("course_offering_staff").
		Where(squirrel.Eq{"course_offering_id": offeringID, "staff_id": staffID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build staff assignment query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking staff assignment: %w", err)
	}
	return exists, nil
}

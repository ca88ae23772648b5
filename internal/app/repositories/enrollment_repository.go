package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
	"github.com/yigit/htiportal/internal/pkg/dberrors"
	"github.com/yigit/htiportal/internal/pkg/logger"
)

const enrollmentUniqueConstraint = "enrollments_student_offering_key"

// PgEnrollmentRepository handles enrollment database operations
type PgEnrollmentRepository struct {
	db DBTX
}

// NewEnrollmentRepository creates a new PgEnrollmentRepository
func NewEnrollmentRepository(db DBTX) *PgEnrollmentRepository {
	return &PgEnrollmentRepository{db: db}
}

// Create enrolls a student. Duplicates are rejected by the unique constraint.
func (r *PgEnrollmentRepository) Create(ctx context.Context, studentID, offeringID uuid.UUID) (*models.Enrollment, error) {
	e := &models.Enrollment{ID: uuid.New(), StudentID: studentID, CourseOfferingID: offeringID}

	sql, args, err := psql.Insert("enrollments").
		Columns("id", "student_id", "course_offering_id").
		Values(e.ID, studentID, offeringID).
		Suffix("RETURNING enrolled_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.EnrolledAt); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, enrollmentUniqueConstraint):
			return nil, apperrors.ErrAlreadyEnrolled
		case dberrors.IsForeignKeyViolation(err):
			return nil, apperrors.NewResourceNotFoundError("Student or course offering not found")
		}
		logger.Error().Err(err).Str("studentID", studentID.String()).Msg("Error creating enrollment")
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}
	return e, nil
}

// Delete removes an enrollment by its composite key. Missing rows are not an error.
func (r *PgEnrollmentRepository) Delete(ctx context.Context, studentID, offeringID uuid.UUID) error {
	sql, args, err := psql.Delete("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_offering_id": offeringID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete enrollment query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	return nil
}

// Roster lists students enrolled in an offering, ordered by name.
func (r *PgEnrollmentRepository) Roster(ctx context.Context, offeringID uuid.UUID) ([]*models.RosterEntry, error) {
	sql, args, err := psql.Select("e.id", "e.student_id", "s.matric_no", "p.first_name", "p.last_name", "e.enrolled_at").
		From("enrollments e").
		Join("students s ON s.id = e.student_id").
		Join("profiles p ON p.id = s.profile_id").
		Where(squirrel.Eq{"e.course_offering_id": offeringID}).
		OrderBy("p.last_name ASC", "p.first_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build roster query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying roster: %w", err)
	}
	defer rows.Close()

	roster := []*models.RosterEntry{}
	for rows.Next() {
		var entry models.RosterEntry
		if err := rows.Scan(&entry.EnrollmentID, &entry.StudentID, &entry.MatricNo, &entry.FirstName, &entry.LastName, &entry.EnrolledAt); err != nil {
			return nil, fmt.Errorf("error scanning roster entry: %w", err)
		}
		roster = append(roster, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster: %w", err)
	}
	return roster, nil
}

func studentEnrollmentsQuery(studentID uuid.UUID, sessionID *uuid.UUID) squirrel.SelectBuilder {
	q := psql.Select("e.id", "e.course_offering_id", "co.session_id", "co.semester", "co.level",
		"c.code", "c.title", "c.units", "e.enrolled_at").
		From("enrollments e").
		Join("course_offerings co ON co.id = e.course_offering_id").
		Join("courses c ON c.id = co.course_id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("e.enrolled_at DESC")
	if sessionID != nil {
		q = q.Where(squirrel.Eq{"co.session_id": *sessionID})
	}
	return q
}

// ListForStudent lists a student's enrollments, optionally within one session.
func (r *PgEnrollmentRepository) ListForStudent(ctx context.Context, studentID uuid.UUID, sessionID *uuid.UUID) ([]*models.StudentEnrollment, error) {
	sql, args, err := studentEnrollmentsQuery(studentID, sessionID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying student enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*models.StudentEnrollment{}
	for rows.Next() {
		var e models.StudentEnrollment
		if err := rows.Scan(&e.EnrollmentID, &e.CourseOfferingID, &e.SessionID, &e.Semester, &e.Level,
			&e.CourseCode, &e.CourseTitle, &e.CourseUnits, &e.EnrolledAt); err != nil {
			return nil, fmt.Errorf("error scanning student enrollment: %w", err)
		}
		enrollments = append(enrollments, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student enrollments: %w", err)
	}
	return enrollments, nil
}

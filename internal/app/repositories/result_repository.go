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

const resultUpsertSuffix = `ON CONFLICT (student_id, course_offering_id) DO UPDATE SET
	ca_score = EXCLUDED.ca_score,
	exam_score = EXCLUDED.exam_score,
	total_score = EXCLUDED.total_score,
	grade_letter = EXCLUDED.grade_letter,
	grade_points = EXCLUDED.grade_points,
	remark = EXCLUDED.remark,
	entered_by = EXCLUDED.entered_by,
	updated_at = NOW()
RETURNING id, created_at, updated_at`

// PgResultRepository handles result database operations
type PgResultRepository struct {
	db DBTX
}

// NewResultRepository creates a new PgResultRepository
func NewResultRepository(db DBTX) *PgResultRepository {
	return &PgResultRepository{db: db}
}

func upsertResultQuery(res *models.Result) squirrel.InsertBuilder {
	return psql.Insert("results").
		Columns("id", "student_id", "course_offering_id", "ca_score", "exam_score", "total_score",
			"grade_letter", "grade_points", "remark", "entered_by").
		Values(res.ID, res.StudentID, res.CourseOfferingID, res.CAScore, res.ExamScore, res.TotalScore,
			res.GradeLetter, res.GradePoints, res.Remark, res.EnteredBy).
		Suffix(resultUpsertSuffix)
}

// Upsert inserts a result or overwrites the existing one for the same
// (student, offering) pair.
func (r *PgResultRepository) Upsert(ctx context.Context, res *models.Result) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}

	sql, args, err := upsertResultQuery(res).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert result query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewResourceNotFoundError("Student or course offering not found")
		}
		logger.Error().Err(err).Str("studentID", res.StudentID.String()).Msg("Error upserting result")
		return fmt.Errorf("error saving result: %w", err)
	}
	return nil
}

// ListForStudent lists a student's results, optionally within one session.
func (r *PgResultRepository) ListForStudent(ctx context.Context, studentID uuid.UUID, sessionID *uuid.UUID) ([]*models.StudentResult, error) {
	q := psql.Select("r.id", "r.student_id", "r.course_offering_id", "r.ca_score", "r.exam_score", "r.total_score",
		"r.grade_letter", "r.grade_points", "r.remark", "r.entered_by", "r.created_at", "r.updated_at",
		"co.session_id", "co.semester", "c.code", "c.title", "c.units").
		From("results r").
		Join("course_offerings co ON co.id = r.course_offering_id").
		Join("courses c ON c.id = co.course_id").
		Where(squirrel.Eq{"r.student_id": studentID}).
		OrderBy("co.semester ASC", "c.code ASC")
	if sessionID != nil {
		q = q.Where(squirrel.Eq{"co.session_id": *sessionID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student results query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying student results: %w", err)
	}
	defer rows.Close()

	results := []*models.StudentResult{}
	for rows.Next() {
		var sr models.StudentResult
		if err := rows.Scan(&sr.ID, &sr.StudentID, &sr.CourseOfferingID, &sr.CAScore, &sr.ExamScore, &sr.TotalScore,
			&sr.GradeLetter, &sr.GradePoints, &sr.Remark, &sr.EnteredBy, &sr.CreatedAt, &sr.UpdatedAt,
			&sr.SessionID, &sr.Semester, &sr.CourseCode, &sr.CourseTitle, &sr.CourseUnits); err != nil {
			return nil, fmt.Errorf("error scanning student result: %w", err)
		}
		results = append(results, &sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student results: %w", err)
	}
	return results, nil
}

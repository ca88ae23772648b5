package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/htiportal/internal/app/models"
)

// PgSessionRepository handles academic session database operations
type PgSessionRepository struct {
	db DBTX
}

// NewSessionRepository creates a new PgSessionRepository
func NewSessionRepository(db DBTX) *PgSessionRepository {
	return &PgSessionRepository{db: db}
}

// List returns sessions with the active one first, then newest first.
func (r *PgSessionRepository) List(ctx context.Context) ([]*models.Session, error) {
	sql, args, err := psql.Select("id", "name", "start_date", "end_date", "is_active", "created_at").
		From("sessions").
		OrderBy("is_active DESC", "start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list sessions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.Session{}
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.Name, &s.StartDate, &s.EndDate, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning session: %w", err)
		}
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}
	return sessions, nil
}

// PgProgramRepository handles program database operations
type PgProgramRepository struct {
	db DBTX
}

// NewProgramRepository creates a new PgProgramRepository
func NewProgramRepository(db DBTX) *PgProgramRepository {
	return &PgProgramRepository{db: db}
}

// List returns programs ordered by name.
func (r *PgProgramRepository) List(ctx context.Context) ([]*models.Program, error) {
	sql, args, err := psql.Select("id", "department_id", "name", "code", "duration_years", "created_at").
		From("programs").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying programs: %w", err)
	}
	defer rows.Close()

	programs := []*models.Program{}
	for rows.Next() {
		var p models.Program
		if err := rows.Scan(&p.ID, &p.DepartmentID, &p.Name, &p.Code, &p.DurationYears, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning program: %w", err)
		}
		programs = append(programs, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating programs: %w", err)
	}
	return programs, nil
}

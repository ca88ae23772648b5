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
	"github.com/yigit/htiportal/internal/pkg/dberrors"
	"github.com/yigit/htiportal/internal/pkg/logger"
)

const profileEmailConstraint = "profiles_email_key"

var profileColumns = []string{
	"id", "first_name", "middle_name", "last_name", "email", "phone", "gender",
	"date_of_birth", "address", "main_role", "unit", "onboarding_status", "created_at", "updated_at",
}

// PgProfileRepository handles profile database operations
type PgProfileRepository struct {
	db DBTX
}

// NewProfileRepository creates a new PgProfileRepository
func NewProfileRepository(db DBTX) *PgProfileRepository {
	return &PgProfileRepository{db: db}
}

// GetRole fetches only the role columns of a profile.
func (r *PgProfileRepository) GetRole(ctx context.Context, id uuid.UUID) (*models.RoleRecord, error) {
	sql, args, err := psql.Select("main_role", "unit").
		From("profiles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get role query: %w", err)
	}

	var (
		role models.Role
		unit *string
	)
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&role, &unit); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error getting profile role: %w", err)
	}

	record := &models.RoleRecord{MainRole: role}
	if unit != nil {
		u := models.Unit(*unit)
		record.Unit = &u
	}
	return record, nil
}

// GetByID retrieves a profile by ID
func (r *PgProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a profile by email, case-insensitively.
func (r *PgProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return r.getOne(ctx, squirrel.Expr("lower(email) = lower(?)", email))
}

func (r *PgProfileRepository) getOne(ctx context.Context, pred interface{}) (*models.Profile, error) {
	sql, args, err := psql.Select(profileColumns...).
		From("profiles").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	profile, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error getting profile: %w", err)
	}
	return profile, nil
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var (
		p    models.Profile
		unit *string
	)
	err := row.Scan(
		&p.ID, &p.FirstName, &p.MiddleName, &p.LastName, &p.Email, &p.Phone, &p.Gender,
		&p.DateOfBirth, &p.Address, &p.MainRole, &unit, &p.OnboardingStatus, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if unit != nil {
		u := models.Unit(*unit)
		p.Unit = &u
	}
	return &p, nil
}

// Create inserts a profile and fills in its generated fields.
func (r *PgProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.OnboardingStatus == "" {
		profile.OnboardingStatus = models.OnboardingPending
	}

	var unit *string
	if profile.Unit != nil {
		u := string(*profile.Unit)
		unit = &u
	}

	sql, args, err := psql.Insert("profiles").
		Columns("id", "first_name", "middle_name", "last_name", "email", "phone", "gender",
			"date_of_birth", "address", "main_role", "unit", "onboarding_status").
		Values(profile.ID, profile.FirstName, profile.MiddleName, profile.LastName, profile.Email,
			profile.Phone, profile.Gender, profile.DateOfBirth, profile.Address, string(profile.MainRole),
			unit, profile.OnboardingStatus).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create profile query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&profile.CreatedAt, &profile.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, profileEmailConstraint) {
			return fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
		}
		logger.Error().Err(err).Str("email", profile.Email).Msg("Error creating profile")
		return fmt.Errorf("error creating profile: %w", err)
	}
	return nil
}

// Update applies a column map to a profile. Callers own the whitelist.
func (r *PgProfileRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return updateByID(ctx, r.db, "profiles", id, fields, apperrors.ErrProfileNotFound)
}

// CompleteOnboarding flips only the onboarding status.
func (r *PgProfileRepository) CompleteOnboarding(ctx context.Context, id uuid.UUID) error {
	return updateByID(ctx, r.db, "profiles", id, map[string]interface{}{
		"onboarding_status": models.OnboardingCompleted,
	}, apperrors.ErrProfileNotFound)
}

// updateByID runs UPDATE table SET fields, updated_at = NOW() WHERE id = id.
// Zero affected rows is reported as notFound.
func updateByID(ctx context.Context, db DBTX, table string, id uuid.UUID, fields map[string]interface{}, notFound error) error {
	sql, args, err := buildUpdateByID(table, id, fields)
	if err != nil {
		return err
	}

	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("Referenced record does not exist")
		}
		logger.Error().Err(err).Str("table", table).Str("id", id.String()).Msg("Error executing update")
		return fmt.Errorf("error updating %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}

func buildUpdateByID(table string, id uuid.UUID, fields map[string]interface{}) (string, []interface{}, error) {
	if len(fields) == 0 {
		return "", nil, apperrors.NewBadRequestError("No updatable fields provided")
	}

	sql, args, err := psql.Update(table).
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build update %s query: %w", table, err)
	}
	return sql, args, nil
}

package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/htiportal/internal/app/models"
)

// DBTX is the subset of pgxpool.Pool the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// psql builds PostgreSQL statements with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ProfileRepository reads and writes profiles.
type ProfileRepository interface {
	GetRole(ctx context.Context, id uuid.UUID) (*models.RoleRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	CompleteOnboarding(ctx context.Context, id uuid.UUID) error
}

// StudentRepository reads and writes student records.
type StudentRepository interface {
	GetIDByProfileID(ctx context.Context, profileID uuid.UUID) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}

// StaffRepository reads staff records.
type StaffRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Staff, error)
}

// CourseOfferingRepository reads offerings and their staff assignments.
type CourseOfferingRepository interface {
	ListPublished(ctx context.Context, scope models.OfferingScope) ([]*models.CourseOffering, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.CourseOffering, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	CountStaff(ctx context.Context, offeringID uuid.UUID) (int, error)
	AssignedOfferingIDs(ctx context.Context, staffID uuid.UUID) ([]uuid.UUID, error)
	IsStaffAssigned(ctx context.Context, offeringID, staffID uuid.UUID) (bool, error)
}

// EnrollmentRepository manages student enrollments.
type EnrollmentRepository interface {
	Create(ctx context.Context, studentID, offeringID uuid.UUID) (*models.Enrollment, error)
	Delete(ctx context.Context, studentID, offeringID uuid.UUID) error
	Roster(ctx context.Context, offeringID uuid.UUID) ([]*models.RosterEntry, error)
	ListForStudent(ctx context.Context, studentID uuid.UUID, sessionID *uuid.UUID) ([]*models.StudentEnrollment, error)
}

// ResultRepository manages graded results.
type ResultRepository interface {
	Upsert(ctx context.Context, result *models.Result) error
	ListForStudent(ctx context.Context, studentID uuid.UUID, sessionID *uuid.UUID) ([]*models.StudentResult, error)
}

// SessionRepository lists academic sessions.
type SessionRepository interface {
	List(ctx context.Context) ([]*models.Session, error)
}

// ProgramRepository lists programs.
type ProgramRepository interface {
	List(ctx context.Context) ([]*models.Program, error)
}

// ReceiptRepository manages bursary receipts.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *models.Receipt) error
	List(ctx context.Context, filter models.ReceiptFilter) ([]*models.Receipt, int64, error)
}

// CredentialRepository stores password hashes for sign-in.
type CredentialRepository interface {
	GetHash(ctx context.Context, profileID uuid.UUID) (string, error)
	SetHash(ctx context.Context, profileID uuid.UUID, hash string) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Profiles        ProfileRepository
	Students        StudentRepository
	Staff           StaffRepository
	CourseOfferings CourseOfferingRepository
	Enrollments     EnrollmentRepository
	Results         ResultRepository
	Sessions        SessionRepository
	Programs        ProgramRepository
	Receipts        ReceiptRepository
	Credentials     CredentialRepository
}

// NewRepositories initializes all PostgreSQL repositories
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		Profiles:        NewProfileRepository(db),
		Students:        NewStudentRepository(db),
		Staff:           NewStaffRepository(db),
		CourseOfferings: NewCourseOfferingRepository(db),
		Enrollments:     NewEnrollmentRepository(db),
		Results:         NewResultRepository(db),
		Sessions:        NewSessionRepository(db),
		Programs:        NewProgramRepository(db),
		Receipts:        NewReceiptRepository(db),
		Credentials:     NewCredentialRepository(db),
	}
}

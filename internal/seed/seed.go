package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/app/repositories"
	"github.com/yigit/htiportal/internal/app/repositories/inmem"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
	pkgauth "github.com/yigit/htiportal/internal/pkg/auth"
	"github.com/yigit/htiportal/internal/pkg/logger"
)

// Admin identifies the bootstrap administrator.
type Admin struct {
	Email    string
	Password string
}

// CreateDefaultData creates the bootstrap admin profile and its password if
// they don't exist. An empty email or password disables seeding.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, admin Admin) error {
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" || admin.Password == "" {
		logger.Debug().Msg("No seed admin configured, skipping default data")
		return nil
	}

	profile, err := repos.Profiles.GetByEmail(ctx, email)
	switch {
	case err == nil:
		logger.Debug().Str("email", email).Msg("Seed admin already exists")
		return nil
	case !errors.Is(err, apperrors.ErrProfileNotFound):
		return fmt.Errorf("failed to look up seed admin: %w", err)
	}

	profile = &models.Profile{
		FirstName:        "Portal",
		LastName:         "Administrator",
		Email:            email,
		MainRole:         models.RoleAdmin,
		OnboardingStatus: models.OnboardingCompleted,
	}
	if err := repos.Profiles.Create(ctx, profile); err != nil {
		return fmt.Errorf("failed to create seed admin: %w", err)
	}

	hash, err := pkgauth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}
	if err := repos.Credentials.SetHash(ctx, profile.ID, hash); err != nil {
		return fmt.Errorf("failed to store seed admin password: %w", err)
	}

	logger.Info().Str("email", email).Msg("Seed admin created")
	return nil
}

// DemoCatalog fills an in-memory database with a small catalog so a local run
// has programs, sessions and offerings to show.
func DemoCatalog(db *inmem.DB) {
	dept := db.AddDepartment("Nursing and Public Health")
	nursing := db.AddProgram(models.Program{Name: "Nursing Science", Code: "NUR", DurationYears: 3, DepartmentID: &dept})
	_ = db.AddProgram(models.Program{Name: "Public Health", Code: "PHE", DurationYears: 2, DepartmentID: &dept})

	current := db.AddSession(models.Session{
		Name:      "2025/2026",
		StartDate: time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.July, 31, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	})
	_ = db.AddSession(models.Session{
		Name:      "2024/2025",
		StartDate: time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC),
	})

	for _, c := range []models.Course{
		{Code: "NUR101", Title: "Human Anatomy", Units: 3},
		{Code: "NUR103", Title: "Foundations of Nursing", Units: 2},
	} {
		courseID := db.AddCourse(c)
		db.AddOffering(models.CourseOffering{CourseID: courseID, SessionID: current, Semester: "first", Level: 100})
	}

	logger.Info().Str("program", nursing.String()).Msg("Demo catalog loaded")
}

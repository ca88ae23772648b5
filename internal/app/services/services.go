package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/app/repositories"
	"github.com/yigit/htiportal/internal/pkg/cache"
)

// Caller is the authorized principal a service acts for.
type Caller struct {
	PrincipalID uuid.UUID
	Role        models.Role
}

// Services holds all the service instances
type Services struct {
	Auth        *AuthService
	Offerings   *OfferingService
	Enrollments *EnrollmentService
	Results     *ResultService
	Students    *StudentAdminService
	Staff       *StaffAdminService
	Catalog     *CatalogService
	Receipts    *ReceiptService
}

// Deps are the non-repository collaborators of the services.
type Deps struct {
	Tokens   TokenIssuer
	Cache    cache.Cache
	CacheTTL time.Duration
}

// NewServices wires every service to the repositories.
func NewServices(repos *repositories.Repositories, deps Deps) *Services {
	if deps.Cache == nil {
		deps.Cache = cache.Noop{}
	}

	return &Services{
		Auth:        NewAuthService(repos.Profiles, repos.Credentials, deps.Tokens),
		Offerings:   NewOfferingService(repos.CourseOfferings, repos.Enrollments),
		Enrollments: NewEnrollmentService(repos.Enrollments),
		Results:     NewResultService(repos.Results),
		Students:    NewStudentAdminService(repos.Students, repos.Profiles),
		Staff:       NewStaffAdminService(repos.Staff, repos.Profiles, repos.Credentials),
		Catalog:     NewCatalogService(repos.Programs, repos.Sessions, deps.Cache, deps.CacheTTL),
		Receipts:    NewReceiptService(repos.Receipts),
	}
}

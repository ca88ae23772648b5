package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
	"github.com/yigit/htiportal/internal/pkg/logger"
)

// Guard denial messages
const (
	MsgUnauthorized    = "Unauthorized"
	MsgForbidden       = "Forbidden"
	MsgStudentNotFound = "Student record not found"
)

// Result is the outcome of a guard: Granted, Denied or Redirect.
type Result interface {
	isResult()
}

// Granted lets the request continue with the caller's identity.
type Granted struct {
	PrincipalID uuid.UUID
	Role        models.Role
	Unit        *models.Unit
	// StudentID is only set by RequireStudentAccess.
	StudentID uuid.UUID
}

// Denied terminates an API request with a status and an error message.
type Denied struct {
	Status  int
	Message string
}

// Redirect sends a page request elsewhere.
type Redirect struct {
	Location string
}

func (Granted) isResult()  {}
func (Denied) isResult()   {}
func (Redirect) isResult() {}

// Identifier resolves the principal of a request.
type Identifier interface {
	Resolve(req *http.Request) (uuid.UUID, error)
}

// RoleLookup fetches the role columns of a profile.
type RoleLookup interface {
	GetRole(ctx context.Context, id uuid.UUID) (*models.RoleRecord, error)
}

// StudentLookup resolves the student row owned by a profile.
type StudentLookup interface {
	GetIDByProfileID(ctx context.Context, profileID uuid.UUID) (uuid.UUID, error)
}

// Check is a guard bound to its configuration.
type Check func(ctx context.Context, req *http.Request) Result

// PageConfig holds the navigation targets of page guards.
type PageConfig struct {
	SignInPath    string
	DashboardPath string
}

// Guard composes identity and role lookup into authorization decisions.
type Guard struct {
	identity Identifier
	roles    RoleLookup
	students StudentLookup
	pages    PageConfig
}

// NewGuard creates a new Guard
func NewGuard(identity Identifier, roles RoleLookup, students StudentLookup, pages PageConfig) *Guard {
	return &Guard{identity: identity, roles: roles, students: students, pages: pages}
}

var (
	unauthorized    = Denied{Status: http.StatusUnauthorized, Message: MsgUnauthorized}
	forbidden       = Denied{Status: http.StatusForbidden, Message: MsgForbidden}
	studentNotFound = Denied{Status: http.StatusNotFound, Message: MsgStudentNotFound}
)

// principal runs identity resolution and role lookup. ok is false when either fails.
func (g *Guard) principal(ctx context.Context, req *http.Request) (Granted, bool) {
	id, err := g.identity.Resolve(req)
	if err != nil {
		return Granted{}, false
	}
	return g.lookup(ctx, id)
}

func (g *Guard) lookup(ctx context.Context, id uuid.UUID) (Granted, bool) {
	record, err := g.roles.GetRole(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrProfileNotFound) {
			logger.Warn().Err(err).Str("principalID", id.String()).Msg("Profile lookup failed during authorization")
		}
		return Granted{PrincipalID: id}, false
	}

	return Granted{PrincipalID: id, Role: record.MainRole, Unit: record.Unit}, true
}

// requireRoles grants callers whose role is in allowed.
func (g *Guard) requireRoles(allowed ...models.Role) Check {
	return func(ctx context.Context, req *http.Request) Result {
		granted, ok := g.principal(ctx, req)
		if !ok {
			return unauthorized
		}
		for _, role := range allowed {
			if granted.Role == role {
				return granted
			}
		}
		return forbidden
	}
}

// RequireAuthenticated grants any caller with a provisioned profile.
func (g *Guard) RequireAuthenticated() Check {
	return func(ctx context.Context, req *http.Request) Result {
		granted, ok := g.principal(ctx, req)
		if !ok {
			return unauthorized
		}
		return granted
	}
}

// RequireAdmin grants admins.
func (g *Guard) RequireAdmin() Check {
	return g.requireRoles(models.RoleAdmin)
}

// RequireAdminOrBursary grants admins and non-academic staff.
func (g *Guard) RequireAdminOrBursary() Check {
	return g.requireRoles(models.RoleAdmin, models.RoleNonAcademicStaff)
}

// RequireExamsAccess grants admins and academic staff.
func (g *Guard) RequireExamsAccess() Check {
	return g.requireRoles(models.RoleAdmin, models.RoleAcademicStaff)
}

// RequireStudentAccess grants students that own a student record and
// carries that record's id in the grant.
func (g *Guard) RequireStudentAccess() Check {
	return func(ctx context.Context, req *http.Request) Result {
		granted, ok := g.principal(ctx, req)
		if !ok {
			return unauthorized
		}
		if granted.Role != models.RoleStudent {
			return forbidden
		}

		studentID, err := g.students.GetIDByProfileID(ctx, granted.PrincipalID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrStudentNotFound) {
				logger.Warn().Err(err).Str("principalID", granted.PrincipalID.String()).Msg("Student lookup failed during authorization")
			}
			return studentNotFound
		}
		granted.StudentID = studentID
		return granted
	}
}

// RequireRole guards a page. Anonymous callers go to sign-in; callers with
// another role or no profile go to the dashboard router.
func (g *Guard) RequireRole(role models.Role) Check {
	return func(ctx context.Context, req *http.Request) Result {
		id, err := g.identity.Resolve(req)
		if err != nil {
			return Redirect{Location: g.pages.SignInPath}
		}

		granted, ok := g.lookup(ctx, id)
		if !ok || granted.Role != role {
			return Redirect{Location: g.pages.DashboardPath}
		}
		return granted
	}
}

// DashboardRoute forwards the caller to the root page of their role.
func (g *Guard) DashboardRoute() Check {
	return func(ctx context.Context, req *http.Request) Result {
		granted, ok := g.principal(ctx, req)
		if !ok {
			return Redirect{Location: g.pages.SignInPath}
		}

		home := granted.Role.HomePath()
		if home == "" {
			return Redirect{Location: g.pages.SignInPath}
		}
		return Redirect{Location: home}
	}
}

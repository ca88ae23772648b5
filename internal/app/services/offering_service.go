package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/app/repositories"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
	"github.com/yigit/htiportal/internal/pkg/logger"
)

// OfferingService handles course offering visibility and publishing
type OfferingService struct {
	offerings   repositories.CourseOfferingRepository
	enrollments repositories.EnrollmentRepository
}

// NewOfferingService creates a new OfferingService
func NewOfferingService(offerings repositories.CourseOfferingRepository, enrollments repositories.EnrollmentRepository) *OfferingService {
	return &OfferingService{offerings: offerings, enrollments: enrollments}
}

// scopeFor returns the offering scope of a caller. empty is true when the caller
// may see no offerings at all.
func (s *OfferingService) scopeFor(ctx context.Context, caller Caller) (scope models.OfferingScope, empty bool, err error) {
	switch caller.Role {
	case models.RoleAdmin:
		return models.OfferingScope{}, false, nil
	case models.RoleAcademicStaff:
		ids, err := s.offerings.AssignedOfferingIDs(ctx, caller.PrincipalID)
		if err != nil {
			return models.OfferingScope{}, false, err
		}
		return models.OfferingScope{OfferingIDs: ids}, len(ids) == 0, nil
	default:
		return models.OfferingScope{}, false, apperrors.ErrPermissionDenied
	}
}

// ListVisible lists the published offerings the caller may see. Academic staff
// only see offerings they are assigned to; with no assignments the offerings
// query is never issued.
func (s *OfferingService) ListVisible(ctx context.Context, caller Caller) ([]*models.CourseOffering, error) {
	scope, empty, err := s.scopeFor(ctx, caller)
	if err != nil {
		return nil, err
	}
	if empty {
		return []*models.CourseOffering{}, nil
	}

	return s.offerings.ListPublished(ctx, scope)
}

// GetVisible returns one offering. Offerings outside an academic staff member's
// assignments are reported as not found.
func (s *OfferingService) GetVisible(ctx context.Context, caller Caller, id uuid.UUID) (*models.CourseOffering, error) {
	if err := s.checkAssigned(ctx, caller, id, apperrors.ErrOfferingNotFound); err != nil {
		return nil, err
	}
	return s.offerings.GetByID(ctx, id)
}

// Roster lists the students enrolled in an offering.
func (s *OfferingService) Roster(ctx context.Context, caller Caller, offeringID uuid.UUID) ([]*models.RosterEntry, error) {
	denied := apperrors.NewForbiddenError("Not assigned to this course offering")
	if err := s.checkAssigned(ctx, caller, offeringID, denied); err != nil {
		return nil, err
	}
	return s.enrollments.Roster(ctx, offeringID)
}

func (s *OfferingService) checkAssigned(ctx context.Context, caller Caller, offeringID uuid.UUID, denied error) error {
	if caller.Role != models.RoleAcademicStaff {
		return nil
	}

	assigned, err := s.offerings.IsStaffAssigned(ctx, offeringID, caller.PrincipalID)
	if err != nil {
		return err
	}
	if !assigned {
		return denied
	}
	return nil
}

// SetPublished toggles an offering's visibility. Publishing requires at least
// one assigned staff member; the count is checked before the update.
func (s *OfferingService) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	if published {
		count, err := s.offerings.CountStaff(ctx, id)
		if err != nil {
			return err
		}
		if count == 0 {
			return apperrors.ErrNoAssignedStaff
		}
	}

	if err := s.offerings.SetPublished(ctx, id, published); err != nil {
		return err
	}

	logger.Info().Str("offeringID", id.String()).Bool("published", published).Msg("Course offering visibility changed")
	return nil
}

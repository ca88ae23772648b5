package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/app/models/dto"
	"github.com/yigit/htiportal/internal/app/repositories"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
	pkgauth "github.com/yigit/htiportal/internal/pkg/auth"
	"github.com/yigit/htiportal/internal/pkg/logger"
)

// StaffAdminService manages staff profiles and sign-in credentials
type StaffAdminService struct {
	staff       repositories.StaffRepository
	profiles    repositories.ProfileRepository
	credentials repositories.CredentialRepository
}

// NewStaffAdminService creates a new StaffAdminService
func NewStaffAdminService(staff repositories.StaffRepository, profiles repositories.ProfileRepository, credentials repositories.CredentialRepository) *StaffAdminService {
	return &StaffAdminService{staff: staff, profiles: profiles, credentials: credentials}
}

// UpdateProfile patches the profile behind a staff record.
func (s *StaffAdminService) UpdateProfile(ctx context.Context, staffID uuid.UUID, req dto.StaffProfileRequest) (*models.Profile, error) {
	body := make(map[string]interface{})
	for col, v := range map[string]*string{
		"first_name":    req.FirstName,
		"middle_name":   req.MiddleName,
		"last_name":     req.LastName,
		"phone":         req.Phone,
		"gender":        req.Gender,
		"date_of_birth": req.DateOfBirth,
		"address":       req.Address,
	} {
		if v != nil {
			body[col] = *v
		}
	}

	fields, err := ProfileFields(body)
	if err != nil {
		return nil, err
	}

	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.Update(ctx, staff.ProfileID, fields); err != nil {
		return nil, err
	}
	return s.profiles.GetByID(ctx, staff.ProfileID)
}

// SetTestPassword replaces the sign-in password of a staff member's profile.
func (s *StaffAdminService) SetTestPassword(ctx context.Context, staffID uuid.UUID, password string) error {
	if len(password) < pkgauth.MinPasswordLength {
		return apperrors.NewBadRequestError(fmt.Sprintf("password must be at least %d characters", pkgauth.MinPasswordLength))
	}

	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return err
	}

	hash, err := pkgauth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.credentials.SetHash(ctx, staff.ProfileID, hash); err != nil {
		return err
	}

	logger.Info().Str("staffID", staffID.String()).Msg("Staff password updated")
	return nil
}

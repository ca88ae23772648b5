package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/app/repositories"
)

// EnrollmentService handles student enrollments
type EnrollmentService struct {
	enrollments repositories.EnrollmentRepository
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(enrollments repositories.EnrollmentRepository) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments}
}

// Enroll adds a student to an offering. A repeated pair fails with ErrAlreadyEnrolled
// from the storage uniqueness rule.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, offeringID uuid.UUID) error {
	_, err := s.enrollments.Create(ctx, studentID, offeringID)
	return err
}

// Unenroll removes a student from an offering. Removing a pair that does not
// exist succeeds.
func (s *EnrollmentService) Unenroll(ctx context.Context, studentID, offeringID uuid.UUID) error {
	return s.enrollments.Delete(ctx, studentID, offeringID)
}

// ListForStudent lists a student's enrollments, optionally within one session.
func (s *EnrollmentService) ListForStudent(ctx context.Context, studentID uuid.UUID, sessionID *uuid.UUID) ([]*models.StudentEnrollment, error) {
	return s.enrollments.ListForStudent(ctx, studentID, sessionID)
}

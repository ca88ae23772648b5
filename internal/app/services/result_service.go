package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/app/models/dto"
	"github.com/yigit/htiportal/internal/app/repositories"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
)

// ResultService handles graded results
type ResultService struct {
	results repositories.ResultRepository
}

// NewResultService creates a new ResultService
func NewResultService(results repositories.ResultRepository) *ResultService {
	return &ResultService{results: results}
}

// Submit stores the result of a student in an offering, replacing any earlier
// submission for the same pair. entered_by is always the caller.
func (s *ResultService) Submit(ctx context.Context, caller Caller, req dto.ResultRequest) (*models.Result, error) {
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("student_id must be a valid UUID")
	}
	offeringID, err := uuid.Parse(req.CourseOfferingID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("course_offering_id must be a valid UUID")
	}
	if req.CAScore == nil || req.ExamScore == nil || req.TotalScore == nil || req.GradePoints == nil {
		return nil, apperrors.NewBadRequestError("Scores and grade points are required")
	}

	result := &models.Result{
		StudentID:        studentID,
		CourseOfferingID: offeringID,
		CAScore:          *req.CAScore,
		ExamScore:        *req.ExamScore,
		TotalScore:       *req.TotalScore,
		GradeLetter:      req.GradeLetter,
		GradePoints:      *req.GradePoints,
		Remark:           req.Remark,
		EnteredBy:        caller.PrincipalID,
	}

	if err := s.results.Upsert(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListForStudent lists a student's results, optionally within one session.
func (s *ResultService) ListForStudent(ctx context.Context, studentID uuid.UUID, sessionID *uuid.UUID) ([]*models.StudentResult, error) {
	return s.results.ListForStudent(ctx, studentID, sessionID)
}

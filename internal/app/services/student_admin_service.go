package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/app/models/dto"
	"github.com/yigit/htiportal/internal/app/repositories"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
)

// StudentAdminService manages the admin-editable parts of student records
type StudentAdminService struct {
	students repositories.StudentRepository
	profiles repositories.ProfileRepository
}

// NewStudentAdminService creates a new StudentAdminService
func NewStudentAdminService(students repositories.StudentRepository, profiles repositories.ProfileRepository) *StudentAdminService {
	return &StudentAdminService{students: students, profiles: profiles}
}

// GetAcademic returns a student's academic placement.
func (s *StudentAdminService) GetAcademic(ctx context.Context, studentID uuid.UUID) (models.StudentAcademic, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return models.StudentAcademic{}, err
	}
	return student.Academic(), nil
}

// UpdateAcademic patches a student's academic placement.
func (s *StudentAdminService) UpdateAcademic(ctx context.Context, studentID uuid.UUID, req dto.StudentAcademicRequest) (models.StudentAcademic, error) {
	fields := make(map[string]interface{})
	for col, raw := range map[string]*string{
		"program_id":        req.ProgramID,
		"department_id":     req.DepartmentID,
		"course_session_id": req.CourseSessionID,
	} {
		if raw == nil {
			continue
		}
		id, err := uuid.Parse(*raw)
		if err != nil {
			return models.StudentAcademic{}, apperrors.NewBadRequestError(fmt.Sprintf("%s must be a valid UUID", col))
		}
		fields[col] = id
	}
	if req.Level != nil {
		fields["level"] = *req.Level
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	student, err := s.patchStudent(ctx, studentID, fields)
	if err != nil {
		return models.StudentAcademic{}, err
	}
	return student.Academic(), nil
}

// GetGuardian returns a student's guardian fields.
func (s *StudentAdminService) GetGuardian(ctx context.Context, studentID uuid.UUID) (models.StudentGuardian, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return models.StudentGuardian{}, err
	}
	return student.Guardian(), nil
}

// UpdateGuardian patches a student's guardian fields.
func (s *StudentAdminService) UpdateGuardian(ctx context.Context, studentID uuid.UUID, req dto.StudentGuardianRequest) (models.StudentGuardian, error) {
	fields := make(map[string]interface{})
	setIfPresent(fields, "guardian_first_name", req.FirstName)
	setIfPresent(fields, "guardian_last_name", req.LastName)
	setIfPresent(fields, "guardian_phone", req.Phone)
	setIfPresent(fields, "guardian_relationship", req.Relationship)

	student, err := s.patchStudent(ctx, studentID, fields)
	if err != nil {
		return models.StudentGuardian{}, err
	}
	return student.Guardian(), nil
}

// patchStudent confirms the student exists, applies fields and returns the
// updated record.
func (s *StudentAdminService) patchStudent(ctx context.Context, studentID uuid.UUID, fields map[string]interface{}) (*models.Student, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	if err := s.students.Update(ctx, studentID, fields); err != nil {
		return nil, err
	}
	return s.students.GetByID(ctx, studentID)
}

// GetProfile returns the profile behind a student record.
func (s *StudentAdminService) GetProfile(ctx context.Context, studentID uuid.UUID) (*models.Profile, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.profiles.GetByID(ctx, student.ProfileID)
}

// UpdateProfile patches the profile behind a student record. Only editable
// profile columns are applied; other keys are ignored. The student is resolved
// before anything is written, so an unknown student never touches a profile.
func (s *StudentAdminService) UpdateProfile(ctx context.Context, studentID uuid.UUID, body map[string]interface{}) (*models.Profile, error) {
	fields, err := ProfileFields(body)
	if err != nil {
		return nil, err
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.Update(ctx, student.ProfileID, fields); err != nil {
		return nil, err
	}
	return s.profiles.GetByID(ctx, student.ProfileID)
}

// ProfileFields filters a decoded JSON body down to editable profile columns.
// Values must be strings or null; first and last name may not be cleared.
func ProfileFields(body map[string]interface{}) (map[string]interface{}, error) {
	fields := make(map[string]interface{})
	for col, v := range body {
		if _, ok := models.ProfileEditableColumns[col]; !ok {
			continue
		}

		switch t := v.(type) {
		case nil:
			if col == "first_name" || col == "last_name" {
				return nil, apperrors.NewBadRequestError(fmt.Sprintf("%s cannot be empty", col))
			}
			fields[col] = nil
		case string:
			value, err := profileValue(col, t)
			if err != nil {
				return nil, err
			}
			fields[col] = value
		default:
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("%s must be a string or null", col))
		}
	}
	return fields, nil
}

func profileValue(col, raw string) (interface{}, error) {
	switch col {
	case "first_name", "last_name":
		if strings.TrimSpace(raw) == "" {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("%s cannot be empty", col))
		}
	case "gender":
		if raw != "male" && raw != "female" {
			return nil, apperrors.NewBadRequestError("gender must be one of: male female")
		}
	case "date_of_birth":
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, apperrors.NewBadRequestError("date_of_birth must be a date in YYYY-MM-DD format")
		}
		return d, nil
	}
	return raw, nil
}

func setIfPresent(fields map[string]interface{}, col string, v *string) {
	if v != nil {
		fields[col] = *v
	}
}

package dto

import "github.com/yigit/htiportal/internal/app/models"

// StudentAcademicRequest patches a student's academic placement.
type StudentAcademicRequest struct {
	ProgramID       *string `json:"program_id" binding:"omitempty,uuid_any"`
	DepartmentID    *string `json:"department_id" binding:"omitempty,uuid_any"`
	Level           *int    `json:"level" binding:"omitempty,min=100,max=900"`
	CourseSessionID *string `json:"course_session_id" binding:"omitempty,uuid_any"`
	Status          *string `json:"status" binding:"omitempty,oneof=active inactive suspended graduated withdrawn"`
}

// StudentGuardianRequest patches a student's guardian fields.
type StudentGuardianRequest struct {
	FirstName    *string `json:"guardian_first_name" binding:"omitempty,max=100"`
	LastName     *string `json:"guardian_last_name" binding:"omitempty,max=100"`
	Phone        *string `json:"guardian_phone" binding:"omitempty,max=32"`
	Relationship *string `json:"guardian_relationship" binding:"omitempty,max=50"`
}

// AcademicResponse wraps the academic sub-resource.
type AcademicResponse struct {
	Academic models.StudentAcademic `json:"academic"`
}

// GuardianResponse wraps the guardian sub-resource.
type GuardianResponse struct {
	Guardian models.StudentGuardian `json:"guardian"`
}

// ProfileResponse wraps a profile.
type ProfileResponse struct {
	Profile *models.Profile `json:"profile"`
}

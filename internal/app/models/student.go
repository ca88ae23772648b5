package models

import (
	"time"

	"github.com/google/uuid"
)

// Student is the specialization record of a learner's profile.
type Student struct {
	ID                   uuid.UUID  `json:"id"`
	ProfileID            uuid.UUID  `json:"profile_id"`
	MatricNo             *string    `json:"matric_no"`
	ProgramID            *uuid.UUID `json:"program_id"`
	DepartmentID         *uuid.UUID `json:"department_id"`
	Level                *int       `json:"level"`
	CourseSessionID      *uuid.UUID `json:"course_session_id"`
	Status               string     `json:"status"`
	GuardianFirstName    *string    `json:"guardian_first_name"`
	GuardianLastName     *string    `json:"guardian_last_name"`
	GuardianPhone        *string    `json:"guardian_phone"`
	GuardianRelationship *string    `json:"guardian_relationship"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// StudentAcademic is the academic placement sub-resource of a student.
type StudentAcademic struct {
	ProgramID       *uuid.UUID `json:"program_id"`
	DepartmentID    *uuid.UUID `json:"department_id"`
	Level           *int       `json:"level"`
	CourseSessionID *uuid.UUID `json:"course_session_id"`
	Status          string     `json:"status"`
}

// StudentGuardian is the guardian sub-resource of a student.
type StudentGuardian struct {
	FirstName    *string `json:"guardian_first_name"`
	LastName     *string `json:"guardian_last_name"`
	Phone        *string `json:"guardian_phone"`
	Relationship *string `json:"guardian_relationship"`
}

// Academic returns the academic placement fields.
func (s *Student) Academic() StudentAcademic {
	return StudentAcademic{
		ProgramID:       s.ProgramID,
		DepartmentID:    s.DepartmentID,
		Level:           s.Level,
		CourseSessionID: s.CourseSessionID,
		Status:          s.Status,
	}
}

// Guardian returns the guardian fields.
func (s *Student) Guardian() StudentGuardian {
	return StudentGuardian{
		FirstName:    s.GuardianFirstName,
		LastName:     s.GuardianLastName,
		Phone:        s.GuardianPhone,
		Relationship: s.GuardianRelationship,
	}
}

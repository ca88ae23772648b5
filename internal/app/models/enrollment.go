package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment links a student to a course offering.
type Enrollment struct {
	ID               uuid.UUID `json:"id"`
	StudentID        uuid.UUID `json:"student_id"`
	CourseOfferingID uuid.UUID `json:"course_offering_id"`
	EnrolledAt       time.Time `json:"enrolled_at"`
}

// RosterEntry is one enrolled student of an offering.
type RosterEntry struct {
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	StudentID    uuid.UUID `json:"student_id"`
	MatricNo     *string   `json:"matric_no"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}

// StudentEnrollment is an enrollment with the offering details a student sees.
type StudentEnrollment struct {
	EnrollmentID     uuid.UUID `json:"enrollment_id"`
	CourseOfferingID uuid.UUID `json:"course_offering_id"`
	SessionID        uuid.UUID `json:"session_id"`
	Semester         string    `json:"semester"`
	Level            int       `json:"level"`
	CourseCode       string    `json:"course_code"`
	CourseTitle      string    `json:"course_title"`
	CourseUnits      int       `json:"course_units"`
	EnrolledAt       time.Time `json:"enrolled_at"`
}

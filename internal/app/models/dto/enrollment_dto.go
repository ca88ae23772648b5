package dto

import "github.com/yigit/htiportal/internal/app/models"

// EnrollmentRequest identifies an enrollment by its composite key.
type EnrollmentRequest struct {
	StudentID        string `json:"student_id" binding:"required,uuid_any"`
	CourseOfferingID string `json:"course_offering_id" binding:"required,uuid_any"`
}

// RosterResponse lists the students enrolled in an offering.
type RosterResponse struct {
	Roster []*models.RosterEntry `json:"roster"`
}

// EnrollmentsResponse lists a student's enrollments.
type EnrollmentsResponse struct {
	Enrollments []*models.StudentEnrollment `json:"enrollments"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Result is the graded outcome of a student in a course offering.
// There is at most one per (student, offering) pair.
type Result struct {
	ID               uuid.UUID `json:"id"`
	StudentID        uuid.UUID `json:"student_id"`
	CourseOfferingID uuid.UUID `json:"course_offering_id"`
	CAScore          float64   `json:"ca_score"`
	ExamScore        float64   `json:"exam_score"`
	TotalScore       float64   `json:"total_score"`
	GradeLetter      string    `json:"grade_letter"`
	GradePoints      float64   `json:"grade_points"`
	Remark           *string   `json:"remark"`
	EnteredBy        uuid.UUID `json:"entered_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// StudentResult is a result row joined with its course for the student view.
type StudentResult struct {
	Result
	SessionID   uuid.UUID `json:"session_id"`
	Semester    string    `json:"semester"`
	CourseCode  string    `json:"course_code"`
	CourseTitle string    `json:"course_title"`
	CourseUnits int       `json:"course_units"`
}

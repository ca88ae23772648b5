package models

import (
	"time"

	"github.com/google/uuid"
)

// CourseOffering is a course taught in a given session, semester and level.
type CourseOffering struct {
	ID          uuid.UUID `json:"id"`
	CourseID    uuid.UUID `json:"course_id"`
	SessionID   uuid.UUID `json:"session_id"`
	Semester    string    `json:"semester"`
	Level       int       `json:"level"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`

	// Populated from the courses table
	CourseCode  string `json:"course_code"`
	CourseTitle string `json:"course_title"`
	CourseUnits int    `json:"course_units"`
}

// OfferingScope restricts which offerings a listing may return.
// A nil OfferingIDs means no restriction.
type OfferingScope struct {
	OfferingIDs []uuid.UUID
}

// Restricted reports whether the scope limits the result to an id set.
func (s OfferingScope) Restricted() bool {
	return s.OfferingIDs != nil
}

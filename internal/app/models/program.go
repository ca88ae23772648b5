package models

import (
	"time"

	"github.com/google/uuid"
)

// Program is a course of study offered by a department.
type Program struct {
	ID            uuid.UUID  `json:"id"`
	DepartmentID  *uuid.UUID `json:"department_id"`
	Name          string     `json:"name"`
	Code          string     `json:"code"`
	DurationYears int        `json:"duration_years"`
	CreatedAt     time.Time  `json:"created_at"`
}

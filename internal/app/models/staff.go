package models

import (
	"time"

	"github.com/google/uuid"
)

// Staff is the specialization record of an academic or non-academic staff profile.
type Staff struct {
	ID           uuid.UUID  `json:"id"`
	ProfileID    uuid.UUID  `json:"profile_id"`
	StaffNo      *string    `json:"staff_no"`
	DepartmentID *uuid.UUID `json:"department_id"`
	Designation  *string    `json:"designation"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

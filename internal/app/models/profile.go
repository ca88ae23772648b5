package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the root identity record, one per principal.
type Profile struct {
	ID               uuid.UUID  `json:"id"`
	FirstName        string     `json:"first_name"`
	MiddleName       *string    `json:"middle_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email"`
	Phone            *string    `json:"phone"`
	Gender           *string    `json:"gender"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	Address          *string    `json:"address"`
	MainRole         Role       `json:"main_role"`
	Unit             *Unit      `json:"unit"`
	OnboardingStatus string     `json:"onboarding_status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// RoleRecord is the slice of a profile the access guards need.
type RoleRecord struct {
	MainRole Role
	Unit     *Unit
}

// ProfileEditableColumns lists the profile columns an admin may patch.
var ProfileEditableColumns = map[string]struct{}{
	"first_name":    {},
	"middle_name":   {},
	"last_name":     {},
	"phone":         {},
	"gender":        {},
	"date_of_birth": {},
	"address":       {},
}

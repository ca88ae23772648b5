package models

// Role is the main role stored on a profile.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleStudent          Role = "student"
	RoleAcademicStaff    Role = "academic_staff"
	RoleNonAcademicStaff Role = "non_academic_staff"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleAcademicStaff, RoleNonAcademicStaff:
		return true
	}
	return false
}

// HomePath is the page root for the role.
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleStudent:
		return "/student"
	case RoleAcademicStaff:
		return "/academic-staff"
	case RoleNonAcademicStaff:
		return "/non-academic-staff"
	}
	return ""
}

// Unit is the office a non-academic staff member belongs to.
type Unit string

const (
	UnitAdmissions Unit = "admissions"
	UnitBursary    Unit = "bursary"
	UnitExams      Unit = "exams"
)

// Onboarding states
const (
	OnboardingPending   = "pending"
	OnboardingCompleted = "completed"
)

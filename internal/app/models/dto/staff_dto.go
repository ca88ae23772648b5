package dto

// StaffProfileRequest patches the profile behind a staff record.
type StaffProfileRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	MiddleName  *string `json:"middle_name" binding:"omitempty,max=100"`
	LastName    *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=32"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=male female"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
}

// SetPasswordRequest sets a staff member's sign-in password.
type SetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

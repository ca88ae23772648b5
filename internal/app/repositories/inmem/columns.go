package inmem

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
)

func invalidColumn(col string) error {
	return apperrors.NewBadRequestError(fmt.Sprintf("invalid value for %s", col))
}

func asString(col string, v interface{}) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case *string:
		if t != nil {
			return *t, nil
		}
	}
	return "", invalidColumn(col)
}

func asStringPtr(col string, v interface{}) (*string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return &t, nil
	case *string:
		return t, nil
	}
	return nil, invalidColumn(col)
}

func asUUIDPtr(col string, v interface{}) (*uuid.UUID, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case uuid.UUID:
		return &t, nil
	case *uuid.UUID:
		return t, nil
	case string:
		id, err := uuid.Parse(t)
		if err != nil {
			return nil, invalidColumn(col)
		}
		return &id, nil
	}
	return nil, invalidColumn(col)
}

func asIntPtr(col string, v interface{}) (*int, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case int:
		return &t, nil
	case *int:
		return t, nil
	case float64:
		n := int(t)
		return &n, nil
	}
	return nil, invalidColumn(col)
}

func asDatePtr(col string, v interface{}) (*time.Time, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &t, nil
	case string:
		d, err := time.Parse("2006-01-02", t)
		if err != nil {
			return nil, invalidColumn(col)
		}
		return &d, nil
	}
	return nil, invalidColumn(col)
}

func unknownColumn(table, col string) error {
	return fmt.Errorf("column %q of relation %q does not exist", col, table)
}

// applyProfile writes fields onto a copy of p; p is left untouched on error.
func applyProfile(p models.Profile, fields map[string]interface{}) (models.Profile, error) {
	var err error
	for col, v := range fields {
		switch col {
		case "first_name":
			p.FirstName, err = asString(col, v)
		case "last_name":
			p.LastName, err = asString(col, v)
		case "middle_name":
			p.MiddleName, err = asStringPtr(col, v)
		case "phone":
			p.Phone, err = asStringPtr(col, v)
		case "gender":
			p.Gender, err = asStringPtr(col, v)
		case "address":
			p.Address, err = asStringPtr(col, v)
		case "date_of_birth":
			p.DateOfBirth, err = asDatePtr(col, v)
		case "onboarding_status":
			p.OnboardingStatus, err = asString(col, v)
		default:
			err = unknownColumn("profiles", col)
		}
		if err != nil {
			return p, err
		}
	}
	return p, nil
}

// applyStudent writes fields onto a copy of s.
func applyStudent(s models.Student, fields map[string]interface{}) (models.Student, error) {
	var err error
	for col, v := range fields {
		switch col {
		case "program_id":
			s.ProgramID, err = asUUIDPtr(col, v)
		case "department_id":
			s.DepartmentID, err = asUUIDPtr(col, v)
		case "course_session_id":
			s.CourseSessionID, err = asUUIDPtr(col, v)
		case "level":
			s.Level, err = asIntPtr(col, v)
		case "status":
			s.Status, err = asString(col, v)
		case "matric_no":
			s.MatricNo, err = asStringPtr(col, v)
		case "guardian_first_name":
			s.GuardianFirstName, err = asStringPtr(col, v)
		case "guardian_last_name":
			s.GuardianLastName, err = asStringPtr(col, v)
		case "guardian_phone":
			s.GuardianPhone, err = asStringPtr(col, v)
		case "guardian_relationship":
			s.GuardianRelationship, err = asStringPtr(col, v)
		default:
			err = unknownColumn("students", col)
		}
		if err != nil {
			return s, err
		}
	}
	return s, nil
}

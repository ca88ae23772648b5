package validation

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Validation rule patterns
var (
	// Receipt references are printed on bursary slips, e.g. "RCP-2025/0001".
	ReferencePattern = `^[A-Za-z0-9][A-Za-z0-9/_-]{2,63}$`

	// Grade letters A to F with an optional +/- modifier.
	GradeLetterPattern = `^[A-F][+-]?$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Reference   *regexp.Regexp
	GradeLetter *regexp.Regexp
}{
	Reference:   regexp.MustCompile(ReferencePattern),
	GradeLetter: regexp.MustCompile(GradeLetterPattern),
}

// Tag names of the custom rules, usable in binding tags.
const (
	TagReference   = "receipt_ref"
	TagGradeLetter = "grade_letter"
	TagUUID        = "uuid_any"
)

// Messages describes each custom rule for validation error output.
var Messages = map[string]string{
	TagReference:   "must be 3-64 letters, digits, '-', '_' or '/'",
	TagGradeLetter: "must be a grade from A to F, optionally followed by + or -",
	TagUUID:        "must be a valid UUID",
}

func patternRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// uuidRule accepts every form uuid.Parse does, so body ids and path ids
// are judged the same way regardless of letter case.
func uuidRule(fl validator.FieldLevel) bool {
	_, err := uuid.Parse(fl.Field().String())
	return err == nil
}

// Register installs the custom rules on v.
func Register(v *validator.Validate) error {
	rules := map[string]*regexp.Regexp{
		TagReference:   CompiledPatterns.Reference,
		TagGradeLetter: CompiledPatterns.GradeLetter,
	}
	for tag, re := range rules {
		if err := v.RegisterValidation(tag, patternRule(re)); err != nil {
			return fmt.Errorf("register %s rule: %w", tag, err)
		}
	}
	if err := v.RegisterValidation(TagUUID, uuidRule); err != nil {
		return fmt.Errorf("register %s rule: %w", TagUUID, err)
	}
	return nil
}

package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "enrollments_student_offering_key"}
	wrapped := fmt.Errorf("insert: %w", pgErr)

	assert.True(t, IsDuplicateConstraintError(wrapped, "enrollments_student_offering_key"))
	assert.False(t, IsDuplicateConstraintError(wrapped, "receipts_reference_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), "enrollments_student_offering_key"))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(nil))
}

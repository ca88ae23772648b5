package apperrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", ErrProfileNotFound)

	assert.True(t, Is(wrapped, ErrProfileNotFound))
	assert.True(t, Is(wrapped, ErrResourceNotFound, ErrProfileNotFound))
	assert.False(t, Is(wrapped, ErrResourceNotFound, ErrStudentNotFound))
	assert.True(t, Is(NewBadRequestError("bad"), ErrBadRequest))
}

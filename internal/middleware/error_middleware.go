package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/htiportal/internal/app/models/dto"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
	"github.com/yigit/htiportal/internal/pkg/logger"
)

const redactBackendKey = "redactBackendErrors"

// InternalErrorMessage replaces backend error text when redaction is on.
const InternalErrorMessage = "Internal server error"

// ErrorPolicy records whether backend error text may reach clients.
func ErrorPolicy(redactBackend bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(redactBackendKey, redactBackend)
		c.Next()
	}
}

// HandleAPIError maps an error to a status and writes the {error} body.
// Unrecognised errors are backend failures: 500 with the raw message unless redacted.
func HandleAPIError(c *gin.Context, err error) {
	status, message := classifyError(err)

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Backend failure")
		if c.GetBool(redactBackendKey) {
			message = InternalErrorMessage
		}
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message))
}

func classifyError(err error) (int, string) {
	var custom *apperrors.CustomError
	hasMessage := errors.As(err, &custom) && custom.Message != ""
	withDefault := func(fallback string) string {
		if hasMessage {
			return custom.Message
		}
		return fallback
	}

	switch {
	case errors.Is(err, apperrors.ErrNoAssignedStaff):
		return http.StatusBadRequest, "Cannot publish without assigned staff"
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		return http.StatusConflict, "Student already enrolled in this course offering"
	case errors.Is(err, apperrors.ErrDuplicateReference):
		return http.StatusConflict, "Receipt reference already exists"
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, withDefault("Resource already exists")
	case errors.Is(err, apperrors.ErrStaffNotFound):
		return http.StatusNotFound, "Staff not found"
	case errors.Is(err, apperrors.ErrStudentNotFound):
		return http.StatusNotFound, "Student not found"
	case errors.Is(err, apperrors.ErrOfferingNotFound):
		return http.StatusNotFound, "Course offering not found"
	case errors.Is(err, apperrors.ErrProfileNotFound):
		return http.StatusNotFound, "Profile not found"
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, withDefault("Resource not found")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, withDefault("Forbidden")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, withDefault("Invalid request")
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/htiportal/internal/app/auth"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/app/models/dto"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{apperrors.ErrNoAssignedStaff, 400, "Cannot publish without assigned staff"},
		{apperrors.ErrAlreadyEnrolled, 409, "Student already enrolled in this course offering"},
		{apperrors.ErrStaffNotFound, 404, "Staff not found"},
		{fmt.Errorf("wrapped: %w", apperrors.ErrStudentNotFound), 404, "Student not found"},
		{apperrors.NewResourceNotFoundError("Student or course offering not found"), 404, "Student or course offering not found"},
		{apperrors.NewBadRequestError("No updatable fields provided"), 400, "No updatable fields provided"},
		{apperrors.ErrInvalidCredentials, 401, "Invalid email or password"},
		{errors.New("relation \"profiles\" does not exist"), 500, "relation \"profiles\" does not exist"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleAPIError(c, tt.err)

		assert.Equal(t, tt.status, w.Code, tt.err.Error())
		assert.Equal(t, tt.message, decodeError(t, w).Error)
	}
}

func TestHandleAPIError_Redacted(t *testing.T) {
	r := gin.New()
	r.Use(ErrorPolicy(true))
	r.GET("/boom", func(c *gin.Context) { HandleAPIError(c, errors.New("pq: password authentication failed")) })
	r.GET("/missing", func(c *gin.Context) { HandleAPIError(c, apperrors.ErrStaffNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, 500, w.Code)
	assert.Equal(t, InternalErrorMessage, decodeError(t, w).Error)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, "Staff not found", decodeError(t, w).Error)
}

func TestRequire(t *testing.T) {
	principal := uuid.New()
	results := map[string]auth.Result{
		"granted":  auth.Granted{PrincipalID: principal, Role: models.RoleAdmin},
		"denied":   auth.Denied{Status: http.StatusForbidden, Message: auth.MsgForbidden},
		"redirect": auth.Redirect{Location: "/sign-in"},
	}

	for name, result := range results {
		t.Run(name, func(t *testing.T) {
			calls := 0
			r := gin.New()
			check := func(context.Context, *http.Request) auth.Result { return result }
			r.GET("/x", Require(check), func(c *gin.Context) {
				calls++
				grant, ok := GetGrant(c)
				require.True(t, ok)
				c.JSON(http.StatusOK, gin.H{"principal": grant.PrincipalID})
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			switch name {
			case "granted":
				assert.Equal(t, http.StatusOK, w.Code)
				assert.Contains(t, w.Body.String(), principal.String())
				assert.Equal(t, 1, calls)
			case "denied":
				assert.Equal(t, http.StatusForbidden, w.Code)
				assert.Equal(t, auth.MsgForbidden, decodeError(t, w).Error)
				assert.Zero(t, calls)
			case "redirect":
				assert.Equal(t, http.StatusFound, w.Code)
				assert.Equal(t, "/sign-in", w.Header().Get("Location"))
				assert.Zero(t, calls)
			}
		})
	}
}

func TestBindJSON(t *testing.T) {
	r := gin.New()
	r.POST("/enroll", func(c *gin.Context) {
		var req dto.EnrollmentRequest
		if !BindJSON(c, &req) {
			return
		}
		c.JSON(http.StatusOK, dto.Success)
	})

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/enroll", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"student_id":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "Validation failed", body.Error)
	assert.Equal(t, "student_id must be a valid UUID", body.Fields["student_id"])
	assert.Equal(t, "course_offering_id is required", body.Fields["course_offering_id"])

	w = post(`{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request payload", decodeError(t, w).Error)

	w = post(fmt.Sprintf(`{"student_id":%q,"course_offering_id":%q}`, uuid.NewString(), uuid.NewString()))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBindJSON_CustomRules(t *testing.T) {
	r := gin.New()
	r.POST("/receipts", func(c *gin.Context) {
		var req dto.ReceiptRequest
		if !BindJSON(c, &req) {
			return
		}
		c.JSON(http.StatusOK, dto.Success)
	})

	w := httptest.NewRecorder()
	body := fmt.Sprintf(`{"student_id":%q,"amount":100,"reference":"R 1"}`, uuid.NewString())
	req := httptest.NewRequest(http.MethodPost, "/receipts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "reference must be 3-64 letters, digits, '-', '_' or '/'", decodeError(t, w).Fields["reference"])
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := gin.New()
	r.Use(m.Handler())
	r.GET("/programs", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/programs", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues("/programs", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", "GET", "404")))
}

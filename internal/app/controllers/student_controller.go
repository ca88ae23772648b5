package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/htiportal/internal/app/models/dto"
	"github.com/yigit/htiportal/internal/app/services"
	"github.com/yigit/htiportal/internal/middleware"
)

// StudentController serves a student's own records
type StudentController struct {
	enrollments *services.EnrollmentService
	results     *services.ResultService
}

// NewStudentController creates a new StudentController
func NewStudentController(enrollments *services.EnrollmentService, results *services.ResultService) *StudentController {
	return &StudentController{enrollments: enrollments, results: results}
}

// ListEnrollments lists the caller's enrollments, optionally for one session.
// GET /student/enrollments?session_id=
func (c *StudentController) ListEnrollments(ctx *gin.Context) {
	g, ok := grant(ctx)
	if !ok {
		return
	}
	sessionID, ok := optionalQueryUUID(ctx, "session_id")
	if !ok {
		return
	}

	enrollments, err := c.enrollments.ListForStudent(ctx.Request.Context(), g.StudentID, sessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.EnrollmentsResponse{Enrollments: enrollments})
}

// ListResults lists the caller's results, optionally for one session.
// GET /student/results?session_id=
func (c *StudentController) ListResults(ctx *gin.Context) {
	g, ok := grant(ctx)
	if !ok {
		return
	}
	sessionID, ok := optionalQueryUUID(ctx, "session_id")
	if !ok {
		return
	}

	results, err := c.results.ListForStudent(ctx.Request.Context(), g.StudentID, sessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ResultsResponse{Results: results})
}

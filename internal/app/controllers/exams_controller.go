package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models/dto"
	"github.com/yigit/htiportal/internal/app/services"
	"github.com/yigit/htiportal/internal/middleware"
)

// ExamsController handles offerings, enrollments and results for admins and academic staff
type ExamsController struct {
	offerings   *services.OfferingService
	enrollments *services.EnrollmentService
	results     *services.ResultService
}

// NewExamsController creates a new ExamsController
func NewExamsController(offerings *services.OfferingService, enrollments *services.EnrollmentService, results *services.ResultService) *ExamsController {
	return &ExamsController{
		offerings:   offerings,
		enrollments: enrollments,
		results:     results,
	}
}

// ListOfferings lists the published offerings visible to the caller.
// GET /exams/course-offerings
func (c *ExamsController) ListOfferings(ctx *gin.Context) {
	g, ok := grant(ctx)
	if !ok {
		return
	}

	offerings, err := c.offerings.ListVisible(ctx.Request.Context(), caller(g))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OfferingsResponse{Offerings: offerings})
}

// GetOffering returns one offering.
// GET /exams/course-offerings/:id
func (c *ExamsController) GetOffering(ctx *gin.Context) {
	g, ok := grant(ctx)
	if !ok {
		return
	}
	id, ok := pathUUID(ctx, "id", "course offering")
	if !ok {
		return
	}

	offering, err := c.offerings.GetVisible(ctx.Request.Context(), caller(g), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OfferingResponse{Offering: offering})
}

// Roster lists the students enrolled in an offering.
// GET /exams/enrollments/:offeringId
func (c *ExamsController) Roster(ctx *gin.Context) {
	g, ok := grant(ctx)
	if !ok {
		return
	}
	id, ok := pathUUID(ctx, "offeringId", "course offering")
	if !ok {
		return
	}

	roster, err := c.offerings.Roster(ctx.Request.Context(), caller(g), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RosterResponse{Roster: roster})
}

// Enroll adds a student to an offering.
// POST /exams/enrollments
func (c *ExamsController) Enroll(ctx *gin.Context) {
	studentID, offeringID, ok := bindEnrollment(ctx)
	if !ok {
		return
	}

	if err := c.enrollments.Enroll(ctx.Request.Context(), studentID, offeringID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// Unenroll removes a student from an offering.
// DELETE /exams/enrollments
func (c *ExamsController) Unenroll(ctx *gin.Context) {
	studentID, offeringID, ok := bindEnrollment(ctx)
	if !ok {
		return
	}

	if err := c.enrollments.Unenroll(ctx.Request.Context(), studentID, offeringID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

func bindEnrollment(ctx *gin.Context) (studentID, offeringID uuid.UUID, ok bool) {
	var req dto.EnrollmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return uuid.Nil, uuid.Nil, false
	}

	// The uuid binding tag has already validated both ids.
	return uuid.MustParse(req.StudentID), uuid.MustParse(req.CourseOfferingID), true
}

// SubmitResult stores or overwrites a student's result in an offering.
// POST /exams/results
func (c *ExamsController) SubmitResult(ctx *gin.Context) {
	g, ok := grant(ctx)
	if !ok {
		return
	}

	var req dto.ResultRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if _, err := c.results.Submit(ctx.Request.Context(), caller(g), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

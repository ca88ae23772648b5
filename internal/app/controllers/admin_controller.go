package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/htiportal/internal/app/models/dto"
	"github.com/yigit/htiportal/internal/app/services"
	"github.com/yigit/htiportal/internal/middleware"
)

// AdminController handles the admin-only API surface
type AdminController struct {
	offerings *services.OfferingService
	students  *services.StudentAdminService
	staff     *services.StaffAdminService
	catalog   *services.CatalogService
}

// NewAdminController creates a new AdminController
func NewAdminController(offerings *services.OfferingService, students *services.StudentAdminService, staff *services.StaffAdminService, catalog *services.CatalogService) *AdminController {
	return &AdminController{
		offerings: offerings,
		students:  students,
		staff:     staff,
		catalog:   catalog,
	}
}

// PublishOffering toggles the visibility of a course offering.
// PATCH /admin/course-offerings/:id/publish
func (c *AdminController) PublishOffering(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "id", "course offering")
	if !ok {
		return
	}

	var req dto.PublishRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.offerings.SetPublished(ctx.Request.Context(), id, *req.IsPublished); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// ListSessions lists academic sessions, active first.
// GET /admin/sessions
func (c *AdminController) ListSessions(ctx *gin.Context) {
	sessions, err := c.catalog.ListSessions(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SessionsResponse{OK: true, Sessions: sessions})
}

// UpdateStaffProfile patches the profile behind a staff record.
// PATCH /admin/staff/:id/profile
func (c *AdminController) UpdateStaffProfile(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "id", "staff")
	if !ok {
		return
	}

	var req dto.StaffProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if _, err := c.staff.UpdateProfile(ctx.Request.Context(), id, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// SetStaffTestPassword sets the sign-in password of a staff member.
// PATCH /admin/staff/:id/set-test-password
func (c *AdminController) SetStaffTestPassword(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "id", "staff")
	if !ok {
		return
	}

	var req dto.SetPasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.staff.SetTestPassword(ctx.Request.Context(), id, req.Password); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// GetStudentAcademic returns a student's academic placement.
func (c *AdminController) GetStudentAcademic(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "id", "student")
	if !ok {
		return
	}

	academic, err := c.students.GetAcademic(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AcademicResponse{Academic: academic})
}

// UpdateStudentAcademic patches a student's academic placement.
func (c *AdminController) UpdateStudentAcademic(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "id", "student")
	if !ok {
		return
	}

	var req dto.StudentAcademicRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if _, err := c.students.UpdateAcademic(ctx.Request.Context(), id, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// GetStudentGuardian returns a student's guardian fields.
func (c *AdminController) GetStudentGuardian(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "id", "student")
	if !ok {
		return
	}

	guardian, err := c.students.GetGuardian(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.GuardianResponse{Guardian: guardian})
}

// UpdateStudentGuardian patches a student's guardian fields.
func (c *AdminController) UpdateStudentGuardian(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "id", "student")
	if !ok {
		return
	}

	var req dto.StudentGuardianRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if _, err := c.students.UpdateGuardian(ctx.Request.Context(), id, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// GetStudentProfile returns the profile behind a student record.
func (c *AdminController) GetStudentProfile(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "id", "student")
	if !ok {
		return
	}

	profile, err := c.students.GetProfile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProfileResponse{Profile: profile})
}

// UpdateStudentProfile patches the profile behind a student record. The body
// is a free-form object; only editable profile columns are applied.
func (c *AdminController) UpdateStudentProfile(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "id", "student")
	if !ok {
		return
	}

	var body map[string]interface{}
	if err := ctx.ShouldBindJSON(&body); err != nil || body == nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request payload"))
		return
	}

	if _, err := c.students.UpdateProfile(ctx.Request.Context(), id, body); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

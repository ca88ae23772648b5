package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/htiportal/internal/app/auth"
	"github.com/yigit/htiportal/internal/app/controllers"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter.
type Controllers struct {
	Auth    *controllers.AuthController
	Admin   *controllers.AdminController
	Exams   *controllers.ExamsController
	Student *controllers.StudentController
	Catalog *controllers.CatalogController
	Bursary *controllers.BursaryController
	Health  *controllers.HealthController
	Pages   *controllers.PageController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, guard *auth.Guard, metrics http.Handler) {
	router.GET("/health", c.Health.Health)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	// --- Pages ---
	router.GET("/dashboard", middleware.Require(guard.DashboardRoute()))
	for _, role := range []models.Role{models.RoleAdmin, models.RoleStudent, models.RoleAcademicStaff, models.RoleNonAcademicStaff} {
		router.GET(role.HomePath(), middleware.Require(guard.RequireRole(role)), c.Pages.Home)
	}

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/programs", c.Catalog.ListPrograms)

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/sign-in", c.Auth.SignIn)
		authGroup.POST("/sign-out", c.Auth.SignOut)
	}

	v1.POST("/onboarding/complete", middleware.Require(guard.RequireAuthenticated()), c.Auth.CompleteOnboarding)

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(middleware.Require(guard.RequireAdmin()))
	{
		admin.PATCH("/course-offerings/:id/publish", c.Admin.PublishOffering)
		admin.GET("/sessions", c.Admin.ListSessions)

		admin.PATCH("/staff/:id/profile", c.Admin.UpdateStaffProfile)
		admin.PATCH("/staff/:id/set-test-password", c.Admin.SetStaffTestPassword)

		admin.GET("/students/:id/academic", c.Admin.GetStudentAcademic)
		admin.PATCH("/students/:id/academic", c.Admin.UpdateStudentAcademic)
		admin.GET("/students/:id/guardian", c.Admin.GetStudentGuardian)
		admin.PATCH("/students/:id/guardian", c.Admin.UpdateStudentGuardian)
		admin.GET("/students/:id/profile", c.Admin.GetStudentProfile)
		admin.PATCH("/students/:id/profile", c.Admin.UpdateStudentProfile)
	}

	// --- Exams routes (admin and academic staff) ---
	exams := v1.Group("/exams")
	exams.Use(middleware.Require(guard.RequireExamsAccess()))
	{
		exams.GET("/course-offerings", c.Exams.ListOfferings)
		exams.GET("/course-offerings/:id", c.Exams.GetOffering)

		exams.GET("/enrollments/:offeringId", c.Exams.Roster)
		exams.POST("/enrollments", c.Exams.Enroll)
		exams.DELETE("/enrollments", c.Exams.Unenroll)

		exams.POST("/results", c.Exams.SubmitResult)
	}

	// --- Student routes ---
	student := v1.Group("/student")
	student.Use(middleware.Require(guard.RequireStudentAccess()))
	{
		student.GET("/enrollments", c.Student.ListEnrollments)
		student.GET("/results", c.Student.ListResults)
	}

	// --- Bursary routes (admin and non-academic staff) ---
	bursary := v1.Group("/bursary")
	bursary.Use(middleware.Require(guard.RequireAdminOrBursary()))
	{
		bursary.GET("/receipts", c.Bursary.ListReceipts)
		bursary.POST("/receipts", c.Bursary.IssueReceipt)
	}
}

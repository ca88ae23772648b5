package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/app/repositories"
	"github.com/yigit/htiportal/internal/app/repositories/inmem"
	"github.com/yigit/htiportal/internal/config"
	pkgAuth "github.com/yigit/htiportal/internal/pkg/auth"
	"github.com/yigit/htiportal/internal/pkg/cache"
)

type countingOfferings struct {
	repositories.CourseOfferingRepository
	calls int
}

func (c *countingOfferings) ListPublished(ctx context.Context, scope models.OfferingScope) ([]*models.CourseOffering, error) {
	c.calls++
	return c.CourseOfferingRepository.ListPublished(ctx, scope)
}

func (c *countingOfferings) AssignedOfferingIDs(ctx context.Context, staffID uuid.UUID) ([]uuid.UUID, error) {
	c.calls++
	return c.CourseOfferingRepository.AssignedOfferingIDs(ctx, staffID)
}

type portal struct {
	t         *testing.T
	db        *inmem.DB
	router    *gin.Engine
	tokens    *pkgAuth.JWTService
	offerings *countingOfferings

	admin, lecturer, otherLecturer, bursar, studentProfile uuid.UUID
	staffRecord, studentID, o1, o2                         uuid.UUID
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Auth.JWTSecret = "e2e-secret"
	cfg.Auth.Issuer = "htiportal"
	cfg.Auth.AccessTokenExpiration = "1h"
	cfg.Auth.SessionCookie = "hti_session"
	cfg.Auth.SignInPath = "/sign-in"
	cfg.Auth.DashboardPath = "/dashboard"
	cfg.Redis.CacheTTL = "1m"
	return cfg
}

func newPortal(t *testing.T) *portal {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := inmem.Open()
	p := &portal{t: t, db: db}

	p.admin = db.AddProfile(models.Profile{FirstName: "Ife", LastName: "Admin", Email: "admin@hti.edu", MainRole: models.RoleAdmin})
	p.lecturer = db.AddProfile(models.Profile{FirstName: "Tunde", LastName: "Bello", Email: "s1@hti.edu", MainRole: models.RoleAcademicStaff})
	p.otherLecturer = db.AddProfile(models.Profile{FirstName: "Kemi", LastName: "Ade", Email: "s2@hti.edu", MainRole: models.RoleAcademicStaff})
	bursary := models.UnitBursary
	p.bursar = db.AddProfile(models.Profile{FirstName: "Ngozi", LastName: "Eze", Email: "bursar@hti.edu", MainRole: models.RoleNonAcademicStaff, Unit: &bursary})
	p.studentProfile = db.AddProfile(models.Profile{FirstName: "Ada", LastName: "Obi", Email: "ada@hti.edu", MainRole: models.RoleStudent})
	p.studentID = db.AddStudent(models.Student{ProfileID: p.studentProfile})
	p.staffRecord = db.AddStaff(models.Staff{ProfileID: p.lecturer})

	session := db.AddSession(models.Session{Name: "2025/2026", IsActive: true})
	course := db.AddCourse(models.Course{Code: "NUR101", Title: "Anatomy", Units: 3})
	base := time.Now().Add(-time.Hour)
	p.o1 = db.AddOffering(models.CourseOffering{CourseID: course, SessionID: session, Semester: "first", Level: 100, CreatedAt: base})
	p.o2 = db.AddOffering(models.CourseOffering{CourseID: course, SessionID: session, Semester: "second", Level: 100, CreatedAt: base.Add(time.Minute)})
	db.AssignStaff(p.o1, p.lecturer)

	repos := db.Repositories()
	p.offerings = &countingOfferings{CourseOfferingRepository: repos.CourseOfferings}
	repos.CourseOfferings = p.offerings

	cfg := testConfig()
	storage := &Storage{Repos: repos, Ping: func(context.Context) error { return db.Ping() }, Close: func() {}}
	deps := BuildDependencies(cfg, storage, cache.Noop{})
	p.tokens = deps.JWTService
	p.router = SetupRouter(cfg, deps)
	return p
}

func (p *portal) token(principal uuid.UUID) string {
	token, _, err := p.tokens.GenerateSessionToken(principal, "")
	require.NoError(p.t, err)
	return token
}

func (p *portal) do(method, path string, principal *uuid.UUID, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(p.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if principal != nil {
		req.Header.Set("Authorization", "Bearer "+p.token(*principal))
	}

	w := httptest.NewRecorder()
	p.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestScenarioA_PublishWithStaff(t *testing.T) {
	p := newPortal(t)

	w := p.do(http.MethodPatch, "/api/v1/admin/course-offerings/"+p.o1.String()+"/publish", &p.admin, map[string]bool{"is_published": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["success"])

	stored, _ := p.db.Offering(p.o1)
	assert.True(t, stored.IsPublished)
}

func TestScenarioB_PublishWithoutStaff(t *testing.T) {
	p := newPortal(t)

	w := p.do(http.MethodPatch, "/api/v1/admin/course-offerings/"+p.o2.String()+"/publish", &p.admin, map[string]bool{"is_published": true})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot publish without assigned staff", decode(t, w)["error"])

	stored, _ := p.db.Offering(p.o2)
	assert.False(t, stored.IsPublished)
}

func TestScenarioC_StaffSeesOnlyAssignedOfferings(t *testing.T) {
	p := newPortal(t)
	p.db.AssignStaff(p.o2, p.otherLecturer)
	for _, id := range []uuid.UUID{p.o1, p.o2} {
		w := p.do(http.MethodPatch, "/api/v1/admin/course-offerings/"+id.String()+"/publish", &p.admin, map[string]bool{"is_published": true})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := p.do(http.MethodGet, "/api/v1/exams/course-offerings", &p.lecturer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	offerings := decode(t, w)["offerings"].([]interface{})
	require.Len(t, offerings, 1)
	assert.Equal(t, p.o1.String(), offerings[0].(map[string]interface{})["id"])

	w = p.do(http.MethodGet, "/api/v1/exams/course-offerings", &p.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["offerings"].([]interface{}), 2)

	w = p.do(http.MethodGet, "/api/v1/exams/course-offerings/"+p.o2.String(), &p.lecturer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = p.do(http.MethodGet, "/api/v1/exams/enrollments/"+p.o2.String(), &p.lecturer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestScenarioD_ResultResubmission(t *testing.T) {
	p := newPortal(t)
	body := map[string]interface{}{
		"student_id":         p.studentID.String(),
		"course_offering_id": p.o1.String(),
		"ca_score":           20,
		"exam_score":         55,
		"total_score":        75,
		"grade_letter":       "B",
		"grade_points":       4,
		"remark":             "Pass",
	}

	w := p.do(http.MethodPost, "/api/v1/exams/results", &p.lecturer, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body["total_score"] = 80
	w = p.do(http.MethodPost, "/api/v1/exams/results", &p.admin, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	results := p.db.Results()
	require.Len(t, results, 1)
	assert.Equal(t, 80.0, results[0].TotalScore)
	assert.Equal(t, p.admin, results[0].EnteredBy)

	w = p.do(http.MethodGet, "/api/v1/student/results", &p.studentProfile, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["results"].([]interface{}), 1)
}

func TestGuardsDenyBeforeAnyQuery(t *testing.T) {
	p := newPortal(t)

	tests := []struct {
		name      string
		method    string
		path      string
		principal *uuid.UUID
		status    int
	}{
		{"anonymous exams", http.MethodGet, "/api/v1/exams/course-offerings", nil, http.StatusUnauthorized},
		{"student exams", http.MethodGet, "/api/v1/exams/course-offerings", &p.studentProfile, http.StatusForbidden},
		{"bursar exams", http.MethodGet, "/api/v1/exams/course-offerings", &p.bursar, http.StatusForbidden},
		{"lecturer admin", http.MethodPatch, "/api/v1/admin/course-offerings/" + p.o1.String() + "/publish", &p.lecturer, http.StatusForbidden},
		{"lecturer bursary", http.MethodGet, "/api/v1/bursary/receipts", &p.lecturer, http.StatusForbidden},
		{"admin student area", http.MethodGet, "/api/v1/student/enrollments", &p.admin, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := p.do(tt.method, tt.path, tt.principal, map[string]bool{"is_published": true})
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, decode(t, w)["error"])
		})
	}
	assert.Equal(t, 0, p.offerings.calls)

	stored, _ := p.db.Offering(p.o1)
	assert.False(t, stored.IsPublished)
}

func TestStudentWithoutRecord(t *testing.T) {
	p := newPortal(t)
	orphan := p.db.AddProfile(models.Profile{FirstName: "No", LastName: "Record", Email: "orphan@hti.edu", MainRole: models.RoleStudent})

	w := p.do(http.MethodGet, "/api/v1/student/enrollments", &orphan, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Student record not found", decode(t, w)["error"])
}

func TestEnrollmentLifecycle(t *testing.T) {
	p := newPortal(t)
	pair := map[string]string{"student_id": p.studentID.String(), "course_offering_id": p.o1.String()}

	w := p.do(http.MethodPost, "/api/v1/exams/enrollments", &p.lecturer, pair)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = p.do(http.MethodPost, "/api/v1/exams/enrollments", &p.lecturer, pair)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = p.do(http.MethodGet, "/api/v1/exams/enrollments/"+p.o1.String(), &p.lecturer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["roster"].([]interface{}), 1)

	w = p.do(http.MethodGet, "/api/v1/student/enrollments?session_id=not-a-uuid", &p.studentProfile, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = p.do(http.MethodGet, "/api/v1/student/enrollments", &p.studentProfile, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["enrollments"].([]interface{}), 1)

	for i := 0; i < 2; i++ {
		w = p.do(http.MethodDelete, "/api/v1/exams/enrollments", &p.admin, pair)
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 0, p.db.EnrollmentCount())

	w = p.do(http.MethodPost, "/api/v1/exams/enrollments", &p.admin, map[string]string{"student_id": "st1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminStudentAndStaffRecords(t *testing.T) {
	p := newPortal(t)
	base := "/api/v1/admin/students/"

	w := p.do(http.MethodPatch, base+uuid.NewString()+"/profile", &p.admin, map[string]string{"first_name": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = p.do(http.MethodPatch, base+p.studentID.String()+"/profile", &p.admin, map[string]interface{}{"first_name": "Adaeze", "main_role": "admin"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = p.do(http.MethodGet, base+p.studentID.String()+"/profile", &p.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode(t, w)["profile"].(map[string]interface{})
	assert.Equal(t, "Adaeze", profile["first_name"])
	assert.Equal(t, "student", profile["main_role"])

	w = p.do(http.MethodPatch, base+p.studentID.String()+"/academic", &p.admin, map[string]interface{}{"level": 50})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = p.do(http.MethodPatch, base+p.studentID.String()+"/academic", &p.admin, map[string]interface{}{"level": 200})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = p.do(http.MethodGet, base+p.studentID.String()+"/academic", &p.admin, nil)
	assert.Equal(t, 200.0, decode(t, w)["academic"].(map[string]interface{})["level"])

	w = p.do(http.MethodPatch, base+p.studentID.String()+"/guardian", &p.admin, map[string]string{"guardian_phone": "0803"})
	require.Equal(t, http.StatusOK, w.Code)
	w = p.do(http.MethodGet, base+p.studentID.String()+"/guardian", &p.admin, nil)
	assert.Equal(t, "0803", decode(t, w)["guardian"].(map[string]interface{})["guardian_phone"])

	w = p.do(http.MethodPatch, base+"not-a-uuid/guardian", &p.admin, map[string]string{"guardian_phone": "0803"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	staff := "/api/v1/admin/staff/"
	w = p.do(http.MethodPatch, staff+uuid.NewString()+"/profile", &p.admin, map[string]string{"phone": "0803"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Staff not found", decode(t, w)["error"])

	w = p.do(http.MethodPatch, staff+p.staffRecord.String()+"/set-test-password", &p.admin, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = p.do(http.MethodPatch, staff+p.staffRecord.String()+"/set-test-password", &p.admin, map[string]string{"password": "lecturer-pass"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = p.do(http.MethodPost, "/api/v1/auth/sign-in", nil, map[string]string{"email": "s1@hti.edu", "password": "lecturer-pass"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "/academic-staff", decode(t, w)["redirect_to"])
	require.NotEmpty(t, w.Result().Cookies())
	assert.Equal(t, "hti_session", w.Result().Cookies()[0].Name)

	w = p.do(http.MethodPost, "/api/v1/auth/sign-in", nil, map[string]string{"email": "s1@hti.edu", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCatalogAndReceipts(t *testing.T) {
	p := newPortal(t)
	p.db.AddProgram(models.Program{Name: "Nursing", Code: "NUR"})

	w := p.do(http.MethodGet, "/api/v1/programs", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["programs"].([]interface{}), 1)

	w = p.do(http.MethodGet, "/api/v1/admin/sessions", &p.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Len(t, body["sessions"].([]interface{}), 1)

	receipt := map[string]interface{}{"student_id": p.studentID.String(), "amount": 25000, "reference": "RCP-001"}
	w = p.do(http.MethodPost, "/api/v1/bursary/receipts", &p.bursar, receipt)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, p.bursar.String(), decode(t, w)["receipt"].(map[string]interface{})["issued_by"])

	w = p.do(http.MethodPost, "/api/v1/bursary/receipts", &p.admin, receipt)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = p.do(http.MethodGet, "/api/v1/bursary/receipts?student_id="+p.studentID.String(), &p.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Len(t, body["receipts"].([]interface{}), 1)
	assert.Equal(t, 1.0, body["pagination"].(map[string]interface{})["total_items"])
}

func TestPagesAndOnboarding(t *testing.T) {
	p := newPortal(t)

	w := p.do(http.MethodGet, "/dashboard", nil, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/sign-in", w.Header().Get("Location"))

	w = p.do(http.MethodGet, "/dashboard", &p.bursar, nil)
	assert.Equal(t, "/non-academic-staff", w.Header().Get("Location"))

	w = p.do(http.MethodGet, "/admin", &p.studentProfile, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = p.do(http.MethodGet, "/student", &p.studentProfile, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = p.do(http.MethodPost, "/api/v1/onboarding/complete", &p.studentProfile, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile, _ := p.db.Profile(p.studentProfile)
	assert.Equal(t, models.OnboardingCompleted, profile.OnboardingStatus)
}

func TestHealthAndMetrics(t *testing.T) {
	p := newPortal(t)

	w := p.do(http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["checks"].(map[string]interface{})["database"])

	w = p.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "htiportal_http_requests_total")
}

func TestAdminAcademicRejectsUnknownReferences(t *testing.T) {
	p := newPortal(t)
	path := "/api/v1/admin/students/" + p.studentID.String() + "/academic"

	w := p.do(http.MethodPatch, path, &p.admin, map[string]interface{}{"program_id": uuid.NewString(), "level": 300})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Referenced record does not exist", decode(t, w)["error"])

	s, ok := p.db.Student(p.studentID)
	require.True(t, ok)
	assert.Nil(t, s.ProgramID)
	assert.Nil(t, s.Level)

	program := p.db.AddProgram(models.Program{Name: "Nursing Science", Code: "NUR"})
	w = p.do(http.MethodPatch, path, &p.admin, map[string]interface{}{"program_id": program.String()})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodyIDsAcceptAnyCase(t *testing.T) {
	p := newPortal(t)
	student := strings.ToUpper(p.studentID.String())
	offering := strings.ToUpper(p.o1.String())

	w := p.do(http.MethodPost, "/api/v1/exams/enrollments", &p.admin, map[string]string{"student_id": student, "course_offering_id": offering})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, p.db.EnrollmentCount())

	w = p.do(http.MethodPost, "/api/v1/exams/results", &p.admin, map[string]interface{}{
		"student_id":         student,
		"course_offering_id": offering,
		"ca_score":           30,
		"exam_score":         50,
		"total_score":        80,
		"grade_letter":       "A",
		"grade_points":       5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	results := p.db.Results()
	require.Len(t, results, 1)
	assert.Equal(t, p.studentID, results[0].StudentID)

	w = p.do(http.MethodGet, "/api/v1/admin/students/"+student+"/academic", &p.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

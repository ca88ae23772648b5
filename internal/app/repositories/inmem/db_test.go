package inmem

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/app/repositories"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
)

var (
	_ repositories.ProfileRepository        = (*profileRepository)(nil)
	_ repositories.StudentRepository        = (*studentRepository)(nil)
	_ repositories.StaffRepository          = (*staffRepository)(nil)
	_ repositories.CourseOfferingRepository = (*offeringRepository)(nil)
	_ repositories.EnrollmentRepository     = (*enrollmentRepository)(nil)
	_ repositories.ResultRepository         = (*resultRepository)(nil)
	_ repositories.SessionRepository        = (*sessionRepository)(nil)
	_ repositories.ProgramRepository        = (*programRepository)(nil)
	_ repositories.ReceiptRepository        = (*receiptRepository)(nil)
	_ repositories.CredentialRepository     = (*credentialRepository)(nil)
)

type fixture struct {
	db        *DB
	repos     *repositories.Repositories
	studentID uuid.UUID
	offering  uuid.UUID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := Open()
	profileID := db.AddProfile(models.Profile{FirstName: "Ada", LastName: "Obi", Email: "ada@hti.edu", MainRole: models.RoleStudent})
	studentID := db.AddStudent(models.Student{ProfileID: profileID})
	courseID := db.AddCourse(models.Course{Code: "NUR101", Title: "Anatomy", Units: 3})
	offering := db.AddOffering(models.CourseOffering{CourseID: courseID, Semester: "first", Level: 100})
	return fixture{db: db, repos: db.Repositories(), studentID: studentID, offering: offering}
}

func TestResultUpsertKeepsOneRowPerPair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := &models.Result{StudentID: f.studentID, CourseOfferingID: f.offering, TotalScore: 75, GradeLetter: "B"}
	require.NoError(t, f.repos.Results.Upsert(ctx, first))

	second := &models.Result{StudentID: f.studentID, CourseOfferingID: f.offering, TotalScore: 80, GradeLetter: "A"}
	require.NoError(t, f.repos.Results.Upsert(ctx, second))

	stored := f.db.Results()
	require.Len(t, stored, 1)
	assert.Equal(t, 80.0, stored[0].TotalScore)
	assert.Equal(t, first.ID, second.ID)
}

func TestEnrollmentLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.repos.Enrollments.Create(ctx, f.studentID, f.offering)
	require.NoError(t, err)

	_, err = f.repos.Enrollments.Create(ctx, f.studentID, f.offering)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)

	_, err = f.repos.Enrollments.Create(ctx, uuid.New(), f.offering)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	roster, err := f.repos.Enrollments.Roster(ctx, f.offering)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Obi", roster[0].LastName)

	mine, err := f.repos.Enrollments.ListForStudent(ctx, f.studentID, nil)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "NUR101", mine[0].CourseCode)

	require.NoError(t, f.repos.Enrollments.Delete(ctx, f.studentID, f.offering))
	require.NoError(t, f.repos.Enrollments.Delete(ctx, f.studentID, f.offering))
	assert.Zero(t, f.db.EnrollmentCount())
}

func TestListPublishedOrderAndScope(t *testing.T) {
	db := Open()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	older := db.AddOffering(models.CourseOffering{IsPublished: true, CreatedAt: base})
	newer := db.AddOffering(models.CourseOffering{IsPublished: true, CreatedAt: base.Add(time.Hour)})
	db.AddOffering(models.CourseOffering{IsPublished: false, CreatedAt: base.Add(2 * time.Hour)})

	repo := db.Repositories().CourseOfferings

	all, err := repo.ListPublished(ctx, models.OfferingScope{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer, all[0].ID)
	assert.Equal(t, older, all[1].ID)

	scoped, err := repo.ListPublished(ctx, models.OfferingScope{OfferingIDs: []uuid.UUID{older}})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, older, scoped[0].ID)

	none, err := repo.ListPublished(ctx, models.OfferingScope{OfferingIDs: []uuid.UUID{}})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProfileUpdateRejectsBadValueWithoutPartialWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	profile, err := f.repos.Profiles.GetByEmail(ctx, "ADA@hti.edu")
	require.NoError(t, err)

	err = f.repos.Profiles.Update(ctx, profile.ID, map[string]interface{}{
		"first_name":    "Adaeze",
		"date_of_birth": "not-a-date",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	stored, _ := f.db.Profile(profile.ID)
	assert.Equal(t, "Ada", stored.FirstName)
}

func TestSessionsActiveFirst(t *testing.T) {
	db := Open()
	base := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	db.AddSession(models.Session{Name: "2023/2024", StartDate: base.AddDate(-1, 0, 0)})
	db.AddSession(models.Session{Name: "2025/2026", StartDate: base.AddDate(1, 0, 0)})
	db.AddSession(models.Session{Name: "2024/2025", StartDate: base, IsActive: true})

	sessions, err := db.Repositories().Sessions.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "2024/2025", sessions[0].Name)
	assert.Equal(t, "2025/2026", sessions[1].Name)
	assert.Equal(t, "2023/2024", sessions[2].Name)
}

func TestReceiptsPaging(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, ref := range []string{"R-1", "R-2", "R-3"} {
		require.NoError(t, f.repos.Receipts.Create(ctx, &models.Receipt{StudentID: f.studentID, Amount: 500, Reference: ref}))
	}
	err := f.repos.Receipts.Create(ctx, &models.Receipt{StudentID: f.studentID, Amount: 500, Reference: "R-1"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateReference)

	page, total, err := f.repos.Receipts.List(ctx, models.ReceiptFilter{StudentID: &f.studentID, Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 1)
}

func TestStudentUpdateChecksReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.db.AddProgram(models.Program{Name: "Nursing Science", Code: "NUR"})
	department := f.db.AddDepartment("Nursing")

	tests := []struct {
		name   string
		fields map[string]interface{}
	}{
		{"unknown program", map[string]interface{}{"program_id": uuid.New()}},
		{"unknown department", map[string]interface{}{"department_id": uuid.New()}},
		{"unknown session", map[string]interface{}{"course_session_id": uuid.New(), "level": 200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.repos.Students.Update(ctx, f.studentID, tt.fields)
			assert.ErrorIs(t, err, apperrors.ErrBadRequest)

			s, ok := f.db.Student(f.studentID)
			require.True(t, ok)
			assert.Nil(t, s.ProgramID)
			assert.Nil(t, s.DepartmentID)
			assert.Nil(t, s.CourseSessionID)
			assert.Nil(t, s.Level)
		})
	}

	require.NoError(t, f.repos.Students.Update(ctx, f.studentID, map[string]interface{}{
		"program_id":    program,
		"department_id": department,
	}))
	require.NoError(t, f.repos.Students.Update(ctx, f.studentID, map[string]interface{}{"program_id": nil}))

	s, _ := f.db.Student(f.studentID)
	assert.Nil(t, s.ProgramID)
	require.NotNil(t, s.DepartmentID)
	assert.Equal(t, department, *s.DepartmentID)
}

// Package inmem keeps every portal table in process memory. It backs the
// "memory" database driver and the service and HTTP tests.
package inmem

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/app/repositories"
)

type pairKey struct {
	studentID  uuid.UUID
	offeringID uuid.UUID
}

type assignmentKey struct {
	offeringID uuid.UUID
	staffID    uuid.UUID
}

// DB holds the tables.
type DB struct {
	mu sync.RWMutex

	profiles    map[uuid.UUID]*models.Profile
	credentials map[uuid.UUID]string
	students    map[uuid.UUID]*models.Student
	staff       map[uuid.UUID]*models.Staff
	courses     map[uuid.UUID]*models.Course
	offerings   map[uuid.UUID]*models.CourseOffering
	assignments map[assignmentKey]struct{}
	enrollments map[pairKey]*models.Enrollment
	results     map[pairKey]*models.Result
	sessions    map[uuid.UUID]*models.Session
	programs    map[uuid.UUID]*models.Program
	departments map[uuid.UUID]string
	receipts    []*models.Receipt

	now func() time.Time
}

// Open creates an empty database.
func Open() *DB {
	return &DB{
		profiles:    make(map[uuid.UUID]*models.Profile),
		credentials: make(map[uuid.UUID]string),
		students:    make(map[uuid.UUID]*models.Student),
		staff:       make(map[uuid.UUID]*models.Staff),
		courses:     make(map[uuid.UUID]*models.Course),
		offerings:   make(map[uuid.UUID]*models.CourseOffering),
		assignments: make(map[assignmentKey]struct{}),
		enrollments: make(map[pairKey]*models.Enrollment),
		results:     make(map[pairKey]*models.Result),
		sessions:    make(map[uuid.UUID]*models.Session),
		programs:    make(map[uuid.UUID]*models.Program),
		departments: make(map[uuid.UUID]string),
		now:         time.Now,
	}
}

// Repositories returns every repository backed by db.
func (db *DB) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Profiles:        &profileRepository{db: db},
		Students:        &studentRepository{db: db},
		Staff:           &staffRepository{db: db},
		CourseOfferings: &offeringRepository{db: db},
		Enrollments:     &enrollmentRepository{db: db},
		Results:         &resultRepository{db: db},
		Sessions:        &sessionRepository{db: db},
		Programs:        &programRepository{db: db},
		Receipts:        &receiptRepository{db: db},
		Credentials:     &credentialRepository{db: db},
	}
}

// Ping always succeeds.
func (db *DB) Ping() error { return nil }

func newIDIfNil(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

package inmem

import (
	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models"
)

// The Add* helpers insert rows directly, for seeding and tests.

// AddProfile stores a profile and returns its id.
func (db *DB) AddProfile(p models.Profile) uuid.UUID {
	db.mu.Lock()
	defer db.mu.Unlock()

	p.ID = newIDIfNil(p.ID)
	if p.OnboardingStatus == "" {
		p.OnboardingStatus = models.OnboardingPending
	}
	now := db.now()
	p.CreatedAt, p.UpdatedAt = now, now
	db.profiles[p.ID] = &p
	return p.ID
}

// AddStudent stores a student record and returns its id.
func (db *DB) AddStudent(s models.Student) uuid.UUID {
	db.mu.Lock()
	defer db.mu.Unlock()

	s.ID = newIDIfNil(s.ID)
	if s.Status == "" {
		s.Status = "active"
	}
	now := db.now()
	s.CreatedAt, s.UpdatedAt = now, now
	db.students[s.ID] = &s
	return s.ID
}

// AddStaff stores a staff record and returns its id.
func (db *DB) AddStaff(s models.Staff) uuid.UUID {
	db.mu.Lock()
	defer db.mu.Unlock()

	s.ID = newIDIfNil(s.ID)
	now := db.now()
	s.CreatedAt, s.UpdatedAt = now, now
	db.staff[s.ID] = &s
	return s.ID
}

// AddCourse stores a catalog course and returns its id.
func (db *DB) AddCourse(c models.Course) uuid.UUID {
	db.mu.Lock()
	defer db.mu.Unlock()

	c.ID = newIDIfNil(c.ID)
	db.courses[c.ID] = &c
	return c.ID
}

// AddOffering stores a course offering and returns its id. A zero CreatedAt is set to now.
func (db *DB) AddOffering(o models.CourseOffering) uuid.UUID {
	db.mu.Lock()
	defer db.mu.Unlock()

	o.ID = newIDIfNil(o.ID)
	if o.CreatedAt.IsZero() {
		o.CreatedAt = db.now()
	}
	db.offerings[o.ID] = &o
	return o.ID
}

// AssignStaff assigns an academic staff principal to an offering.
func (db *DB) AssignStaff(offeringID, staffID uuid.UUID) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.assignments[assignmentKey{offeringID: offeringID, staffID: staffID}] = struct{}{}
}

// AddSession stores an academic session and returns its id.
func (db *DB) AddSession(s models.Session) uuid.UUID {
	db.mu.Lock()
	defer db.mu.Unlock()

	s.ID = newIDIfNil(s.ID)
	if s.CreatedAt.IsZero() {
		s.CreatedAt = db.now()
	}
	db.sessions[s.ID] = &s
	return s.ID
}

// AddProgram stores a program and returns its id.
func (db *DB) AddProgram(p models.Program) uuid.UUID {
	db.mu.Lock()
	defer db.mu.Unlock()

	p.ID = newIDIfNil(p.ID)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = db.now()
	}
	db.programs[p.ID] = &p
	return p.ID
}

// AddDepartment stores a department by name and returns its id.
func (db *DB) AddDepartment(name string) uuid.UUID {
	db.mu.Lock()
	defer db.mu.Unlock()

	id := uuid.New()
	db.departments[id] = name
	return id
}

// Offering returns a copy of a stored offering.
func (db *DB) Offering(id uuid.UUID) (models.CourseOffering, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	o, ok := db.offerings[id]
	if !ok {
		return models.CourseOffering{}, false
	}
	return *o, true
}

// Results returns copies of every stored result.
func (db *DB) Results() []models.Result {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]models.Result, 0, len(db.results))
	for _, r := range db.results {
		out = append(out, *r)
	}
	return out
}

// Profile returns a copy of a stored profile.
func (db *DB) Profile(id uuid.UUID) (models.Profile, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	p, ok := db.profiles[id]
	if !ok {
		return models.Profile{}, false
	}
	return *p, true
}

// Student returns a copy of a stored student.
func (db *DB) Student(id uuid.UUID) (models.Student, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	s, ok := db.students[id]
	if !ok {
		return models.Student{}, false
	}
	return *s, true
}

// EnrollmentCount returns the number of stored enrollments.
func (db *DB) EnrollmentCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.enrollments)
}

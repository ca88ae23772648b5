package inmem

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
)

type offeringRepository struct {
	db *DB
}

// withCourse copies o and fills in the joined course columns. Callers hold the lock.
func (db *DB) withCourse(o *models.CourseOffering) *models.CourseOffering {
	cp := *o
	if c, ok := db.courses[o.CourseID]; ok {
		cp.CourseCode, cp.CourseTitle, cp.CourseUnits = c.Code, c.Title, c.Units
	}
	return &cp
}

func (r *offeringRepository) ListPublished(_ context.Context, scope models.OfferingScope) ([]*models.CourseOffering, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var allowed map[uuid.UUID]bool
	if scope.Restricted() {
		allowed = make(map[uuid.UUID]bool, len(scope.OfferingIDs))
		for _, id := range scope.OfferingIDs {
			allowed[id] = true
		}
	}

	offerings := []*models.CourseOffering{}
	for _, o := range r.db.offerings {
		if !o.IsPublished {
			continue
		}
		if allowed != nil && !allowed[o.ID] {
			continue
		}
		offerings = append(offerings, r.db.withCourse(o))
	}

	sort.Slice(offerings, func(i, j int) bool {
		return offerings[i].CreatedAt.After(offerings[j].CreatedAt)
	})
	return offerings, nil
}

func (r *offeringRepository) GetByID(_ context.Context, id uuid.UUID) (*models.CourseOffering, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	o, ok := r.db.offerings[id]
	if !ok {
		return nil, apperrors.ErrOfferingNotFound
	}
	return r.db.withCourse(o), nil
}

func (r *offeringRepository) SetPublished(_ context.Context, id uuid.UUID, published bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	o, ok := r.db.offerings[id]
	if !ok {
		return apperrors.ErrOfferingNotFound
	}
	o.IsPublished = published
	return nil
}

func (r *offeringRepository) CountStaff(_ context.Context, offeringID uuid.UUID) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	count := 0
	for k := range r.db.assignments {
		if k.offeringID == offeringID {
			count++
		}
	}
	return count, nil
}

func (r *offeringRepository) AssignedOfferingIDs(_ context.Context, staffID uuid.UUID) ([]uuid.UUID, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	ids := []uuid.UUID{}
	for k := range r.db.assignments {
		if k.staffID == staffID {
			ids = append(ids, k.offeringID)
		}
	}
	return ids, nil
}

func (r *offeringRepository) IsStaffAssigned(_ context.Context, offeringID, staffID uuid.UUID) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	_, ok := r.db.assignments[assignmentKey{offeringID: offeringID, staffID: staffID}]
	return ok, nil
}

type enrollmentRepository struct {
	db *DB
}

func (r *enrollmentRepository) Create(_ context.Context, studentID, offeringID uuid.UUID) (*models.Enrollment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	_, hasStudent := r.db.students[studentID]
	_, hasOffering := r.db.offerings[offeringID]
	if !hasStudent || !hasOffering {
		return nil, apperrors.NewResourceNotFoundError("Student or course offering not found")
	}

	key := pairKey{studentID: studentID, offeringID: offeringID}
	if _, exists := r.db.enrollments[key]; exists {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	e := &models.Enrollment{
		ID:               uuid.New(),
		StudentID:        studentID,
		CourseOfferingID: offeringID,
		EnrolledAt:       r.db.now(),
	}
	r.db.enrollments[key] = e
	cp := *e
	return &cp, nil
}

func (r *enrollmentRepository) Delete(_ context.Context, studentID, offeringID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.enrollments, pairKey{studentID: studentID, offeringID: offeringID})
	return nil
}

func (r *enrollmentRepository) Roster(_ context.Context, offeringID uuid.UUID) ([]*models.RosterEntry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	roster := []*models.RosterEntry{}
	for k, e := range r.db.enrollments {
		if k.offeringID != offeringID {
			continue
		}
		s, ok := r.db.students[k.studentID]
		if !ok {
			continue
		}
		p, ok := r.db.profiles[s.ProfileID]
		if !ok {
			continue
		}
		roster = append(roster, &models.RosterEntry{
			EnrollmentID: e.ID,
			StudentID:    s.ID,
			MatricNo:     s.MatricNo,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			EnrolledAt:   e.EnrolledAt,
		})
	}

	sort.Slice(roster, func(i, j int) bool {
		if roster[i].LastName != roster[j].LastName {
			return roster[i].LastName < roster[j].LastName
		}
		return roster[i].FirstName < roster[j].FirstName
	})
	return roster, nil
}

func (r *enrollmentRepository) ListForStudent(_ context.Context, studentID uuid.UUID, sessionID *uuid.UUID) ([]*models.StudentEnrollment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	enrollments := []*models.StudentEnrollment{}
	for k, e := range r.db.enrollments {
		if k.studentID != studentID {
			continue
		}
		o, ok := r.db.offerings[k.offeringID]
		if !ok || (sessionID != nil && o.SessionID != *sessionID) {
			continue
		}
		joined := r.db.withCourse(o)
		enrollments = append(enrollments, &models.StudentEnrollment{
			EnrollmentID:     e.ID,
			CourseOfferingID: o.ID,
			SessionID:        o.SessionID,
			Semester:         o.Semester,
			Level:            o.Level,
			CourseCode:       joined.CourseCode,
			CourseTitle:      joined.CourseTitle,
			CourseUnits:      joined.CourseUnits,
			EnrolledAt:       e.EnrolledAt,
		})
	}

	sort.Slice(enrollments, func(i, j int) bool {
		return enrollments[i].EnrolledAt.After(enrollments[j].EnrolledAt)
	})
	return enrollments, nil
}

type resultRepository struct {
	db *DB
}

func (r *resultRepository) Upsert(_ context.Context, res *models.Result) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	_, hasStudent := r.db.students[res.StudentID]
	_, hasOffering := r.db.offerings[res.CourseOfferingID]
	if !hasStudent || !hasOffering {
		return apperrors.NewResourceNotFoundError("Student or course offering not found")
	}

	now := r.db.now()
	key := pairKey{studentID: res.StudentID, offeringID: res.CourseOfferingID}
	if existing, ok := r.db.results[key]; ok {
		res.ID = existing.ID
		res.CreatedAt = existing.CreatedAt
	} else {
		res.ID = newIDIfNil(res.ID)
		res.CreatedAt = now
	}
	res.UpdatedAt = now

	cp := *res
	r.db.results[key] = &cp
	return nil
}

func (r *resultRepository) ListForStudent(_ context.Context, studentID uuid.UUID, sessionID *uuid.UUID) ([]*models.StudentResult, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	results := []*models.StudentResult{}
	for k, res := range r.db.results {
		if k.studentID != studentID {
			continue
		}
		o, ok := r.db.offerings[k.offeringID]
		if !ok || (sessionID != nil && o.SessionID != *sessionID) {
			continue
		}
		joined := r.db.withCourse(o)
		results = append(results, &models.StudentResult{
			Result:      *res,
			SessionID:   o.SessionID,
			Semester:    o.Semester,
			CourseCode:  joined.CourseCode,
			CourseTitle: joined.CourseTitle,
			CourseUnits: joined.CourseUnits,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Semester != results[j].Semester {
			return results[i].Semester < results[j].Semester
		}
		return results[i].CourseCode < results[j].CourseCode
	})
	return results, nil
}

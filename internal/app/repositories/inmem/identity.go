package inmem

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
)

type profileRepository struct {
	db *DB
}

func (r *profileRepository) GetRole(_ context.Context, id uuid.UUID) (*models.RoleRecord, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.profiles[id]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	return &models.RoleRecord{MainRole: p.MainRole, Unit: p.Unit}, nil
}

func (r *profileRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.profiles[id]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *profileRepository) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, p := range r.db.profiles {
		if strings.EqualFold(p.Email, email) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.ErrProfileNotFound
}

func (r *profileRepository) Create(_ context.Context, profile *models.Profile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, p := range r.db.profiles {
		if strings.EqualFold(p.Email, profile.Email) {
			return fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
		}
	}

	profile.ID = newIDIfNil(profile.ID)
	if profile.OnboardingStatus == "" {
		profile.OnboardingStatus = models.OnboardingPending
	}
	now := r.db.now()
	profile.CreatedAt, profile.UpdatedAt = now, now

	cp := *profile
	r.db.profiles[cp.ID] = &cp
	return nil
}

func (r *profileRepository) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return apperrors.NewBadRequestError("No updatable fields provided")
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.profiles[id]
	if !ok {
		return apperrors.ErrProfileNotFound
	}

	updated, err := applyProfile(*p, fields)
	if err != nil {
		return err
	}
	updated.UpdatedAt = r.db.now()
	r.db.profiles[id] = &updated
	return nil
}

func (r *profileRepository) CompleteOnboarding(ctx context.Context, id uuid.UUID) error {
	return r.Update(ctx, id, map[string]interface{}{"onboarding_status": models.OnboardingCompleted})
}

type studentRepository struct {
	db *DB
}

func (r *studentRepository) GetIDByProfileID(_ context.Context, profileID uuid.UUID) (uuid.UUID, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, s := range r.db.students {
		if s.ProfileID == profileID {
			return s.ID, nil
		}
	}
	return uuid.Nil, apperrors.ErrStudentNotFound
}

func (r *studentRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Student, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *studentRepository) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return apperrors.NewBadRequestError("No updatable fields provided")
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}

	updated, err := applyStudent(*s, fields)
	if err != nil {
		return err
	}
	if !r.db.studentRefsExist(updated, fields) {
		return apperrors.NewBadRequestError("Referenced record does not exist")
	}
	updated.UpdatedAt = r.db.now()
	r.db.students[id] = &updated
	return nil
}

// studentRefsExist mirrors the students table foreign keys for the columns
// being written. Callers hold db.mu.
func (db *DB) studentRefsExist(s models.Student, fields map[string]interface{}) bool {
	refs := map[string]struct {
		id     *uuid.UUID
		exists func(uuid.UUID) bool
	}{
		"program_id":        {s.ProgramID, func(id uuid.UUID) bool { _, ok := db.programs[id]; return ok }},
		"department_id":     {s.DepartmentID, func(id uuid.UUID) bool { _, ok := db.departments[id]; return ok }},
		"course_session_id": {s.CourseSessionID, func(id uuid.UUID) bool { _, ok := db.sessions[id]; return ok }},
	}
	for col, ref := range refs {
		if _, written := fields[col]; !written || ref.id == nil {
			continue
		}
		if !ref.exists(*ref.id) {
			return false
		}
	}
	return true
}

type staffRepository struct {
	db *DB
}

func (r *staffRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Staff, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.staff[id]
	if !ok {
		return nil, apperrors.ErrStaffNotFound
	}
	cp := *s
	return &cp, nil
}

type credentialRepository struct {
	db *DB
}

func (r *credentialRepository) GetHash(_ context.Context, profileID uuid.UUID) (string, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	hash, ok := r.db.credentials[profileID]
	if !ok {
		return "", apperrors.ErrResourceNotFound
	}
	return hash, nil
}

func (r *credentialRepository) SetHash(_ context.Context, profileID uuid.UUID, hash string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.profiles[profileID]; !ok {
		return apperrors.ErrProfileNotFound
	}
	r.db.credentials[profileID] = hash
	return nil
}

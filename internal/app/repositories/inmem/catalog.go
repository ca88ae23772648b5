package inmem

import (
	"context"
	"sort"

	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
	"github.com/yigit/htiportal/internal/pkg/helpers"
)

type sessionRepository struct {
	db *DB
}

func (r *sessionRepository) List(_ context.Context) ([]*models.Session, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	sessions := make([]*models.Session, 0, len(r.db.sessions))
	for _, s := range r.db.sessions {
		cp := *s
		sessions = append(sessions, &cp)
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].IsActive != sessions[j].IsActive {
			return sessions[i].IsActive
		}
		return sessions[i].StartDate.After(sessions[j].StartDate)
	})
	return sessions, nil
}

type programRepository struct {
	db *DB
}

func (r *programRepository) List(_ context.Context) ([]*models.Program, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	programs := make([]*models.Program, 0, len(r.db.programs))
	for _, p := range r.db.programs {
		cp := *p
		programs = append(programs, &cp)
	}

	sort.Slice(programs, func(i, j int) bool { return programs[i].Name < programs[j].Name })
	return programs, nil
}

type receiptRepository struct {
	db *DB
}

func (r *receiptRepository) Create(_ context.Context, receipt *models.Receipt) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.students[receipt.StudentID]; !ok {
		return apperrors.NewResourceNotFoundError("Student not found")
	}
	for _, existing := range r.db.receipts {
		if existing.Reference == receipt.Reference {
			return apperrors.ErrDuplicateReference
		}
	}

	receipt.ID = newIDIfNil(receipt.ID)
	receipt.IssuedAt = r.db.now()
	cp := *receipt
	r.db.receipts = append(r.db.receipts, &cp)
	return nil
}

func (r *receiptRepository) List(_ context.Context, filter models.ReceiptFilter) ([]*models.Receipt, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	matched := []*models.Receipt{}
	for _, rc := range r.db.receipts {
		if filter.StudentID != nil && rc.StudentID != *filter.StudentID {
			continue
		}
		cp := *rc
		matched = append(matched, &cp)
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].IssuedAt.After(matched[j].IssuedAt) })

	start, end := helpers.CalculateSliceIndices(filter.Offset, filter.Limit, len(matched))
	return matched[start:end], int64(len(matched)), nil
}

package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
	"github.com/yigit/htiportal/internal/pkg/dberrors"
	"github.com/yigit/htiportal/internal/pkg/logger"
)

const receiptReferenceConstraint = "receipts_reference_key"

// PgReceiptRepository handles receipt database operations
type PgReceiptRepository struct {
	db DBTX
}

// NewReceiptRepository creates a new PgReceiptRepository
func NewReceiptRepository(db DBTX) *PgReceiptRepository {
	return &PgReceiptRepository{db: db}
}

// Create stores a receipt and fills in its id and issue time.
func (r *PgReceiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}

	sql, args, err := psql.Insert("receipts").
		Columns("id", "student_id", "amount", "reference", "description", "issued_by").
		Values(receipt.ID, receipt.StudentID, receipt.Amount, receipt.Reference, receipt.Description, receipt.IssuedBy).
		Suffix("RETURNING issued_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create receipt query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&receipt.IssuedAt); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, receiptReferenceConstraint):
			return apperrors.ErrDuplicateReference
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.NewResourceNotFoundError("Student not found")
		}
		logger.Error().Err(err).Str("reference", receipt.Reference).Msg("Error creating receipt")
		return fmt.Errorf("error creating receipt: %w", err)
	}
	return nil
}

func receiptFilterWhere(filter models.ReceiptFilter) squirrel.And {
	where := squirrel.And{}
	if filter.StudentID != nil {
		where = append(where, squirrel.Eq{"student_id": *filter.StudentID})
	}
	return where
}

// List returns a page of receipts, newest first, and the total count.
func (r *PgReceiptRepository) List(ctx context.Context, filter models.ReceiptFilter) ([]*models.Receipt, int64, error) {
	where := receiptFilterWhere(filter)

	countSQL, countArgs, err := psql.Select("COUNT(*)").From("receipts").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count receipts query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting receipts: %w", err)
	}

	receipts := []*models.Receipt{}
	if total == 0 {
		return receipts, 0, nil
	}

	sql, args, err := psql.Select("id", "student_id", "amount", "reference", "description", "issued_by", "issued_at").
		From("receipts").
		Where(where).
		OrderBy("issued_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list receipts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying receipts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rc models.Receipt
		if err := rows.Scan(&rc.ID, &rc.StudentID, &rc.Amount, &rc.Reference, &rc.Description, &rc.IssuedBy, &rc.IssuedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning receipt: %w", err)
		}
		receipts = append(receipts, &rc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating receipts: %w", err)
	}
	return receipts, total, nil
}

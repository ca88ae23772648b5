package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/app/models/dto"
	"github.com/yigit/htiportal/internal/app/repositories"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
	"github.com/yigit/htiportal/internal/pkg/helpers"
)

// ReceiptService handles bursary fee receipts
type ReceiptService struct {
	receipts repositories.ReceiptRepository
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(receipts repositories.ReceiptRepository) *ReceiptService {
	return &ReceiptService{receipts: receipts}
}

// Issue records a receipt. issued_by is always the caller.
func (s *ReceiptService) Issue(ctx context.Context, caller Caller, req dto.ReceiptRequest) (*models.Receipt, error) {
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("student_id must be a valid UUID")
	}
	if req.Amount == nil || *req.Amount <= 0 {
		return nil, apperrors.NewBadRequestError("amount must be greater than zero")
	}
	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		return nil, apperrors.NewBadRequestError("reference is required")
	}

	receipt := &models.Receipt{
		StudentID:   studentID,
		Amount:      *req.Amount,
		Reference:   reference,
		Description: req.Description,
		IssuedBy:    caller.PrincipalID,
	}
	if err := s.receipts.Create(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// List returns a page of receipts, newest first, optionally for one student.
func (s *ReceiptService) List(ctx context.Context, studentID *uuid.UUID, page, pageSize int) ([]*models.Receipt, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	receipts, total, err := s.receipts.List(ctx, models.ReceiptFilter{
		StudentID: studentID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	if receipts == nil {
		receipts = []*models.Receipt{}
	}

	return receipts, helpers.NewPaginationInfo(total, page, limit), nil
}

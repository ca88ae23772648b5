package dto

import "github.com/yigit/htiportal/internal/app/models"

// ReceiptRequest issues a fee receipt.
type ReceiptRequest struct {
	StudentID   string   `json:"student_id" binding:"required,uuid_any"`
	Amount      *float64 `json:"amount" binding:"required,gt=0"`
	Reference   string   `json:"reference" binding:"required,receipt_ref"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
}

// ReceiptResponse wraps an issued receipt.
type ReceiptResponse struct {
	Receipt *models.Receipt `json:"receipt"`
}

// ReceiptsResponse is a page of receipts.
type ReceiptsResponse struct {
	Receipts   []*models.Receipt `json:"receipts"`
	Pagination PaginationInfo    `json:"pagination"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Receipt records a fee payment issued by the bursary.
type Receipt struct {
	ID          uuid.UUID `json:"id"`
	StudentID   uuid.UUID `json:"student_id"`
	Amount      float64   `json:"amount"`
	Reference   string    `json:"reference"`
	Description *string   `json:"description"`
	IssuedBy    uuid.UUID `json:"issued_by"`
	IssuedAt    time.Time `json:"issued_at"`
}

// ReceiptFilter narrows a receipt listing.
type ReceiptFilter struct {
	StudentID *uuid.UUID
	Limit     int
	Offset    int
}

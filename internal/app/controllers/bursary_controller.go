package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/htiportal/internal/app/models/dto"
	"github.com/yigit/htiportal/internal/app/services"
	"github.com/yigit/htiportal/internal/middleware"
	"github.com/yigit/htiportal/internal/pkg/helpers"
)

// BursaryController handles fee receipts
type BursaryController struct {
	receipts *services.ReceiptService
}

// NewBursaryController creates a new BursaryController
func NewBursaryController(receipts *services.ReceiptService) *BursaryController {
	return &BursaryController{receipts: receipts}
}

// ListReceipts returns a page of receipts, optionally for one student.
// GET /bursary/receipts?student_id=&page=&size=
func (c *BursaryController) ListReceipts(ctx *gin.Context) {
	studentID, ok := optionalQueryUUID(ctx, "student_id")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	receipts, pagination, err := c.receipts.List(ctx.Request.Context(), studentID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ReceiptsResponse{Receipts: receipts, Pagination: pagination})
}

// IssueReceipt records a fee receipt issued by the caller.
// POST /bursary/receipts
func (c *BursaryController) IssueReceipt(ctx *gin.Context) {
	g, ok := grant(ctx)
	if !ok {
		return
	}

	var req dto.ReceiptRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	receipt, err := c.receipts.Issue(ctx.Request.Context(), caller(g), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ReceiptResponse{Receipt: receipt})
}

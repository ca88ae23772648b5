package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/htiportal/internal/app/models/dto"
	"github.com/yigit/htiportal/internal/app/services"
	"github.com/yigit/htiportal/internal/middleware"
)

// CatalogController serves public catalog data
type CatalogController struct {
	catalog *services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// ListPrograms lists all programs.
// GET /programs
func (c *CatalogController) ListPrograms(ctx *gin.Context) {
	programs, err := c.catalog.ListPrograms(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProgramsResponse{Programs: programs})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageController serves the role landing pages once a page guard has let the
// caller through.
type PageController struct{}

// NewPageController creates a new PageController
func NewPageController() *PageController {
	return &PageController{}
}

// Home describes the landing page of the caller's role.
func (c *PageController) Home(ctx *gin.Context) {
	g, ok := grant(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"page":         ctx.FullPath(),
		"role":         g.Role,
		"principal_id": g.PrincipalID,
	})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/htiportal/internal/app/models/dto"
	"github.com/yigit/htiportal/internal/app/services"
	"github.com/yigit/htiportal/internal/middleware"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthController handles sign-in, sign-out and onboarding
type AuthController struct {
	auth   *services.AuthService
	cookie CookieConfig
}

// NewAuthController creates a new AuthController
func NewAuthController(auth *services.AuthService, cookie CookieConfig) *AuthController {
	return &AuthController{auth: auth, cookie: cookie}
}

// SignIn verifies credentials, sets the session cookie and returns the token.
// POST /auth/sign-in
func (c *AuthController) SignIn(ctx *gin.Context) {
	var req dto.SignInRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.auth.SignIn(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookie.Name, resp.AccessToken, resp.ExpiresIn, "/", "", c.cookie.Secure, true)
	ctx.JSON(http.StatusOK, resp)
}

// SignOut clears the session cookie.
// POST /auth/sign-out
func (c *AuthController) SignOut(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookie.Name, "", -1, "/", "", c.cookie.Secure, true)
	ctx.JSON(http.StatusOK, dto.Success)
}

// CompleteOnboarding marks the caller's onboarding as completed.
// POST /onboarding/complete
func (c *AuthController) CompleteOnboarding(ctx *gin.Context) {
	g, ok := grant(ctx)
	if !ok {
		return
	}

	if err := c.auth.CompleteOnboarding(ctx.Request.Context(), caller(g)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

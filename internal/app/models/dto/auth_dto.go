package dto

import "github.com/yigit/htiportal/internal/app/models"

// SignInRequest carries sign-in credentials.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignInResponse returns the session token and the signed-in profile.
type SignInResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type" example:"Bearer"`
	ExpiresIn   int             `json:"expires_in"`
	RedirectTo  string          `json:"redirect_to"`
	Profile     *models.Profile `json:"profile"`
}

package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/models/dto"
	"github.com/yigit/htiportal/internal/app/repositories"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
	pkgauth "github.com/yigit/htiportal/internal/pkg/auth"
	"github.com/yigit/htiportal/internal/pkg/logger"
)

// TokenIssuer signs session tokens for a principal.
type TokenIssuer interface {
	GenerateSessionToken(principalID uuid.UUID, email string) (string, int, error)
}

// AuthService handles sign-in and onboarding
type AuthService struct {
	profiles    repositories.ProfileRepository
	credentials repositories.CredentialRepository
	tokens      TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(profiles repositories.ProfileRepository, credentials repositories.CredentialRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{profiles: profiles, credentials: credentials, tokens: tokens}
}

// SignIn verifies credentials and issues a session token. Unknown emails,
// profiles without a password and wrong passwords all fail the same way.
func (s *AuthService) SignIn(ctx context.Context, req dto.SignInRequest) (*dto.SignInResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			logger.Debug().Str("email", email).Msg("Sign-in for unknown email")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	hash, err := s.credentials.GetHash(ctx, profile.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !pkgauth.CheckPassword(hash, req.Password) {
		logger.Warn().Str("profileID", profile.ID.String()).Msg("Sign-in with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.tokens.GenerateSessionToken(profile.ID, profile.Email)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("profileID", profile.ID.String()).Str("role", string(profile.MainRole)).Msg("Signed in")
	return &dto.SignInResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		RedirectTo:  profile.MainRole.HomePath(),
		Profile:     profile,
	}, nil
}

// CompleteOnboarding marks the caller's onboarding as completed.
func (s *AuthService) CompleteOnboarding(ctx context.Context, caller Caller) error {
	return s.profiles.CompleteOnboarding(ctx, caller.PrincipalID)
}

func isNotFound(err error) bool {
	return apperrors.Is(err, apperrors.ErrResourceNotFound, apperrors.ErrProfileNotFound)
}

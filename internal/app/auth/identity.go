package auth

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/pkg/apperrors"
	pkgauth "github.com/yigit/htiportal/internal/pkg/auth"
	"github.com/yigit/htiportal/internal/pkg/logger"
)

// TokenParser verifies a session token.
type TokenParser interface {
	ParseSessionToken(token string) (*pkgauth.Claims, error)
}

// IdentityResolver turns a request's session credential into a principal id.
type IdentityResolver struct {
	tokens     TokenParser
	cookieName string
}

// NewIdentityResolver creates an IdentityResolver. The session token is read from the
// Authorization header first and from the named cookie otherwise.
func NewIdentityResolver(tokens TokenParser, cookieName string) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, cookieName: cookieName}
}

// Resolve returns the principal behind the request or ErrUnauthenticated.
func (r *IdentityResolver) Resolve(req *http.Request) (uuid.UUID, error) {
	token, err := r.sessionToken(req)
	if err != nil {
		return uuid.Nil, apperrors.ErrUnauthenticated
	}

	claims, err := r.tokens.ParseSessionToken(token)
	if err != nil {
		if !errors.Is(err, pkgauth.ErrExpiredToken) {
			logger.Debug().Err(err).Msg("Rejected session token")
		}
		return uuid.Nil, apperrors.ErrUnauthenticated
	}

	principal, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperrors.ErrUnauthenticated
	}
	return principal, nil
}

func (r *IdentityResolver) sessionToken(req *http.Request) (string, error) {
	if header := req.Header.Get("Authorization"); header != "" {
		return pkgauth.ExtractBearerToken(header)
	}

	if r.cookieName != "" {
		if cookie, err := req.Cookie(r.cookieName); err == nil && cookie.Value != "" {
			return cookie.Value, nil
		}
	}
	return "", pkgauth.ErrInvalidFormat
}

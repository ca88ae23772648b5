package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/htiportal/internal/app/auth"
	"github.com/yigit/htiportal/internal/app/models/dto"
)

const grantKey = "authGrant"

// Require runs an access check before the handler. Granted callers continue with
// the grant stored in the context; denials end the request.
func Require(check auth.Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch res := check(c.Request.Context(), c.Request).(type) {
		case auth.Granted:
			c.Set(grantKey, res)
			c.Next()
		case auth.Denied:
			c.AbortWithStatusJSON(res.Status, dto.NewErrorResponse(res.Message))
		case auth.Redirect:
			c.Redirect(http.StatusFound, res.Location)
			c.Abort()
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(InternalErrorMessage))
		}
	}
}

// GetGrant returns the grant stored by Require.
func GetGrant(c *gin.Context) (auth.Granted, bool) {
	v, ok := c.Get(grantKey)
	if !ok {
		return auth.Granted{}, false
	}
	grant, ok := v.(auth.Granted)
	return grant, ok
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/htiportal/internal/app/auth"
	"github.com/yigit/htiportal/internal/app/models/dto"
	"github.com/yigit/htiportal/internal/app/services"
	"github.com/yigit/htiportal/internal/middleware"
)

// pathUUID parses a path parameter as a UUID, writing a 400 when it is not one.
func pathUUID(ctx *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid "+label+" id"))
		return uuid.Nil, false
	}
	return id, true
}

// optionalQueryUUID parses an optional UUID query parameter. An absent or empty
// parameter yields nil.
func optionalQueryUUID(ctx *gin.Context, name string) (*uuid.UUID, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid "+name))
		return nil, false
	}
	return &id, true
}

// grant returns the caller's grant. Routes are always mounted behind a guard,
// so a missing grant is answered as unauthenticated.
func grant(ctx *gin.Context) (auth.Granted, bool) {
	g, ok := middleware.GetGrant(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(auth.MsgUnauthorized))
	}
	return g, ok
}

func caller(g auth.Granted) services.Caller {
	return services.Caller{PrincipalID: g.PrincipalID, Role: g.Role}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/bersihin/bersihin/internal/domain/errors"
	pkgAuth "github.com/bersihin/bersihin/internal/pkg/auth"
	"github.com/bersihin/bersihin/internal/server/http/middleware"
)

// CurrentActorID extracts the authenticated actor identifier from context.
func CurrentActorID(c *gin.Context) uuid.UUID {
	val, ok := c.Get(middleware.ActorIDContextKey)
	if !ok {
		return uuid.Nil
	}
	id, _ := val.(uuid.UUID)
	return id
}

// CurrentActorIsAdmin reports whether the authenticated actor holds the admin role.
func CurrentActorIsAdmin(c *gin.Context) bool {
	val, ok := c.Get(middleware.ActorRoleContextKey)
	if !ok {
		return false
	}
	role, _ := val.(pkgAuth.Role)
	return role == pkgAuth.RoleAdmin
}

func orderIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	case domainErrors.IsInvalidTransition(err):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrOutOfServiceArea):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrGatewayUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), gin.H{"error": err.Error()})
}

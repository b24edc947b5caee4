package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/bersihin/bersihin/internal/pkg/auth"
)

const (
	// ActorIDContextKey is a gin context key for the authenticated actor identifier.
	ActorIDContextKey = "actorID"
	// ActorRoleContextKey is a gin context key for the authenticated actor role.
	ActorRoleContextKey = "actorRole"
	authCookieName      = "bersihin_token"
)

// TokenParser verifies a bearer token and yields its actor.
type TokenParser interface {
	ParseToken(token string) (pkgAuth.Actor, error)
}

// AuthRequired ensures the caller is authenticated before accessing a
// handler. When roles are given the actor's role must match one of them.
func AuthRequired(parser TokenParser, roles ...pkgAuth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		actor, err := parser.ParseToken(token)
		if err != nil {
			if err == pkgAuth.ErrInvalidToken {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		if len(roles) > 0 && !roleAllowed(actor.Role, roles) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Set(ActorIDContextKey, actor.ID)
		c.Set(ActorRoleContextKey, actor.Role)
		c.Next()
	}
}

func roleAllowed(role pkgAuth.Role, allowed []pkgAuth.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/unimeet/unimeet-api/internal/domain/entity"
	"github.com/unimeet/unimeet-api/pkg/jwt"
)

const (
	ContextUserIDKey        = "user_id"
	ContextRoleKey          = "role"
	ContextManagedClubIDKey = "managed_club_id"
)

// Auth requires a valid bearer token and injects the caller's identity into
// the request context.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, manager)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)
		if claims.ManagedClubID != nil {
			c.Set(ContextManagedClubIDKey, *claims.ManagedClubID)
		}
		c.Next()
	}
}

// OptionalAuth injects identity when a valid token is present and lets the
// request through anonymously otherwise.
func OptionalAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, manager); ok {
			c.Set(ContextUserIDKey, claims.UserID)
			c.Set(ContextRoleKey, claims.Role)
		}
		c.Next()
	}
}

// RequireAdmin must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRoleKey) != string(entity.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "admin role required"})
			return
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context, manager *jwt.Manager) (*jwt.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := manager.Parse(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

// UserID returns the authenticated caller's id, zero for anonymous requests.
func UserID(c *gin.Context) uint {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0
	}
	id, ok := v.(uint)
	if !ok {
		return 0
	}
	return id
}

package middleware

import (
	"net/http"
	"strings"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID   = "userID"
	ctxUserRole = "userRole"
)

// RequireAuth validates the bearer token and stores the caller's id and
// role on the context. Websocket upgrades may pass the token as a query
// parameter instead, since browsers cannot set headers on ws dials.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authorization required"})
			return
		}

		claims, err := service.ParseJWT(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin gates a route group to admin and super_admin callers.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxUserRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authorization required"})
			return
		}
		r, ok := role.(domain.Role)
		if !ok || (r != domain.RoleAdmin && r != domain.RoleSuperAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "admin access required"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's public id, or "" before auth.
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// UserRole returns the authenticated caller's role.
func UserRole(c *gin.Context) domain.Role {
	if v, ok := c.Get(ctxUserRole); ok {
		if r, ok := v.(domain.Role); ok {
			return r
		}
	}
	return domain.RoleUser
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

package jwt

import (
	"strconv"
	"strings"

	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserIDKey holds the authenticated user id in gin.Context.
	ContextUserIDKey = "user_id"
	// ContextUsernameKey holds the username in gin.Context.
	ContextUsernameKey = "username"
	// ContextRoleKey holds the role in gin.Context.
	ContextRoleKey = "role"
	// ContextClaimsKey holds the parsed claims in gin.Context.
	ContextClaimsKey = "jwt_claims"
)

// AuthMiddleware extracts Authorization: Bearer <token>, verifies it, and
// stores the actor's id, username, and role in the context. Unauthenticated
// calls never reach the handlers.
func (s *JWTService) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "Authorization header must be Bearer <token>")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			response.Unauthorized(c, "token is empty")
			c.Abort()
			return
		}

		claims, err := s.ValidateToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "token invalid or expired")
			c.Abort()
			return
		}

		username := ""
		role := ""
		if claims.Data != nil {
			if u, ok := claims.Data["username"].(string); ok {
				username = u
			}
			if r, ok := claims.Data["role"].(string); ok {
				role = r
			}
		}

		c.Set(ContextUserIDKey, claims.Subject)
		c.Set(ContextUsernameKey, username)
		c.Set(ContextRoleKey, role)
		c.Set(ContextClaimsKey, claims)

		c.Next()
	}
}

// RequireRole gates a route group on the role claim. Must run after
// AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != role {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user id as stored by AuthMiddleware.
func GetUserID(c *gin.Context) string {
	if userID, exists := c.Get(ContextUserIDKey); exists {
		if id, ok := userID.(string); ok {
			return id
		}
	}
	return ""
}

// GetUserIDUint returns the authenticated user id parsed to uint, or 0.
func GetUserIDUint(c *gin.Context) uint {
	id, err := strconv.ParseUint(GetUserID(c), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// GetUsername returns the authenticated username.
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get(ContextUsernameKey); exists {
		if name, ok := username.(string); ok {
			return name
		}
	}
	return ""
}

// GetRole returns the authenticated role.
func GetRole(c *gin.Context) string {
	if role, exists := c.Get(ContextRoleKey); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}

// GetClaims returns the parsed claims.
func GetClaims(c *gin.Context) *CustomClaims {
	if claims, exists := c.Get(ContextClaimsKey); exists {
		if cc, ok := claims.(*CustomClaims); ok {
			return cc
		}
	}
	return nil
}

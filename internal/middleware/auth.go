package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/bellagenda/salon-scheduler/internal/config"
	"github.com/bellagenda/salon-scheduler/internal/domain/identity"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := credentialsFromHeader(c, cfg)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Credencial ausente ou inválida.",
			})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the identity when a valid token is
// present and silently continues otherwise. Public lookups use it.
func OptionalAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, role, ok := credentialsFromHeader(c, cfg); ok {
			c.Set(ContextUserID, userID)
			c.Set(ContextUserRole, role)
		}
		c.Next()
	}
}

func credentialsFromHeader(c *gin.Context, cfg *config.Config) (string, identity.Role, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", identity.RoleUnknown, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", identity.RoleUnknown, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", identity.RoleUnknown, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", identity.RoleUnknown, false
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", identity.RoleUnknown, false
	}

	roleStr, _ := claims["role"].(string)
	role, err := identity.Parse(roleStr)
	if err != nil {
		return "", identity.RoleUnknown, false
	}

	return userID, role, true
}

// UserID reads the authenticated user from the gin context; ok is false on
// anonymous requests.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func UserRole(c *gin.Context) (identity.Role, bool) {
	v, ok := c.Get(ContextUserRole)
	if !ok {
		return identity.RoleUnknown, false
	}
	role, ok := v.(identity.Role)
	return role, ok
}

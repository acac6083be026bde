package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bellagenda/salon-scheduler/internal/domain/identity"
)

// RequireRoles gates a route to the listed roles. The decision switches
// exhaustively over the enum; an unknown role is always rejected.
func RequireRoles(allowed ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := UserRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Não autenticado.",
			})
			return
		}

		switch role {
		case identity.RoleClient, identity.RoleSalon, identity.RoleProfessional:
			for _, a := range allowed {
				if role == a {
					c.Next()
					return
				}
			}
		case identity.RoleUnknown:
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Sem permissão para esta ação.",
		})
	}
}

package middlewares

import (
	"net/http"
	"slices"

	"github.com/Kariqs/ezelectronics-api/models"
	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only when the caller has one of roles.
// A wrong role answers 401 like a missing login does.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, exists := CurrentUser(ctx)
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}

		if !slices.Contains(roles, user.Role) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User is not allowed to perform this operation"})
			return
		}

		ctx.Next()
	}
}

func RequireCustomer() gin.HandlerFunc {
	return RequireRole(models.RoleCustomer)
}

func RequireAdminOrManager() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin, models.RoleManager)
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

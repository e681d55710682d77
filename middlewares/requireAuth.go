package middlewares

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/Kariqs/ezelectronics-api/models"
	"github.com/Kariqs/ezelectronics-api/utils"
	"github.com/gin-gonic/gin"
)

const userKey = "user"

// UserRegistry records callers the first time they authenticate.
type UserRegistry interface {
	EnsureUser(ctx context.Context, user models.User) error
}

// RequireAuth resolves the caller from an "Authorization: Bearer" token and
// registers it with users. A nil users skips registration.
func RequireAuth(jwtSecret string, users UserRegistry) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated user"})
			return
		}

		claims, err := utils.ParseToken(tokenString, jwtSecret)
		if err != nil {
			log.Println("Token rejected:", err)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated user"})
			return
		}

		user := claims.User()
		if users != nil {
			if err := users.EnsureUser(ctx.Request.Context(), user); err != nil {
				log.Println("User registration failed:", err)
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
				return
			}
		}

		ctx.Set(userKey, user)
		ctx.Next()
	}
}

func CurrentUser(ctx *gin.Context) (models.User, bool) {
	value, exists := ctx.Get(userKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

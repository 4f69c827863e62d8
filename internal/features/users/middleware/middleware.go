package users_middleware

import (
	"net/http"
	"strings"

	users_models "taskboard/internal/features/users/models"
	users_services "taskboard/internal/features/users/services"
	"taskboard/internal/util/app_errors"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// AuthMiddleware validates the bearer token and adds the user to the context
func AuthMiddleware(userService *users_services.UserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ctx.GetHeader("Authorization")
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization token required",
				"kind":  app_errors.KindUnauthenticated,
			})
			return
		}

		token = strings.TrimPrefix(token, "Bearer ")

		user, err := userService.GetUserFromToken(ctx.Request.Context(), token)
		if err != nil {
			app_errors.RespondWithError(ctx, err)
			ctx.Abort()
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

// GetUserFromContext helper function to extract user from gin context
func GetUserFromContext(ctx *gin.Context) (*users_models.User, bool) {
	userInterface, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}

	user, ok := userInterface.(*users_models.User)

	return user, ok
}

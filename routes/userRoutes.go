package routes

import (
	"github.com/Kariqs/ezelectronics-api/controllers"
	"github.com/Kariqs/ezelectronics-api/middlewares"
	"github.com/gin-gonic/gin"
)

func UserRoutes(server *gin.Engine, requireAuth gin.HandlerFunc, users *controllers.UserController) {
	user := server.Group("/users", requireAuth)
	{
		admin := middlewares.RequireAdmin()
		user.GET("", admin, users.GetUsers)
		user.GET("/roles/:role", admin, users.GetUsersByRole)
		user.DELETE("", admin, users.DeleteAllUsers)

		user.GET("/:username", users.GetUser)
		user.PATCH("/:username", users.UpdateUser)
		user.DELETE("/:username", users.DeleteUser)
	}
}

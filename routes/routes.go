package routes

import (
	"github.com/Kariqs/ezelectronics-api/controllers"
	"github.com/Kariqs/ezelectronics-api/middlewares"
	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Carts    *controllers.CartController
	Products *controllers.ProductController
	Reviews  *controllers.ReviewController
	Users    *controllers.UserController
}

func RegisterRoutes(server *gin.Engine, jwtSecret string, users middlewares.UserRegistry, c Controllers) {
	requireAuth := middlewares.RequireAuth(jwtSecret, users)

	DefaultRoutes(server)
	CartRoutes(server, requireAuth, c.Carts)
	ProductRoutes(server, requireAuth, c.Products)
	ReviewRoutes(server, requireAuth, c.Reviews)
	UserRoutes(server, requireAuth, c.Users)
}

package routes

import (
	"github.com/Kariqs/ezelectronics-api/controllers"
	"github.com/Kariqs/ezelectronics-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine, requireAuth gin.HandlerFunc, carts *controllers.CartController) {
	cart := server.Group("/carts", requireAuth)
	{
		customer := middlewares.RequireCustomer()
		cart.GET("", customer, carts.GetCart)
		cart.POST("", customer, carts.AddToCart)
		cart.PATCH("", customer, carts.CheckoutCart)
		cart.GET("/history", customer, carts.GetCartHistory)
		cart.DELETE("/products/:model", customer, carts.RemoveProductFromCart)
		cart.DELETE("/current", customer, carts.ClearCart)

		staff := middlewares.RequireAdminOrManager()
		cart.GET("/all", staff, carts.GetAllCarts)
		cart.DELETE("", staff, carts.DeleteAllCarts)
	}
}

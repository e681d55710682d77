package routes

import (
	"github.com/Kariqs/ezelectronics-api/controllers"
	"github.com/Kariqs/ezelectronics-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine, requireAuth gin.HandlerFunc, products *controllers.ProductController) {
	product := server.Group("/products", requireAuth)
	{
		product.GET("", middlewares.RequireAdminOrManager(), products.GetProducts)
		product.GET("/available", products.GetAvailableProducts)
	}
}

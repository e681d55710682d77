package routes

import (
	"github.com/Kariqs/ezelectronics-api/controllers"
	"github.com/Kariqs/ezelectronics-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ReviewRoutes(server *gin.Engine, requireAuth gin.HandlerFunc, reviews *controllers.ReviewController) {
	review := server.Group("/reviews", requireAuth)
	{
		customer := middlewares.RequireCustomer()
		review.POST("/:model", customer, reviews.AddReview)
		review.GET("/:model", reviews.GetProductReviews)
		review.DELETE("/:model", customer, reviews.DeleteReview)

		staff := middlewares.RequireAdminOrManager()
		review.DELETE("/:model/all", staff, reviews.DeleteReviewsOfProduct)
		review.DELETE("", staff, reviews.DeleteAllReviews)
	}
}

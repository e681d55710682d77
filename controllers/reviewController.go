package controllers

import (
	"net/http"
	"strings"

	"github.com/Kariqs/ezelectronics-api/services"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

type addReviewRequest struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

func (c *ReviewController) AddReview(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req addReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Comment) == "" {
		respondWithError(ctx, http.StatusUnprocessableEntity, msgInvalidInput, err)
		return
	}

	model := ctx.Param("model")
	if err := c.reviews.AddReview(ctx.Request.Context(), user, model, req.Score, req.Comment); err != nil {
		handleServiceError(ctx, err, "Failed to add review")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Review added"})
}

func (c *ReviewController) GetProductReviews(ctx *gin.Context) {
	reviews, err := c.reviews.GetProductReviews(ctx.Request.Context(), ctx.Param("model"))
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch reviews")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, reviews)
}

func (c *ReviewController) DeleteReview(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.reviews.DeleteReview(ctx.Request.Context(), user, ctx.Param("model")); err != nil {
		handleServiceError(ctx, err, "Failed to delete review")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Review deleted"})
}

func (c *ReviewController) DeleteReviewsOfProduct(ctx *gin.Context) {
	if err := c.reviews.DeleteReviewsOfProduct(ctx.Request.Context(), ctx.Param("model")); err != nil {
		handleServiceError(ctx, err, "Failed to delete product reviews")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product reviews deleted"})
}

func (c *ReviewController) DeleteAllReviews(ctx *gin.Context) {
	if err := c.reviews.DeleteAllReviews(ctx.Request.Context()); err != nil {
		handleServiceError(ctx, err, "Failed to delete reviews")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "All reviews deleted"})
}

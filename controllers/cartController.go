package controllers

import (
	"net/http"
	"strings"

	"github.com/Kariqs/ezelectronics-api/services"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

type addToCartRequest struct {
	Model string `json:"model" binding:"required"`
}

func (c *CartController) GetCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	cart, err := c.carts.GetCart(ctx.Request.Context(), user)
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch cart")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, cart)
}

func (c *CartController) AddToCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req addToCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Model) == "" {
		respondWithError(ctx, http.StatusUnprocessableEntity, msgInvalidInput, err)
		return
	}

	if err := c.carts.AddToCart(ctx.Request.Context(), user, req.Model); err != nil {
		handleServiceError(ctx, err, "Failed to add product to cart")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": req.Model + " added to cart"})
}

func (c *CartController) CheckoutCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.carts.CheckoutCart(ctx.Request.Context(), user); err != nil {
		handleServiceError(ctx, err, "Failed to checkout cart")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart checked out"})
}

func (c *CartController) GetCartHistory(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	carts, err := c.carts.GetCustomerCarts(ctx.Request.Context(), user)
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch cart history")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, carts)
}

func (c *CartController) RemoveProductFromCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	model := ctx.Param("model")
	if err := c.carts.RemoveProductFromCart(ctx.Request.Context(), user, model); err != nil {
		handleServiceError(ctx, err, "Failed to remove product from cart")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": model + " removed from cart"})
}

func (c *CartController) ClearCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.carts.ClearCart(ctx.Request.Context(), user); err != nil {
		handleServiceError(ctx, err, "Failed to clear cart")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared"})
}

func (c *CartController) GetAllCarts(ctx *gin.Context) {
	carts, err := c.carts.GetAllCarts(ctx.Request.Context())
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch carts")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, carts)
}

func (c *CartController) DeleteAllCarts(ctx *gin.Context) {
	if err := c.carts.DeleteAllCarts(ctx.Request.Context()); err != nil {
		handleServiceError(ctx, err, "Failed to delete carts")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "All carts deleted"})
}

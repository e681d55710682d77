package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to EZElectronics API. All endpoints except this one and /health need a Bearer token.

The following are the endpoints for this API:

CART
- GET "/carts" - Get the current cart (Customer)
- POST "/carts" - Add one unit of a product to the current cart (Customer)
- PATCH "/carts" - Checkout the current cart (Customer)
- GET "/carts/history" - Get paid carts (Customer)
- DELETE "/carts/products/:model" - Remove one unit of a product (Customer)
- DELETE "/carts/current" - Empty the current cart (Customer)
- GET "/carts/all" - Get every cart (Admin, Manager)
- DELETE "/carts" - Delete every cart (Admin, Manager)

PRODUCT
- GET "/products" - Get products, optionally by category or model (Admin, Manager)
- GET "/products/available" - Get products in stock

REVIEW
- POST "/reviews/:model" - Review a product (Customer)
- GET "/reviews/:model" - Get the reviews of a product
- DELETE "/reviews/:model" - Delete your review of a product (Customer)
- DELETE "/reviews/:model/all" - Delete all reviews of a product (Admin, Manager)
- DELETE "/reviews" - Delete all reviews (Admin, Manager)

USER
- GET "/users" - Get every user (Admin)
- GET "/users/roles/:role" - Get users with a role (Admin)
- GET "/users/:username" - Get a user (self, Admin)
- PATCH "/users/:username" - Update name, surname, address and birthdate (self, Admin)
- DELETE "/users/:username" - Delete a user (self, Admin)
- DELETE "/users" - Delete every non-admin user (Admin)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

func GetHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

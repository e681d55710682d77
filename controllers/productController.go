package controllers

import (
	"net/http"

	"github.com/Kariqs/ezelectronics-api/models"
	"github.com/Kariqs/ezelectronics-api/services"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

type productQuery struct {
	Grouping string `form:"grouping"`
	Category string `form:"category"`
	Model    string `form:"model"`
}

func (c *ProductController) GetProducts(ctx *gin.Context) {
	c.listProducts(ctx, false)
}

func (c *ProductController) GetAvailableProducts(ctx *gin.Context) {
	c.listProducts(ctx, true)
}

func (c *ProductController) listProducts(ctx *gin.Context, availableOnly bool) {
	var query productQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondWithError(ctx, http.StatusUnprocessableEntity, msgInvalidInput, err)
		return
	}

	products, err := c.products.GetProducts(ctx.Request.Context(), models.ProductFilter{
		Grouping:      query.Grouping,
		Category:      query.Category,
		Model:         query.Model,
		AvailableOnly: availableOnly,
	})
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch products")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, products)
}

package services

import (
	"context"
	"fmt"

	"github.com/Kariqs/ezelectronics-api/models"
	"github.com/Kariqs/ezelectronics-api/repository"
)

// ProductService is the read-only catalog surface.
type ProductService struct {
	products *repository.ProductRepository
}

func NewProductService(products *repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) GetProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	products, err := s.products.ListProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if filter.Grouping == "model" && len(products) == 0 {
		exists, err := s.products.ProductExists(ctx, filter.Model)
		if err != nil {
			return nil, fmt.Errorf("check product: %w", err)
		}
		if !exists {
			return nil, ErrProductNotFound
		}
	}
	return products, nil
}

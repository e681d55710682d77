package repository

import (
	"context"
	"errors"

	"github.com/Kariqs/ezelectronics-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// ProductRepository is the read side of the product catalog plus the stock
// decrement used by checkout.
type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

// GetProductByModel returns gorm.ErrRecordNotFound for an unknown model.
func (r *ProductRepository) GetProductByModel(tx *gorm.DB, model string, forUpdate bool) (*models.Product, error) {
	query := tx
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var product models.Product
	if err := query.Where("model = ?", model).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) ProductExists(ctx context.Context, model string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Where("model = ?", model).Count(&count).Error
	return count > 0, err
}

// DecrementStock takes quantity units off the product only if that many are
// left, otherwise it returns ErrInsufficientStock and changes nothing.
func (r *ProductRepository) DecrementStock(tx *gorm.DB, model string, quantity int) error {
	result := tx.Model(&models.Product{}).
		Where("model = ? AND quantity >= ?", model, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *ProductRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := r.DB.WithContext(ctx).Model(&models.Product{})

	switch filter.Grouping {
	case "category":
		query = query.Where("category = ?", filter.Category)
	case "model":
		query = query.Where("model = ?", filter.Model)
	}
	if filter.AvailableOnly {
		query = query.Where("quantity > 0")
	}

	var products []models.Product
	err := query.Order("model").Find(&products).Error
	return products, err
}

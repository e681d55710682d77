package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Kariqs/ezelectronics-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrCartExists = errors.New("customer already has a current cart")

// CartRepository stores carts and their lines. Methods taking a *gorm.DB run on
// whatever handle they get, so callers pass a transaction to group them.
type CartRepository struct {
	DB *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{DB: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("product_model")
}

// FindCurrentCart returns the unpaid cart of customer with its lines, or
// gorm.ErrRecordNotFound. With forUpdate the cart row stays locked until tx ends.
func (r *CartRepository) FindCurrentCart(tx *gorm.DB, customer string, forUpdate bool) (*models.Cart, error) {
	query := tx
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var cart models.Cart
	err := query.Preload("Items", orderedItems).
		Where("customer = ? AND paid = ?", customer, false).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// CreateCart inserts an empty unpaid cart. It returns ErrCartExists when the
// customer already has one.
func (r *CartRepository) CreateCart(tx *gorm.DB, customer string) (*models.Cart, error) {
	openFor := customer
	cart := models.Cart{Customer: customer, OpenFor: &openFor}
	if err := tx.Create(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCartExists
		}
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) FindLineItem(tx *gorm.DB, cartID uint, productModel string) (*models.CartItem, error) {
	var item models.CartItem
	err := tx.Where("cart_id = ? AND product_model = ?", cartID, productModel).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertLineItem adds delta to the line quantity. A missing line is inserted
// from the snapshot in line when delta is positive. A negative delta never
// takes the quantity below zero and a line reaching zero is deleted; when the
// line is missing or too small gorm.ErrRecordNotFound is returned.
func (r *CartRepository) UpsertLineItem(tx *gorm.DB, cartID uint, line models.CartItem, delta int) error {
	if delta == 0 {
		return nil
	}

	query := tx.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_model = ?", cartID, line.ProductModel)
	if delta < 0 {
		query = query.Where("quantity >= ?", -delta)
	}
	result := query.Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if delta < 0 {
			return gorm.ErrRecordNotFound
		}
		line.ID = 0
		line.CartID = cartID
		line.Quantity = delta
		return tx.Create(&line).Error
	}

	if delta < 0 {
		return tx.Where("cart_id = ? AND product_model = ? AND quantity <= 0", cartID, line.ProductModel).
			Delete(&models.CartItem{}).Error
	}
	return nil
}

func (r *CartRepository) CountLineItems(tx *gorm.DB, cartID uint) (int64, error) {
	var count int64
	err := tx.Model(&models.CartItem{}).Where("cart_id = ?", cartID).Count(&count).Error
	return count, err
}

func (r *CartRepository) AdjustCartTotal(tx *gorm.DB, cartID uint, delta float64) error {
	return tx.Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("total", gorm.Expr("total + ?", delta)).Error
}

func (r *CartRepository) SetCartTotal(tx *gorm.DB, cartID uint, total float64) error {
	return tx.Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("total", total).Error
}

// ClearLineItems removes every line of the cart and resets its total.
func (r *CartRepository) ClearLineItems(tx *gorm.DB, cartID uint) error {
	if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return r.SetCartTotal(tx, cartID, 0)
}

// SealCart marks an unpaid cart as paid. It returns gorm.ErrRecordNotFound if
// the cart was sealed concurrently.
func (r *CartRepository) SealCart(tx *gorm.DB, cartID uint, paymentDate time.Time) error {
	result := tx.Model(&models.Cart{}).
		Where("id = ? AND paid = ?", cartID, false).
		Updates(map[string]any{
			"paid":         true,
			"payment_date": datatypes.Date(paymentDate),
			"open_for":     nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CartRepository) ListPaidCarts(ctx context.Context, customer string) ([]models.Cart, error) {
	var carts []models.Cart
	err := r.DB.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("customer = ? AND paid = ?", customer, true).
		Order("id").
		Find(&carts).Error
	return carts, err
}

func (r *CartRepository) ListAllCarts(ctx context.Context) ([]models.Cart, error) {
	var carts []models.Cart
	err := r.DB.WithContext(ctx).
		Preload("Items", orderedItems).
		Order("id").
		Find(&carts).Error
	return carts, err
}

func (r *CartRepository) DeleteAllCarts(ctx context.Context) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return all.Delete(&models.Cart{}).Error
	})
}

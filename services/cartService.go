package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Kariqs/ezelectronics-api/cache"
	"github.com/Kariqs/ezelectronics-api/models"
	"github.com/Kariqs/ezelectronics-api/repository"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	cacheTimeout  = time.Second
	notifyTimeout = 30 * time.Second
)

// CartService implements the cart lifecycle on top of the cart store and the
// product catalog. Every mutation runs in one transaction that holds the
// current cart row locked, so requests of the same customer serialize.
type CartService struct {
	db       *gorm.DB
	carts    *repository.CartRepository
	products *repository.ProductRepository
	cache    cache.CartCache
	notifier CheckoutNotifier
	now      func() time.Time
	sfg      singleflight.Group
}

func NewCartService(db *gorm.DB, carts *repository.CartRepository, products *repository.ProductRepository, cartCache cache.CartCache, notifier CheckoutNotifier) *CartService {
	if cartCache == nil {
		cartCache = cache.NoopCache{}
	}
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &CartService{
		db:       db,
		carts:    carts,
		products: products,
		cache:    cartCache,
		notifier: notifier,
		now:      time.Now,
	}
}

// GetCart returns the current cart of user, or an empty unpaid cart when the
// customer has none yet. The empty view is never persisted.
func (s *CartService) GetCart(ctx context.Context, user models.User) (*models.CartView, error) {
	if !user.IsCustomer() {
		return nil, ErrWrongUserCart
	}

	v, err, _ := s.sfg.Do(user.Username, func() (any, error) {
		// shared by every waiter, so one caller going away must not cancel it
		ctx := context.WithoutCancel(ctx)

		cached, err := s.cache.Get(ctx, user.Username)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err)
		}

		// the generation is read before the cart so a concurrent mutation
		// makes the fill below a no-op
		generation, genErr := s.cache.Generation(ctx, user.Username)
		if genErr != nil {
			log.Printf("cache generation error: %v", genErr)
		}

		cart, err := s.carts.FindCurrentCart(s.db.WithContext(ctx), user.Username, false)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.EmptyCartView(user.Username), nil
		}
		if err != nil {
			return nil, fmt.Errorf("get cart: %w", err)
		}

		view := cart.View()
		if genErr == nil && len(view.Products) > 0 {
			setCtx, cancel := context.WithTimeout(ctx, cacheTimeout)
			defer cancel()
			err := s.cache.Set(setCtx, user.Username, generation, &view)
			if err != nil && !errors.Is(err, cache.ErrStaleGeneration) {
				log.Printf("cache set error: %v", err)
			}
		}
		return &view, nil
	})
	if err != nil {
		return nil, err
	}

	// singleflight hands the same pointer to every waiter
	view := *v.(*models.CartView)
	view.Products = append([]models.ProductInCart{}, view.Products...)
	return &view, nil
}

// AddToCart puts one unit of productModel in the current cart, creating the
// cart when needed. Stock is only checked for being non-zero here.
func (s *CartService) AddToCart(ctx context.Context, user models.User, productModel string) error {
	if !user.IsCustomer() {
		return ErrWrongUserCart
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.products.GetProductByModel(tx, productModel, false)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if product.Quantity <= 0 {
			return ErrEmptyProductStock
		}

		cart, err := s.openCart(tx, user.Username)
		if err != nil {
			return err
		}

		line := models.CartItem{
			ProductModel: product.ProductModel,
			Category:     product.Category,
			Price:        product.SellingPrice,
		}
		existing, err := s.carts.FindLineItem(tx, cart.ID, productModel)
		if err == nil {
			line = *existing
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find line item: %w", err)
		}

		if err := s.carts.UpsertLineItem(tx, cart.ID, line, 1); err != nil {
			return fmt.Errorf("upsert line item: %w", err)
		}
		if err := s.carts.AdjustCartTotal(tx, cart.ID, line.Price); err != nil {
			return fmt.Errorf("adjust cart total: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCache(user.Username)
	return nil
}

// RemoveProductFromCart takes one unit of productModel out of the current
// cart, dropping the line when it reaches zero.
func (s *CartService) RemoveProductFromCart(ctx context.Context, user models.User, productModel string) error {
	if !user.IsCustomer() {
		return ErrWrongUserCart
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.products.GetProductByModel(tx, productModel, false); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("get product: %w", err)
		}

		cart, err := s.carts.FindCurrentCart(tx, user.Username, true)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartNotFound
		}
		if err != nil {
			return fmt.Errorf("find cart: %w", err)
		}

		line, err := s.carts.FindLineItem(tx, cart.ID, productModel)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotInCart
		}
		if err != nil {
			return fmt.Errorf("find line item: %w", err)
		}

		if err := s.carts.UpsertLineItem(tx, cart.ID, *line, -1); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotInCart
			}
			return fmt.Errorf("upsert line item: %w", err)
		}

		remaining, err := s.carts.CountLineItems(tx, cart.ID)
		if err != nil {
			return fmt.Errorf("count line items: %w", err)
		}
		// an emptied cart is reset to exactly 0
		if remaining == 0 {
			err = s.carts.SetCartTotal(tx, cart.ID, 0)
		} else {
			err = s.carts.AdjustCartTotal(tx, cart.ID, -line.Price)
		}
		if err != nil {
			return fmt.Errorf("adjust cart total: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCache(user.Username)
	return nil
}

// CheckoutCart validates stock for every line of the current cart and only
// then decrements all of it and seals the cart, in a single transaction.
// A product with no stock at all is reported as ErrEmptyProductStock even
// when another line only falls short (ErrLowProductStock).
func (s *CartService) CheckoutCart(ctx context.Context, user models.User) error {
	if !user.IsCustomer() {
		return ErrWrongUserCart
	}

	var sealed *models.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := s.carts.FindCurrentCart(tx, user.Username, true)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartNotFound
		}
		if err != nil {
			return fmt.Errorf("find cart: %w", err)
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		// lines come ordered by model so product rows are locked in a stable order
		var stockErr error
		for _, item := range cart.Items {
			product, err := s.products.GetProductByModel(tx, item.ProductModel, true)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			if err != nil {
				return fmt.Errorf("get product: %w", err)
			}
			switch {
			case product.Quantity <= 0:
				stockErr = ErrEmptyProductStock
			case product.Quantity < item.Quantity && stockErr == nil:
				stockErr = ErrLowProductStock
			}
		}
		if stockErr != nil {
			return stockErr
		}

		for _, item := range cart.Items {
			if err := s.products.DecrementStock(tx, item.ProductModel, item.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return ErrLowProductStock
				}
				return fmt.Errorf("decrement stock: %w", err)
			}
		}

		paidAt := s.now()
		if err := s.carts.SealCart(tx, cart.ID, paidAt); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return fmt.Errorf("seal cart: %w", err)
		}

		paymentDate := datatypes.Date(paidAt)
		cart.Paid = true
		cart.PaymentDate = &paymentDate
		cart.OpenFor = nil
		sealed = cart
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCache(user.Username)
	go s.notifyCheckout(sealed.View())
	return nil
}

func (s *CartService) notifyCheckout(cart models.CartView) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := s.notifier.CartCheckedOut(ctx, cart); err != nil {
		log.Printf("checkout notification for %s failed: %v", cart.Customer, err)
	}
}

// GetCustomerCarts returns the paid carts of user, oldest first.
func (s *CartService) GetCustomerCarts(ctx context.Context, user models.User) ([]models.CartView, error) {
	if !user.IsCustomer() {
		return nil, ErrWrongUserCart
	}

	carts, err := s.carts.ListPaidCarts(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("list paid carts: %w", err)
	}
	return models.CartViews(carts), nil
}

// ClearCart empties the current cart but keeps it open.
func (s *CartService) ClearCart(ctx context.Context, user models.User) error {
	if !user.IsCustomer() {
		return ErrWrongUserCart
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := s.carts.FindCurrentCart(tx, user.Username, true)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartNotFound
		}
		if err != nil {
			return fmt.Errorf("find cart: %w", err)
		}
		if err := s.carts.ClearLineItems(tx, cart.ID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCache(user.Username)
	return nil
}

func (s *CartService) GetAllCarts(ctx context.Context) ([]models.CartView, error) {
	carts, err := s.carts.ListAllCarts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list carts: %w", err)
	}
	return models.CartViews(carts), nil
}

func (s *CartService) DeleteAllCarts(ctx context.Context) error {
	if err := s.carts.DeleteAllCarts(ctx); err != nil {
		return fmt.Errorf("delete carts: %w", err)
	}

	cacheCtx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()
	if err := s.cache.DeleteAll(cacheCtx); err != nil {
		log.Printf("cache delete all error: %v", err)
	}
	return nil
}

// openCart returns the locked current cart of customer, creating it first when
// there is none. A concurrent creator that wins the unique index is reused.
func (s *CartService) openCart(tx *gorm.DB, customer string) (*models.Cart, error) {
	cart, err := s.carts.FindCurrentCart(tx, customer, true)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find cart: %w", err)
	}

	if _, err := s.carts.CreateCart(tx, customer); err != nil && !errors.Is(err, repository.ErrCartExists) {
		return nil, fmt.Errorf("create cart: %w", err)
	}

	cart, err = s.carts.FindCurrentCart(tx, customer, true)
	if err != nil {
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) invalidateCache(customer string) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()
	if err := s.cache.Delete(ctx, customer); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}

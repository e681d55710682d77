package models

import (
	"time"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// Cart is one shopping session of a customer. Carts are hard deleted only, so
// no gorm.Model soft-delete column here.
type Cart struct {
	ID          uint            `gorm:"primaryKey"`
	Customer    string          `gorm:"size:191;index;not null"`
	Paid        bool            `gorm:"not null;default:false"`
	PaymentDate *datatypes.Date
	Total       float64 `gorm:"not null;default:0"`
	// OpenFor holds Customer while the cart is unpaid and is NULL once sealed.
	// Its unique index allows a single current cart per customer.
	OpenFor   *string    `gorm:"size:191;uniqueIndex"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem is a product line inside a cart. Category and Price are copied from
// the catalog when the line is first added.
type CartItem struct {
	ID           uint    `gorm:"primaryKey"`
	CartID       uint    `gorm:"not null;uniqueIndex:idx_cart_product"`
	ProductModel string  `gorm:"size:191;not null;uniqueIndex:idx_cart_product"`
	Quantity     int     `gorm:"not null"`
	Category     string  `gorm:"size:32"`
	Price        float64 `gorm:"not null"`
}

type ProductInCart struct {
	Model    string  `json:"model"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// CartView is the response shape of a cart.
type CartView struct {
	Customer    string          `json:"customer"`
	Paid        bool            `json:"paid"`
	PaymentDate string          `json:"paymentDate"`
	Total       float64         `json:"total"`
	Products    []ProductInCart `json:"products"`
}

func EmptyCartView(customer string) *CartView {
	return &CartView{
		Customer: customer,
		Products: []ProductInCart{},
	}
}

func (c *Cart) View() CartView {
	view := CartView{
		Customer: c.Customer,
		Paid:     c.Paid,
		Total:    c.Total,
		Products: make([]ProductInCart, 0, len(c.Items)),
	}
	if c.PaymentDate != nil {
		view.PaymentDate = time.Time(*c.PaymentDate).Format(dateLayout)
	}
	for _, item := range c.Items {
		view.Products = append(view.Products, ProductInCart{
			Model:    item.ProductModel,
			Quantity: item.Quantity,
			Category: item.Category,
			Price:    item.Price,
		})
	}
	return view
}

func CartViews(carts []Cart) []CartView {
	views := make([]CartView, 0, len(carts))
	for i := range carts {
		views = append(views, carts[i].View())
	}
	return views
}

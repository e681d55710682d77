package models

import (
	"errors"

	"gorm.io/gorm"
)

const (
	CategorySmartphone = "Smartphone"
	CategoryLaptop     = "Laptop"
	CategoryAppliance  = "Appliance"
)

func IsValidCategory(category string) bool {
	switch category {
	case CategorySmartphone, CategoryLaptop, CategoryAppliance:
		return true
	}
	return false
}

type Product struct {
	gorm.Model   `json:"-"`
	ProductModel string  `json:"model" gorm:"column:model;size:191;uniqueIndex;not null"`
	Category     string  `json:"category" gorm:"size:32;index;not null"`
	Quantity     int     `json:"quantity" gorm:"not null;default:0"`
	Details      string  `json:"details"`
	SellingPrice float64 `json:"sellingPrice" gorm:"not null"`
	ArrivalDate  string  `json:"arrivalDate" gorm:"size:10"`
}

// ProductFilter selects products by grouping: "" for all, "category" or "model".
type ProductFilter struct {
	Grouping      string
	Category      string
	Model         string
	AvailableOnly bool
}

var ErrInvalidFilter = errors.New("invalid product filter")

// Validate enforces that category is set only with grouping "category" and
// model only with grouping "model".
func (f ProductFilter) Validate() error {
	switch f.Grouping {
	case "":
		if f.Category != "" || f.Model != "" {
			return ErrInvalidFilter
		}
	case "category":
		if !IsValidCategory(f.Category) || f.Model != "" {
			return ErrInvalidFilter
		}
	case "model":
		if f.Model == "" || f.Category != "" {
			return ErrInvalidFilter
		}
	default:
		return ErrInvalidFilter
	}
	return nil
}

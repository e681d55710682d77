package initializers

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/Kariqs/ezelectronics-api/models"
	"gorm.io/gorm"
)

// SeedCatalog loads a JSON array of products from path. Products whose model
// already exists are left untouched.
func SeedCatalog(db *gorm.DB, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	created := 0
	for _, p := range products {
		if p.ProductModel == "" || !models.IsValidCategory(p.Category) {
			return fmt.Errorf("invalid seed product %q", p.ProductModel)
		}
		var count int64
		if err := db.Model(&models.Product{}).Where("model = ?", p.ProductModel).Count(&count).Error; err != nil {
			return fmt.Errorf("seed product %s: %w", p.ProductModel, err)
		}
		if count > 0 {
			continue
		}
		product := p
		if err := db.Create(&product).Error; err != nil {
			return fmt.Errorf("seed product %s: %w", p.ProductModel, err)
		}
		created++
	}

	log.Printf("Seeded %d of %d catalog products.", created, len(products))
	return nil
}

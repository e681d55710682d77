package initializers

import (
	"log"

	"github.com/Kariqs/ezelectronics-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{}, &models.Review{}); err != nil {
		return err
	}
	log.Println("Database synced successfully.")
	return nil
}

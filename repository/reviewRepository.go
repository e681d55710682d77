package repository

import (
	"context"
	"errors"

	"github.com/Kariqs/ezelectronics-api/models"
	"gorm.io/gorm"
)

var ErrReviewExists = errors.New("review already exists")

// ReviewRepository deletes are hard deletes: a user may review a product again
// after removing the previous review.
type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.DB.WithContext(ctx).Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReviewExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepository) ListByProduct(ctx context.Context, model string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.DB.WithContext(ctx).Where("product_model = ?", model).Order("id").Find(&reviews).Error
	return reviews, err
}

// Delete returns gorm.ErrRecordNotFound when user has no review of model.
func (r *ReviewRepository) Delete(ctx context.Context, model, user string) error {
	result := r.DB.WithContext(ctx).Unscoped().
		Where("product_model = ? AND username = ?", model, user).
		Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReviewRepository) DeleteByProduct(ctx context.Context, model string) error {
	return r.DB.WithContext(ctx).Unscoped().Where("product_model = ?", model).Delete(&models.Review{}).Error
}

func (r *ReviewRepository) DeleteAll(ctx context.Context) error {
	return r.DB.WithContext(ctx).Unscoped().
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Review{}).Error
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/ezelectronics-api/models"
	"github.com/Kariqs/ezelectronics-api/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReviewService struct {
	reviews  *repository.ReviewRepository
	products *repository.ProductRepository
	now      func() time.Time
}

func NewReviewService(reviews *repository.ReviewRepository, products *repository.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, now: time.Now}
}

func (s *ReviewService) AddReview(ctx context.Context, user models.User, productModel string, score int, comment string) error {
	if err := s.requireProduct(ctx, productModel); err != nil {
		return err
	}

	review := models.Review{
		ProductModel: productModel,
		User:         user.Username,
		Score:        score,
		Date:         datatypes.Date(s.now()),
		Comment:      comment,
	}
	if err := s.reviews.Create(ctx, &review); err != nil {
		if errors.Is(err, repository.ErrReviewExists) {
			return ErrExistingReview
		}
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (s *ReviewService) GetProductReviews(ctx context.Context, productModel string) ([]models.ReviewView, error) {
	if err := s.requireProduct(ctx, productModel); err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByProduct(ctx, productModel)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	views := make([]models.ReviewView, 0, len(reviews))
	for i := range reviews {
		views = append(views, reviews[i].View())
	}
	return views, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, user models.User, productModel string) error {
	if err := s.requireProduct(ctx, productModel); err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, productModel, user.Username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoReview
		}
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

func (s *ReviewService) DeleteReviewsOfProduct(ctx context.Context, productModel string) error {
	if err := s.requireProduct(ctx, productModel); err != nil {
		return err
	}
	if err := s.reviews.DeleteByProduct(ctx, productModel); err != nil {
		return fmt.Errorf("delete product reviews: %w", err)
	}
	return nil
}

func (s *ReviewService) DeleteAllReviews(ctx context.Context) error {
	if err := s.reviews.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete reviews: %w", err)
	}
	return nil
}

func (s *ReviewService) requireProduct(ctx context.Context, productModel string) error {
	exists, err := s.products.ProductExists(ctx, productModel)
	if err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return ErrProductNotFound
	}
	return nil
}

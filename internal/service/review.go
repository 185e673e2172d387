package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/avdeenko/aromashop/internal/models"
	"github.com/avdeenko/aromashop/internal/repo"
)

type ReviewService struct {
	Repo *repo.GormRepo
}

func (s *ReviewService) ListForProduct(ctx context.Context, productID uint, limit, offset int) ([]models.Review, int64, error) {
	return s.Repo.ListReviews(ctx, productID, limit, offset)
}

func (s *ReviewService) Create(ctx context.Context, review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	if _, err := s.Repo.GetProduct(ctx, review.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, review.ProductID)
		}
		return err
	}

	if err := s.Repo.CreateReview(ctx, review); err != nil {
		if repo.IsDuplicate(err) {
			return fmt.Errorf("%w: you already reviewed this product", ErrConflict)
		}
		return err
	}
	return nil
}

func (s *ReviewService) Delete(ctx context.Context, userID, reviewID uint, isAdmin bool) error {
	review, err := s.Repo.GetReview(ctx, reviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: review %d", ErrNotFound, reviewID)
	}
	if err != nil {
		return err
	}
	if review.UserID != userID && !isAdmin {
		return fmt.Errorf("%w: not your review", ErrForbidden)
	}
	return s.Repo.DeleteReview(ctx, reviewID)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/avdeenko/aromashop/internal/models"
	"github.com/avdeenko/aromashop/internal/repo"
)

// CartService is the cart aggregate: one cart per user, one line per
// variant. Stock checks here are advisory; checkout re-validates against
// live stock.
type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	return s.Repo.GetOrCreateCart(ctx, userID)
}

func (s *CartService) AddItem(ctx context.Context, userID, variantID uint, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	variant, err := s.Repo.GetVariant(ctx, variantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: variant %d", ErrNotFound, variantID)
	}
	if err != nil {
		return nil, err
	}

	product, err := s.Repo.GetProduct(ctx, variant.ProductID)
	if err != nil {
		return nil, err
	}
	if !variant.IsActive || !product.IsActive {
		return nil, fmt.Errorf("%w: %q is no longer available", ErrValidation, product.Name)
	}

	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The stock check covers what the cart already holds for this variant,
	// so repeated adds cannot build an unfulfillable line.
	existing, err := s.Repo.CartLineQuantity(ctx, cart.ID, variantID)
	if err != nil {
		return nil, err
	}
	if existing+quantity > variant.StockCount {
		return nil, fmt.Errorf("%w: insufficient stock for %q", ErrValidation, variant.Name)
	}

	if _, err := s.Repo.AddCartItem(ctx, cart.ID, variantID, quantity); err != nil {
		return nil, err
	}
	return s.Repo.GetOrCreateCart(ctx, userID)
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	variant, err := s.Repo.GetVariant(ctx, item.VariantID)
	if err != nil {
		return nil, err
	}
	if quantity > variant.StockCount {
		return nil, fmt.Errorf("%w: insufficient stock for %q", ErrValidation, variant.Name)
	}

	if err := s.Repo.UpdateCartItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}
	return s.Repo.GetOrCreateCart(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) (*models.Cart, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteCartItem(ctx, item.ID); err != nil {
		return nil, err
	}
	return s.Repo.GetOrCreateCart(ctx, userID)
}

func (s *CartService) Clear(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.ClearCart(ctx, cart.ID); err != nil {
		return nil, err
	}
	return s.Repo.GetOrCreateCart(ctx, userID)
}

func (s *CartService) ownedItem(ctx context.Context, userID, itemID uint) (*models.CartItem, error) {
	item, err := s.Repo.GetCartItemOwned(ctx, itemID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

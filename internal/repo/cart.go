package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/avdeenko/aromashop/internal/models"
)

// GetOrCreateCart returns the user's cart, creating an empty one on first
// access. The unique index on user_id resolves the create race: the loser
// re-reads.
func (r *GormRepo) GetOrCreateCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return r.loadCart(ctx, cart.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID}
	if err := r.DB.WithContext(ctx).Create(&cart).Error; err != nil {
		if IsDuplicate(err) {
			if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	return r.loadCart(ctx, cart.ID)
}

// loadCart hydrates items most-recently-touched first, each with its variant.
func (r *GormRepo) loadCart(ctx context.Context, cartID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.updated_at DESC")
		}).
		Preload("Items.Variant").
		First(&cart, cartID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem merges into an existing (cart, variant) line or inserts a new
// one. The guarded UPDATE keeps concurrent adds from duplicating the row.
func (r *GormRepo) AddCartItem(ctx context.Context, cartID, variantID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND variant_id = ?", cartID, variantID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("cart_id = ? AND variant_id = ?", cartID, variantID).First(&item).Error
		}

		item = models.CartItem{CartID: cartID, VariantID: variantID, Quantity: quantity}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetCartItemOwned loads the item only when its parent cart belongs to the
// user.
func (r *GormRepo) GetCartItemOwned(ctx context.Context, itemID, userID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) UpdateCartItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	return r.DB.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, itemID uint) error {
	return r.DB.WithContext(ctx).Delete(&models.CartItem{}, itemID).Error
}

func (r *GormRepo) ClearCart(ctx context.Context, cartID uint) error {
	return r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// CartLineQuantity returns the quantity already in the cart for a variant,
// zero when absent.
func (r *GormRepo) CartLineQuantity(ctx context.Context, cartID, variantID uint) (int, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return item.Quantity, nil
}

package repo

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/avdeenko/aromashop/internal/models"
)

// StockAdjustment pairs a variant with the quantity taken from (or returned
// to) its stock.
type StockAdjustment struct {
	VariantID uint
	Quantity  int
}

const createOrderAttempts = 3

// nextOrderNumber builds the ORD-{year}-{seq} candidate by counting existing
// orders with the year prefix. The orderNumber unique index plus the retry
// loop in CreateOrder close the count-then-format race between concurrent
// checkouts.
func nextOrderNumber(tx *gorm.DB, now time.Time) (string, error) {
	prefix := fmt.Sprintf("ORD-%d-", now.Year())

	var count int64
	if err := tx.Model(&models.Order{}).
		Where("order_number LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

// CreateOrder atomically persists the order with its items, decrements stock
// for every adjustment and clears the cart. Either all of that happens or
// none of it. A duplicate order number aborts the transaction and the whole
// thing is retried with a fresh count.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order, cartID uint, decrements []StockAdjustment) error {
	var lastErr error

	for attempt := 0; attempt < createOrderAttempts; attempt++ {
		order.ID = 0
		for i := range order.Items {
			order.Items[i].ID = 0
			order.Items[i].OrderID = 0
		}

		lastErr = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			number, err := nextOrderNumber(tx, time.Now())
			if err != nil {
				return err
			}
			order.OrderNumber = number

			if err := tx.Create(order).Error; err != nil {
				return err
			}

			for _, d := range decrements {
				res := tx.Model(&models.ProductVariant{}).
					Where("id = ? AND stock_count >= ?", d.VariantID, d.Quantity).
					Update("stock_count", gorm.Expr("stock_count - ?", d.Quantity))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return fmt.Errorf("%w: variant %d", ErrInsufficientStock, d.VariantID)
				}
			}

			return tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
		})

		if lastErr == nil || !IsDuplicate(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrdersByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Order, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := q.Preload("Items").
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, status models.OrderStatus, limit, offset int) ([]models.Order, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := q.Preload("Items").
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// TransitionOrder moves the order from its currently loaded status to next,
// stamping the matching timestamp and, on cancellation, restoring stock for
// every item, all inside one transaction. The status column update is
// guarded by the prior status, so a concurrent transition (and with it any
// double stock restoration) loses cleanly with ErrStatusConflict.
func (r *GormRepo) TransitionOrder(ctx context.Context, order *models.Order, next models.OrderStatus, trackingNumber, cancelReason string) (*models.Order, error) {
	now := time.Now().UTC()

	updates := map[string]any{"status": next}
	switch next {
	case models.StatusConfirmed:
		updates["paid_at"] = now
	case models.StatusShipped:
		updates["shipped_at"] = now
		if trackingNumber != "" {
			updates["tracking_number"] = trackingNumber
		}
	case models.StatusDelivered:
		updates["delivered_at"] = now
	case models.StatusCancelled:
		updates["cancelled_at"] = now
		if cancelReason != "" {
			updates["cancel_reason"] = cancelReason
		}
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStatusConflict
		}

		if next == models.StatusCancelled {
			for _, it := range order.Items {
				res := tx.Model(&models.ProductVariant{}).
					Where("id = ?", it.VariantID).
					Update("stock_count", gorm.Expr("stock_count + ?", it.Quantity))
				if res.Error != nil {
					return res.Error
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetOrder(ctx, order.ID)
}

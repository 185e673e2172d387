package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avdeenko/aromashop/internal/models"
)

func buildOrder(userID uint, v *models.ProductVariant, quantity int) *models.Order {
	subtotal := v.Price * int64(quantity)
	return &models.Order{
		UserID:      userID,
		Status:      models.StatusPending,
		Subtotal:    subtotal,
		TotalAmount: subtotal,
		ShippingAddress: models.AddressSnapshot{
			Recipient: "Ivan Petrov",
			City:      "Riga",
			Street:    "Brivibas iela",
		},
		Items: []models.OrderItem{{
			ProductID:   v.ProductID,
			VariantID:   v.ID,
			ProductName: "Whey Isolate",
			VariantName: v.Name,
			VariantSKU:  v.SKU,
			UnitPrice:   v.Price,
			Quantity:    quantity,
			Subtotal:    subtotal,
		}},
	}
}

func cartWithLine(t *testing.T, r *GormRepo, userID uint, v *models.ProductVariant, quantity int) *models.Cart {
	t.Helper()
	ctx := context.Background()
	cart, err := r.GetOrCreateCart(ctx, userID)
	require.NoError(t, err)
	_, err = r.AddCartItem(ctx, cart.ID, v.ID, quantity)
	require.NoError(t, err)
	return cart
}

func TestCreateOrderNumbering(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	v := seedVariant(t, r, "WI-900-V", 4500, 100)

	year := time.Now().Year()
	for i := 1; i <= 3; i++ {
		cart := cartWithLine(t, r, uint(i), v, 1)
		order := buildOrder(uint(i), v, 1)
		require.NoError(t, r.CreateOrder(ctx, order, cart.ID, []StockAdjustment{{VariantID: v.ID, Quantity: 1}}))
		require.Equal(t, fmt.Sprintf("ORD-%d-%04d", year, i), order.OrderNumber)
	}
}

func TestCreateOrderDecrementsStockAndClearsCart(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	v := seedVariant(t, r, "WI-900-C", 4500, 10)
	cart := cartWithLine(t, r, 1, v, 3)

	order := buildOrder(1, v, 3)
	require.NoError(t, r.CreateOrder(ctx, order, cart.ID, []StockAdjustment{{VariantID: v.ID, Quantity: 3}}))

	got, err := r.GetVariant(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, 7, got.StockCount)

	reloaded, err := r.GetOrCreateCart(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, reloaded.Items)

	persisted, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, persisted.Items, 1)
	require.Equal(t, v.SKU, persisted.Items[0].VariantSKU)
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	v := seedVariant(t, r, "WI-900-O", 4500, 2)
	cart := cartWithLine(t, r, 1, v, 2)

	order := buildOrder(1, v, 5)
	err := r.CreateOrder(ctx, order, cart.ID, []StockAdjustment{{VariantID: v.ID, Quantity: 5}})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing committed: stock intact, cart intact, no orders.
	got, err := r.GetVariant(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.StockCount)

	reloaded, err := r.GetOrCreateCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)

	var count int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestTransitionOrderStampsTimestamps(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	v := seedVariant(t, r, "WI-900-T", 4500, 10)
	cart := cartWithLine(t, r, 1, v, 1)

	order := buildOrder(1, v, 1)
	require.NoError(t, r.CreateOrder(ctx, order, cart.ID, []StockAdjustment{{VariantID: v.ID, Quantity: 1}}))

	confirmed, err := r.TransitionOrder(ctx, order, models.StatusConfirmed, "", "")
	require.NoError(t, err)
	require.Equal(t, models.StatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.PaidAt)

	shipped, err := r.TransitionOrder(ctx, confirmed, models.StatusShipped, "TRK-42", "")
	require.NoError(t, err)
	require.Equal(t, models.StatusShipped, shipped.Status)
	require.NotNil(t, shipped.ShippedAt)
	require.Equal(t, "TRK-42", shipped.TrackingNumber)

	delivered, err := r.TransitionOrder(ctx, shipped, models.StatusDelivered, "", "")
	require.NoError(t, err)
	require.NotNil(t, delivered.DeliveredAt)
}

func TestTransitionOrderCancelRestoresStock(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	v := seedVariant(t, r, "WI-900-R", 4500, 10)
	cart := cartWithLine(t, r, 1, v, 4)

	order := buildOrder(1, v, 4)
	require.NoError(t, r.CreateOrder(ctx, order, cart.ID, []StockAdjustment{{VariantID: v.ID, Quantity: 4}}))

	afterCheckout, err := r.GetVariant(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, 6, afterCheckout.StockCount)

	loaded, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)

	cancelled, err := r.TransitionOrder(ctx, loaded, models.StatusCancelled, "", "changed my mind")
	require.NoError(t, err)
	require.Equal(t, models.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	require.Equal(t, "changed my mind", cancelled.CancelReason)

	restored, err := r.GetVariant(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, 10, restored.StockCount)
}

func TestTransitionOrderGuardsConcurrentMoves(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	v := seedVariant(t, r, "WI-900-G", 4500, 10)
	cart := cartWithLine(t, r, 1, v, 2)

	order := buildOrder(1, v, 2)
	require.NoError(t, r.CreateOrder(ctx, order, cart.ID, []StockAdjustment{{VariantID: v.ID, Quantity: 2}}))

	stale, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)

	// First cancellation wins and restores stock.
	_, err = r.TransitionOrder(ctx, stale, models.StatusCancelled, "", "")
	require.NoError(t, err)

	// The second attempt still believes the order is PENDING; the guarded
	// update matches nothing, so stock is not restored twice.
	_, err = r.TransitionOrder(ctx, stale, models.StatusCancelled, "", "")
	require.ErrorIs(t, err, ErrStatusConflict)

	got, err := r.GetVariant(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, 10, got.StockCount)
}

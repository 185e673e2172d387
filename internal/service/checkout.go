package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/avdeenko/aromashop/internal/logging"
	"github.com/avdeenko/aromashop/internal/models"
	"github.com/avdeenko/aromashop/internal/mykafka"
	"github.com/avdeenko/aromashop/internal/notify"
	"github.com/avdeenko/aromashop/internal/pricing"
	"github.com/avdeenko/aromashop/internal/repo"
)

// ShippingResolver turns an optional shipping method code and the order
// subtotal into a shipping cost.
type ShippingResolver interface {
	ShippingCost(ctx context.Context, code string, subtotal int64) (int64, error)
}

// MethodTableResolver looks the code up in the shipping_methods table and
// falls back to the threshold rule when no code is given.
type MethodTableResolver struct {
	Repo     *repo.GormRepo
	Fallback pricing.ThresholdShipping
}

func (r *MethodTableResolver) ShippingCost(ctx context.Context, code string, subtotal int64) (int64, error) {
	if code == "" {
		return r.Fallback.Cost(subtotal), nil
	}
	m, err := r.Repo.GetShippingMethodByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: unknown shipping method %q", ErrValidation, code)
	}
	if err != nil {
		return 0, err
	}
	return m.Price, nil
}

type CheckoutRequest struct {
	ShippingAddressID  uint
	PaymentMethod      string
	ShippingMethodCode string
}

// CheckoutService converts a user's cart into an order.
type CheckoutService struct {
	Repo       *repo.GormRepo
	Shipping   ShippingResolver
	Tax        pricing.TaxPolicy
	Dispatcher *notify.Dispatcher
	Producer   *mykafka.Producer
}

// Checkout validates the cart against live stock and activity, snapshots the
// address and product state, prices every line, and atomically creates the
// order while decrementing stock and clearing the cart. The validation pass
// runs before any mutation; the guarded decrements inside the transaction
// re-check stock so concurrent checkouts cannot oversell.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint, req CheckoutRequest) (*models.Order, error) {
	addr, err := s.Repo.GetAddress(ctx, req.ShippingAddressID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: address %d", ErrNotFound, req.ShippingAddressID)
	}
	if err != nil {
		return nil, err
	}
	if addr.UserID != userID {
		return nil, fmt.Errorf("%w: address belongs to another user", ErrForbidden)
	}

	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	// Validate every line before touching anything; a single bad line
	// aborts the whole checkout with no partial effects.
	type pricedLine struct {
		item      models.CartItem
		product   *models.Product
		unitPrice int64
	}
	lines := make([]pricedLine, 0, len(cart.Items))

	var subtotal int64
	for _, it := range cart.Items {
		if it.Variant == nil {
			return nil, fmt.Errorf("%w: variant %d no longer exists", ErrValidation, it.VariantID)
		}
		v := it.Variant

		product, err := s.Repo.GetProduct(ctx, v.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product for variant %q no longer exists", ErrValidation, v.Name)
		}
		if err != nil {
			return nil, err
		}

		if !v.IsActive || !product.IsActive {
			return nil, fmt.Errorf("%w: %q is no longer available", ErrValidation, product.Name)
		}
		if v.StockCount < it.Quantity {
			return nil, fmt.Errorf("%w: insufficient stock for %q", ErrValidation, v.Name)
		}

		unit := pricing.DiscountedUnitPrice(v.Price, v.DiscountPercent)
		subtotal += unit * int64(it.Quantity)
		lines = append(lines, pricedLine{item: it, product: product, unitPrice: unit})
	}

	shippingCost, err := s.Shipping.ShippingCost(ctx, req.ShippingMethodCode, subtotal)
	if err != nil {
		return nil, err
	}
	// Lines whose product carries its own tax rate are taxed per line;
	// the rest of the subtotal falls under the order-wide policy.
	var taxAmount, defaultTaxable int64
	for _, l := range lines {
		lineSubtotal := l.unitPrice * int64(l.item.Quantity)
		if l.product.TaxRateBP > 0 {
			taxAmount += pricing.FlatRate{BasisPoints: l.product.TaxRateBP}.TaxAmount(lineSubtotal)
		} else {
			defaultTaxable += lineSubtotal
		}
	}
	taxAmount += s.Tax.TaxAmount(defaultTaxable)

	order := &models.Order{
		UserID:        userID,
		Status:        models.StatusPending,
		Subtotal:      subtotal,
		ShippingCost:  shippingCost,
		TaxAmount:     taxAmount,
		TotalAmount:   subtotal + shippingCost + taxAmount,
		PaymentMethod: req.PaymentMethod,
		ShippingAddress: models.AddressSnapshot{
			Recipient:  addr.Recipient,
			Phone:      addr.Phone,
			City:       addr.City,
			Street:     addr.Street,
			Building:   addr.Building,
			Apartment:  addr.Apartment,
			PostalCode: addr.PostalCode,
		},
	}

	decrements := make([]repo.StockAdjustment, 0, len(lines))
	for _, l := range lines {
		v := l.item.Variant
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   l.product.ID,
			VariantID:   v.ID,
			ProductName: l.product.Name,
			ProductSlug: l.product.Slug,
			VariantName: v.Name,
			VariantSKU:  v.SKU,
			Aroma:       v.Aroma,
			SizeGrams:   v.SizeGrams,
			Servings:    v.Servings,
			UnitPrice:   l.unitPrice,
			Quantity:    l.item.Quantity,
			Subtotal:    l.unitPrice * int64(l.item.Quantity),
		})
		decrements = append(decrements, repo.StockAdjustment{VariantID: v.ID, Quantity: l.item.Quantity})
	}

	if err := s.Repo.CreateOrder(ctx, order, cart.ID, decrements); err != nil {
		if errors.Is(err, repo.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: insufficient stock", ErrValidation)
		}
		if repo.IsDuplicate(err) {
			return nil, fmt.Errorf("%w: could not allocate order number", ErrConflict)
		}
		return nil, err
	}

	full, err := s.Repo.GetOrder(ctx, order.ID)
	if err != nil {
		// The order is committed; return what we have.
		full = order
	}

	s.afterCheckout(ctx, userID, full)
	return full, nil
}

// afterCheckout runs the post-commit side effects: confirmation email and
// order_created event. Both are best-effort and never fail the checkout.
func (s *CheckoutService) afterCheckout(ctx context.Context, userID uint, order *models.Order) {
	l := logging.FromContext(ctx)

	if email, err := s.Repo.GetUserEmail(ctx, userID); err == nil && email != "" {
		s.Dispatcher.OrderCreated(email, order)
	} else if err != nil {
		l.Warn("skip order confirmation email", "order_number", order.OrderNumber, "error", err)
	}

	if err := s.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(userID), map[string]any{
		"type":         "order_created",
		"userID":       userID,
		"orderID":      order.ID,
		"order_number": order.OrderNumber,
		"total":        order.TotalAmount,
	}); err != nil {
		l.Warn("kafka publish failed", "error", err)
	}
}

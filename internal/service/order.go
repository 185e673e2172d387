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
	"github.com/avdeenko/aromashop/internal/repo"
)

// OrderService owns the order status state machine and order queries.
type OrderService struct {
	Repo       *repo.GormRepo
	Dispatcher *notify.Dispatcher
	Producer   *mykafka.Producer
}

func (s *OrderService) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrderForUser is the owner-scoped read used by the customer endpoints.
func (s *OrderService) GetOrderForUser(ctx context.Context, orderID, userID uint) (*models.Order, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("%w: not your order", ErrForbidden)
	}
	return order, nil
}

func (s *OrderService) ListOrdersForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Order, int64, error) {
	return s.Repo.ListOrdersByUser(ctx, userID, limit, offset)
}

func (s *OrderService) ListOrders(ctx context.Context, status models.OrderStatus, limit, offset int) ([]models.Order, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.Repo.ListOrders(ctx, status, limit, offset)
}

// SetStatus applies one transition of the state machine. The legal-transition
// graph is enforced here, not left to callers: DELIVERED and CANCELLED are
// terminal, everything else follows PENDING -> CONFIRMED -> SHIPPED ->
// DELIVERED with CANCELLED reachable from the first two. Cancellation
// restores stock inside the same transaction as the status flip.
func (s *OrderService) SetStatus(ctx context.Context, orderID uint, next models.OrderStatus, trackingNumber, cancelReason string) (*models.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", ErrValidation, order.Status, next)
	}

	updated, err := s.Repo.TransitionOrder(ctx, order, next, trackingNumber, cancelReason)
	if errors.Is(err, repo.ErrStatusConflict) {
		return nil, fmt.Errorf("%w: order status changed concurrently", ErrConflict)
	}
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, updated)
	return updated, nil
}

// Cancel is the owner-facing wrapper: ownership check, cancellable-status
// check, then the CANCELLED transition.
func (s *OrderService) Cancel(ctx context.Context, orderID, userID uint, reason string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("%w: not your order", ErrForbidden)
	}
	if !order.Status.Cancellable() {
		return nil, fmt.Errorf("%w: cannot cancel order in status %s", ErrValidation, order.Status)
	}

	return s.SetStatus(ctx, orderID, models.StatusCancelled, "", reason)
}

func (s *OrderService) afterTransition(ctx context.Context, order *models.Order) {
	l := logging.FromContext(ctx)

	if email, err := s.Repo.GetUserEmail(ctx, order.UserID); err == nil && email != "" {
		s.Dispatcher.OrderStatusChanged(email, order)
	} else if err != nil {
		l.Warn("skip status email", "order_number", order.OrderNumber, "error", err)
	}

	if err := s.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(order.UserID), map[string]any{
		"type":         "order_status_changed",
		"userID":       order.UserID,
		"orderID":      order.ID,
		"order_number": order.OrderNumber,
		"status":       order.Status,
	}); err != nil {
		l.Warn("kafka publish failed", "error", err)
	}
}

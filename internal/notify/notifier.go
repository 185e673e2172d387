package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/avdeenko/aromashop/internal/models"
)

// Notifier delivers customer-facing notifications. Implementations must not
// be relied on for correctness: the order workflow treats every send as
// best-effort.
type Notifier interface {
	OrderCreated(ctx context.Context, email string, order *models.Order) error
	OrderStatusChanged(ctx context.Context, email string, order *models.Order) error
}

// Dispatcher runs notification sends on a background goroutine so the
// request that triggered them never waits on SMTP. Errors are logged and
// dropped; nothing is retried within the request lifecycle.
type Dispatcher struct {
	Notifier Notifier
	Log      *slog.Logger
	Timeout  time.Duration
}

func NewDispatcher(n Notifier, log *slog.Logger) *Dispatcher {
	return &Dispatcher{Notifier: n, Log: log, Timeout: 15 * time.Second}
}

func (d *Dispatcher) OrderCreated(email string, order *models.Order) {
	d.dispatch("order_created", order.OrderNumber, func(ctx context.Context) error {
		return d.Notifier.OrderCreated(ctx, email, order)
	})
}

func (d *Dispatcher) OrderStatusChanged(email string, order *models.Order) {
	d.dispatch("order_status_changed", order.OrderNumber, func(ctx context.Context) error {
		return d.Notifier.OrderStatusChanged(ctx, email, order)
	})
}

func (d *Dispatcher) dispatch(kind, orderNumber string, send func(context.Context) error) {
	if d == nil || d.Notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout())
		defer cancel()
		if err := send(ctx); err != nil {
			d.log().Error("notification send failed",
				"kind", kind, "order_number", orderNumber, "error", err)
			return
		}
		d.log().Info("notification sent", "kind", kind, "order_number", orderNumber)
	}()
}

func (d *Dispatcher) timeout() time.Duration {
	if d.Timeout > 0 {
		return d.Timeout
	}
	return 15 * time.Second
}

func (d *Dispatcher) log() *slog.Logger {
	if d.Log != nil {
		return d.Log
	}
	return slog.Default()
}

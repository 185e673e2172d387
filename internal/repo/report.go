package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/avdeenko/aromashop/internal/models"
)

type StatusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

type TopVariant struct {
	VariantID   uint   `json:"variant_id"`
	ProductName string `json:"product_name"`
	VariantName string `json:"variant_name"`
	Quantity    int64  `json:"quantity"`
	Revenue     int64  `json:"revenue"`
}

type DailyCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type SalesReport struct {
	ByStatus   []StatusCount `json:"by_status"`
	Revenue    int64         `json:"revenue"`
	TopItems   []TopVariant  `json:"top_items"`
	PerDay     []DailyCount  `json:"per_day"`
	TotalCount int64         `json:"total_count"`
}

// SalesReportBetween aggregates orders created in [from, to). Revenue counts
// every non-cancelled order.
func (r *GormRepo) SalesReportBetween(ctx context.Context, from, to time.Time) (*SalesReport, error) {
	report := &SalesReport{}
	orders := func() *gorm.DB {
		return r.DB.WithContext(ctx).Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", from, to)
	}

	if err := orders().Count(&report.TotalCount).Error; err != nil {
		return nil, err
	}

	if err := orders().
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&report.ByStatus).Error; err != nil {
		return nil, err
	}

	if err := orders().
		Where("status <> ?", models.StatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&report.Revenue).Error; err != nil {
		return nil, err
	}

	if err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at < ? AND orders.status <> ?",
			from, to, models.StatusCancelled).
		Select("order_items.variant_id, MAX(order_items.product_name) AS product_name, MAX(order_items.variant_name) AS variant_name, SUM(order_items.quantity) AS quantity, SUM(order_items.subtotal) AS revenue").
		Group("order_items.variant_id").
		Order("quantity DESC").
		Limit(10).
		Scan(&report.TopItems).Error; err != nil {
		return nil, err
	}

	if err := orders().
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&report.PerDay).Error; err != nil {
		return nil, err
	}

	return report, nil
}

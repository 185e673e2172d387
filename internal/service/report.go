package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avdeenko/aromashop/internal/repo"
)

type ReportService struct {
	Repo *repo.GormRepo
}

// Sales builds the admin dashboard aggregates for [from, to). A zero `to`
// means now; a zero `from` means 30 days before `to`.
func (s *ReportService) Sales(ctx context.Context, from, to time.Time) (*repo.SalesReport, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must precede to", ErrValidation)
	}
	return s.Repo.SalesReportBetween(ctx, from, to)
}

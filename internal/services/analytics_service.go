package services

import (
	"context"
	"fmt"
	"time"

	"pharma-backend/internal/models"
	"pharma-backend/internal/timeutil"
)

// AnalyticsStore is the slice of the analytics repository the dashboard
// service needs.
type AnalyticsStore interface {
	TopSelling(ctx context.Context, limit int) ([]models.TopSellingMedicine, error)
	SalesByDaySince(ctx context.Context, since time.Time) (map[string]float64, error)
}

type AnalyticsService struct {
	Store AnalyticsStore
}

func NewAnalyticsService(store AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{Store: store}
}

// TopSelling returns the best selling medicines by units sold. A pharmacy
// with no sales gets an empty list, never placeholder rows.
func (s *AnalyticsService) TopSelling(ctx context.Context, limit int) ([]models.TopSellingMedicine, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.Store.TopSelling(ctx, limit)
}

// DailySales returns a dense series of the last `days` IST calendar days,
// oldest first. Days without a single invoice appear with zero sales so
// chart axes stay continuous.
func (s *AnalyticsService) DailySales(ctx context.Context, days int) ([]models.DailySale, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", ErrInvalidInput)
	}

	today := timeutil.StartOfDay(timeutil.Now())
	since := today.AddDate(0, 0, -(days - 1))

	totals, err := s.Store.SalesByDaySince(ctx, since)
	if err != nil {
		return nil, err
	}

	series := make([]models.DailySale, 0, days)
	for d := since; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(timeutil.DateLayout)
		series = append(series, models.DailySale{
			Date:  key,
			Sales: totals[key],
		})
	}
	return series, nil
}

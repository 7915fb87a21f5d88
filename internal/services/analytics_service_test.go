package services

import (
	"context"
	"testing"
	"time"

	"pharma-backend/internal/models"
	"pharma-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyticsStore struct {
	top   []models.TopSellingMedicine
	sales map[string]float64
	since time.Time
}

func (f *fakeAnalyticsStore) TopSelling(ctx context.Context, limit int) ([]models.TopSellingMedicine, error) {
	if len(f.top) > limit {
		return f.top[:limit], nil
	}
	return f.top, nil
}

func (f *fakeAnalyticsStore) SalesByDaySince(ctx context.Context, since time.Time) (map[string]float64, error) {
	f.since = since
	return f.sales, nil
}

func TestDailySalesGapFills(t *testing.T) {
	today := timeutil.StartOfDay(timeutil.Now())
	store := &fakeAnalyticsStore{sales: map[string]float64{
		today.Format(timeutil.DateLayout):                  120.50,
		today.AddDate(0, 0, -3).Format(timeutil.DateLayout): 59,
	}}
	svc := NewAnalyticsService(store)

	series, err := svc.DailySales(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, series, 7)

	// Oldest day first, today last
	assert.Equal(t, today.AddDate(0, 0, -6).Format(timeutil.DateLayout), series[0].Date)
	assert.Equal(t, today.Format(timeutil.DateLayout), series[6].Date)

	// Days without invoices show zero, not gaps
	assert.Equal(t, 0.0, series[0].Sales)
	assert.Equal(t, 59.0, series[3].Sales)
	assert.Equal(t, 120.50, series[6].Sales)

	// Query started at the right boundary
	assert.True(t, store.since.Equal(today.AddDate(0, 0, -6)))
}

func TestDailySalesRejectsNonPositiveDays(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsStore{sales: map[string]float64{}})

	_, err := svc.DailySales(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.DailySales(context.Background(), -7)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTopSellingEmptyWhenNoSales(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsStore{top: []models.TopSellingMedicine{}})

	top, err := svc.TopSelling(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, top)
	assert.Empty(t, top)
}

func TestTopSellingDefaultsLimit(t *testing.T) {
	store := &fakeAnalyticsStore{top: []models.TopSellingMedicine{
		{MedicineID: 1, Name: "Paracetamol 500mg", SoldUnits: 40},
		{MedicineID: 2, Name: "Azithromycin 500mg", SoldUnits: 12},
	}}
	svc := NewAnalyticsService(store)

	top, err := svc.TopSelling(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, top, 2)
	assert.Equal(t, "Paracetamol 500mg", top[0].Name)
}

package services

import (
	"context"
	"testing"
	"time"

	"pharma-backend/internal/models"
	"pharma-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	medicines map[int]*models.Medicine
	nextID    int
	cutoff    time.Time
}

func (f *fakeCatalog) Create(ctx context.Context, m *models.Medicine) error {
	f.nextID++
	m.ID = f.nextID
	m.CreatedAt = time.Now()
	f.medicines[m.ID] = m
	return nil
}

func (f *fakeCatalog) Get(ctx context.Context, id int) (*models.Medicine, error) {
	m, ok := f.medicines[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *m
	return &cp, nil
}

func (f *fakeCatalog) List(ctx context.Context) ([]*models.Medicine, error) {
	var out []*models.Medicine
	for _, m := range f.medicines {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeCatalog) ListLowStock(ctx context.Context) ([]*models.Medicine, error) {
	var out []*models.Medicine
	for _, m := range f.medicines {
		if m.Stock <= m.LowStockThreshold {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]*models.Medicine, error) {
	f.cutoff = cutoff
	var out []*models.Medicine
	for _, m := range f.medicines {
		if !m.ExpiryDate.After(cutoff) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeCatalog) SetStock(ctx context.Context, id, newStock int) (*models.Medicine, error) {
	m, ok := f.medicines[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	m.Stock = newStock
	cp := *m
	return &cp, nil
}

type fakeAdjustmentLog struct {
	entries []*models.StockAdjustment
}

func (f *fakeAdjustmentLog) Create(ctx context.Context, a *models.StockAdjustment) error {
	a.ID = len(f.entries) + 1
	a.CreatedAt = time.Now()
	f.entries = append(f.entries, a)
	return nil
}

func (f *fakeAdjustmentLog) List(ctx context.Context) ([]*models.StockAdjustment, error) {
	return f.entries, nil
}

func newMedicineFixture() (*MedicineService, *fakeCatalog, *fakeAdjustmentLog) {
	catalog := &fakeCatalog{medicines: make(map[int]*models.Medicine)}
	adjustments := &fakeAdjustmentLog{}
	return NewMedicineService(catalog, adjustments), catalog, adjustments
}

func TestCreateMedicineValidation(t *testing.T) {
	svc, _, _ := newMedicineFixture()

	cases := []models.CreateMedicineRequest{
		{Name: "", MRP: 10, ExpiryDate: "2027-01-01"},
		{Name: "X", MRP: 0, ExpiryDate: "2027-01-01"},
		{Name: "X", MRP: 10, Stock: -1, ExpiryDate: "2027-01-01"},
		{Name: "X", MRP: 10, GSTRate: -5, ExpiryDate: "2027-01-01"},
		{Name: "X", MRP: 10, ExpiryDate: "01/01/2027"},
	}
	for _, req := range cases {
		_, err := svc.CreateMedicine(context.Background(), &req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestCreateMedicineParsesExpiry(t *testing.T) {
	svc, _, _ := newMedicineFixture()

	m, err := svc.CreateMedicine(context.Background(), &models.CreateMedicineRequest{
		Name:       "Paracetamol 500mg",
		MRP:        25,
		Stock:      100,
		GSTRate:    18,
		ExpiryDate: "2027-12-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 2027, m.ExpiryDate.Year())
	assert.Equal(t, time.December, m.ExpiryDate.Month())
	assert.Equal(t, 31, m.ExpiryDate.Day())
}

func TestLowStockBoundary(t *testing.T) {
	svc, catalog, _ := newMedicineFixture()
	catalog.medicines[1] = &models.Medicine{ID: 1, Name: "At threshold", Stock: 10, LowStockThreshold: 10}
	catalog.medicines[2] = &models.Medicine{ID: 2, Name: "Above threshold", Stock: 11, LowStockThreshold: 10}
	catalog.medicines[3] = &models.Medicine{ID: 3, Name: "Below threshold", Stock: 2, LowStockThreshold: 10}

	low, err := svc.LowStock(context.Background())
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, m := range low {
		names[m.Name] = true
	}
	assert.True(t, names["At threshold"])
	assert.True(t, names["Below threshold"])
	assert.False(t, names["Above threshold"])
}

func TestExpiringWindow(t *testing.T) {
	svc, catalog, _ := newMedicineFixture()
	now := timeutil.Now()
	catalog.medicines[1] = &models.Medicine{ID: 1, Name: "Expires in 29 days", ExpiryDate: now.AddDate(0, 0, 29)}
	catalog.medicines[2] = &models.Medicine{ID: 2, Name: "Expires in 31 days", ExpiryDate: now.AddDate(0, 0, 31)}
	catalog.medicines[3] = &models.Medicine{ID: 3, Name: "Expired yesterday", ExpiryDate: now.AddDate(0, 0, -1)}

	expiring, err := svc.Expiring(context.Background(), 30)
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, m := range expiring {
		names[m.Name] = true
	}
	assert.True(t, names["Expires in 29 days"])
	assert.False(t, names["Expires in 31 days"])
	// Already-expired stock stays on the report
	assert.True(t, names["Expired yesterday"])

	_, err = svc.Expiring(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetStockRecordsAdjustment(t *testing.T) {
	svc, catalog, adjustments := newMedicineFixture()
	catalog.medicines[1] = &models.Medicine{ID: 1, Name: "Paracetamol 500mg", Stock: 235}

	newStock := 200
	updated, err := svc.SetStock(context.Background(), 1, &models.SetStockRequest{
		Stock:  &newStock,
		Reason: "damaged strip write-off",
	}, 7)
	require.NoError(t, err)
	assert.Equal(t, 200, updated.Stock)

	require.Len(t, adjustments.entries, 1)
	adj := adjustments.entries[0]
	assert.Equal(t, 1, adj.MedicineID)
	assert.Equal(t, 235, adj.OldStock)
	assert.Equal(t, 200, adj.NewStock)
	assert.Equal(t, "damaged strip write-off", adj.Reason)
	assert.Equal(t, 7, adj.UserID)
}

func TestSetStockValidation(t *testing.T) {
	svc, catalog, _ := newMedicineFixture()
	catalog.medicines[1] = &models.Medicine{ID: 1, Stock: 10}

	_, err := svc.SetStock(context.Background(), 1, &models.SetStockRequest{}, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	negative := -5
	_, err = svc.SetStock(context.Background(), 1, &models.SetStockRequest{Stock: &negative}, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	ten := 10
	_, err = svc.SetStock(context.Background(), 99, &models.SetStockRequest{Stock: &ten}, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

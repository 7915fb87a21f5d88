package services

import (
	"context"
	"fmt"
	"time"

	"pharma-backend/internal/models"
	"pharma-backend/internal/timeutil"
)

// MedicineCatalog is the slice of the medicine repository the inventory
// service needs.
type MedicineCatalog interface {
	Create(ctx context.Context, m *models.Medicine) error
	Get(ctx context.Context, id int) (*models.Medicine, error)
	List(ctx context.Context) ([]*models.Medicine, error)
	ListLowStock(ctx context.Context) ([]*models.Medicine, error)
	ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]*models.Medicine, error)
	SetStock(ctx context.Context, id, newStock int) (*models.Medicine, error)
}

// AdjustmentLog records manual stock corrections
type AdjustmentLog interface {
	Create(ctx context.Context, a *models.StockAdjustment) error
	List(ctx context.Context) ([]*models.StockAdjustment, error)
}

type MedicineService struct {
	Catalog     MedicineCatalog
	Adjustments AdjustmentLog
}

func NewMedicineService(catalog MedicineCatalog, adjustments AdjustmentLog) *MedicineService {
	return &MedicineService{
		Catalog:     catalog,
		Adjustments: adjustments,
	}
}

func (s *MedicineService) CreateMedicine(ctx context.Context, req *models.CreateMedicineRequest) (*models.Medicine, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.MRP <= 0 {
		return nil, fmt.Errorf("%w: mrp must be positive", ErrInvalidInput)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrInvalidInput)
	}
	if req.GSTRate < 0 {
		return nil, fmt.Errorf("%w: gst rate cannot be negative", ErrInvalidInput)
	}

	expiry, err := time.ParseInLocation(timeutil.DateLayout, req.ExpiryDate, timeutil.IST)
	if err != nil {
		return nil, fmt.Errorf("%w: expiry_date must be yyyy-mm-dd", ErrInvalidInput)
	}

	m := &models.Medicine{
		Name:              req.Name,
		Description:       req.Description,
		CategoryID:        req.CategoryID,
		Form:              req.Form,
		BatchNumber:       req.BatchNumber,
		ExpiryDate:        expiry,
		MRP:               req.MRP,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		GSTRate:           req.GSTRate,
	}
	if err := s.Catalog.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MedicineService) GetMedicine(ctx context.Context, id int) (*models.Medicine, error) {
	m, err := s.Catalog.Get(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "medicine %d", id)
	}
	return m, nil
}

func (s *MedicineService) ListMedicines(ctx context.Context) ([]*models.Medicine, error) {
	return s.Catalog.List(ctx)
}

// LowStock returns medicines at or below their configured threshold
func (s *MedicineService) LowStock(ctx context.Context) ([]*models.Medicine, error) {
	return s.Catalog.ListLowStock(ctx)
}

// Expiring returns medicines whose expiry falls within the next `days` IST
// calendar days. Already-expired stock is included so it never drops off the
// report.
func (s *MedicineService) Expiring(ctx context.Context, days int) ([]*models.Medicine, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", ErrInvalidInput)
	}
	cutoff := timeutil.EndOfDay(timeutil.Now().AddDate(0, 0, days))
	return s.Catalog.ListExpiringBefore(ctx, cutoff)
}

// SetStock applies a manual stock correction and records it in the audit
// trail with the old and new values.
func (s *MedicineService) SetStock(ctx context.Context, id int, req *models.SetStockRequest, userID int) (*models.Medicine, error) {
	if req.Stock == nil {
		return nil, fmt.Errorf("%w: stock is required", ErrInvalidInput)
	}
	if *req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrInvalidInput)
	}

	current, err := s.Catalog.Get(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "medicine %d", id)
	}

	updated, err := s.Catalog.SetStock(ctx, id, *req.Stock)
	if err != nil {
		return nil, err
	}

	adj := &models.StockAdjustment{
		MedicineID: id,
		OldStock:   current.Stock,
		NewStock:   *req.Stock,
		Reason:     req.Reason,
		UserID:     userID,
	}
	if err := s.Adjustments.Create(ctx, adj); err != nil {
		return nil, err
	}
	return updated, nil
}

// ListAdjustments returns the manual stock correction audit trail
func (s *MedicineService) ListAdjustments(ctx context.Context) ([]*models.StockAdjustment, error) {
	return s.Adjustments.List(ctx)
}

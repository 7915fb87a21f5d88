package repositories

import (
	"context"

	"pharma-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StockAdjustmentRepository struct {
	DB *pgxpool.Pool
}

func NewStockAdjustmentRepository(db *pgxpool.Pool) *StockAdjustmentRepository {
	return &StockAdjustmentRepository{DB: db}
}

func (r *StockAdjustmentRepository) Create(ctx context.Context, a *models.StockAdjustment) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO stock_adjustments(medicine_id, old_stock, new_stock, reason, user_id)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		a.MedicineID, a.OldStock, a.NewStock, a.Reason, a.UserID,
	).Scan(&a.ID, &a.CreatedAt)
}

// List returns all manual stock corrections, newest first
func (r *StockAdjustmentRepository) List(ctx context.Context) ([]*models.StockAdjustment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT a.id, a.medicine_id, m.name, a.old_stock, a.new_stock,
		        COALESCE(a.reason, ''), a.user_id, a.created_at
		 FROM stock_adjustments a
		 JOIN medicines m ON a.medicine_id = m.id
		 ORDER BY a.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var adjustments []*models.StockAdjustment
	for rows.Next() {
		var a models.StockAdjustment
		err := rows.Scan(&a.ID, &a.MedicineID, &a.MedicineName, &a.OldStock,
			&a.NewStock, &a.Reason, &a.UserID, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, &a)
	}
	return adjustments, rows.Err()
}

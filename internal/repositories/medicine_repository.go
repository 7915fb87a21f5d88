package repositories

import (
	"context"
	"time"

	"pharma-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

const medicineColumns = `id, name, description, category_id, form, batch_number,
	expiry_date, mrp, stock, low_stock_threshold, gst_rate, created_at`

type MedicineRepository struct {
	DB *pgxpool.Pool
}

func NewMedicineRepository(db *pgxpool.Pool) *MedicineRepository {
	return &MedicineRepository{DB: db}
}

func scanMedicine(row interface{ Scan(...any) error }) (*models.Medicine, error) {
	var m models.Medicine
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.CategoryID, &m.Form,
		&m.BatchNumber, &m.ExpiryDate, &m.MRP, &m.Stock, &m.LowStockThreshold,
		&m.GSTRate, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MedicineRepository) Create(ctx context.Context, m *models.Medicine) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO medicines(name, description, category_id, form, batch_number,
		    expiry_date, mrp, stock, low_stock_threshold, gst_rate)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
         RETURNING id, created_at`,
		m.Name, m.Description, m.CategoryID, m.Form, m.BatchNumber,
		m.ExpiryDate, m.MRP, m.Stock, m.LowStockThreshold, m.GSTRate,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *MedicineRepository) Get(ctx context.Context, id int) (*models.Medicine, error) {
	return scanMedicine(r.DB.QueryRow(ctx,
		`SELECT `+medicineColumns+` FROM medicines WHERE id=$1`, id))
}

func (r *MedicineRepository) List(ctx context.Context) ([]*models.Medicine, error) {
	return r.queryMedicines(ctx, `SELECT `+medicineColumns+` FROM medicines ORDER BY id`)
}

// ListLowStock returns medicines at or below their configured threshold
func (r *MedicineRepository) ListLowStock(ctx context.Context) ([]*models.Medicine, error) {
	return r.queryMedicines(ctx,
		`SELECT `+medicineColumns+` FROM medicines WHERE stock <= low_stock_threshold ORDER BY id`)
}

// ListExpiringBefore returns medicines whose expiry date falls on or before the
// cutoff, including already-expired stock.
func (r *MedicineRepository) ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]*models.Medicine, error) {
	return r.queryMedicines(ctx,
		`SELECT `+medicineColumns+` FROM medicines WHERE expiry_date <= $1 ORDER BY expiry_date`, cutoff)
}

// SetStock overwrites a medicine's stock and returns the updated row
func (r *MedicineRepository) SetStock(ctx context.Context, id, newStock int) (*models.Medicine, error) {
	return scanMedicine(r.DB.QueryRow(ctx,
		`UPDATE medicines SET stock=$1 WHERE id=$2 RETURNING `+medicineColumns, newStock, id))
}

func (r *MedicineRepository) queryMedicines(ctx context.Context, sql string, args ...any) ([]*models.Medicine, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var medicines []*models.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		medicines = append(medicines, m)
	}
	return medicines, rows.Err()
}

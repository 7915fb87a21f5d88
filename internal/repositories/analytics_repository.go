package repositories

import (
	"context"
	"time"

	"pharma-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsRepository answers the aggregate queries behind the dashboard and
// GST reporting. Read-only.
type AnalyticsRepository struct {
	DB *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// TopSelling aggregates invoice items per medicine, ordered by units sold.
// Returns an empty slice when no sales exist yet.
func (r *AnalyticsRepository) TopSelling(ctx context.Context, limit int) ([]models.TopSellingMedicine, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT m.id, m.name, c.name,
		        SUM(ii.quantity)::int AS sold_units,
		        SUM(ii.total_price)::float8 AS revenue
		 FROM invoice_items ii
		 JOIN medicines m ON ii.medicine_id = m.id
		 JOIN categories c ON m.category_id = c.id
		 GROUP BY m.id, m.name, c.name
		 ORDER BY sold_units DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	top := []models.TopSellingMedicine{}
	for rows.Next() {
		var t models.TopSellingMedicine
		err := rows.Scan(&t.MedicineID, &t.Name, &t.Category, &t.SoldUnits, &t.Revenue)
		if err != nil {
			return nil, err
		}
		top = append(top, t)
	}
	return top, rows.Err()
}

// SalesByDaySince sums invoice totals per IST calendar day from the given
// start. Days with no invoices are absent; the service layer gap-fills.
func (r *AnalyticsRepository) SalesByDaySince(ctx context.Context, since time.Time) (map[string]float64, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT to_char(created_at AT TIME ZONE 'Asia/Kolkata', 'YYYY-MM-DD') AS day,
		        SUM(total)::float8
		 FROM invoices
		 WHERE created_at >= $1
		 GROUP BY day`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make(map[string]float64)
	for rows.Next() {
		var day string
		var total float64
		if err := rows.Scan(&day, &total); err != nil {
			return nil, err
		}
		sales[day] = total
	}
	return sales, rows.Err()
}

// GSTSummaryBetween aggregates taxable value and collected GST per day for
// the GSTR-style summary report, oldest day first.
func (r *AnalyticsRepository) GSTSummaryBetween(ctx context.Context, from, to time.Time) ([]models.GSTDaySummary, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT to_char(created_at AT TIME ZONE 'Asia/Kolkata', 'YYYY-MM-DD') AS day,
		        COUNT(*)::int,
		        SUM(subtotal)::float8,
		        SUM(gst_amount)::float8,
		        SUM(total)::float8
		 FROM invoices
		 WHERE created_at >= $1 AND created_at <= $2
		 GROUP BY day
		 ORDER BY day`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []models.GSTDaySummary{}
	for rows.Next() {
		var s models.GSTDaySummary
		err := rows.Scan(&s.Date, &s.InvoiceCount, &s.TaxableValue, &s.GSTAmount, &s.Total)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

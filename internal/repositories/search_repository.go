package repositories

import (
	"context"

	"pharma-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SearchRepository backs the global search box with ILIKE lookups across
// medicines, customers and doctors.
type SearchRepository struct {
	DB *pgxpool.Pool
}

func NewSearchRepository(db *pgxpool.Pool) *SearchRepository {
	return &SearchRepository{DB: db}
}

func (r *SearchRepository) Search(ctx context.Context, query string, limit int) (*models.SearchResult, error) {
	pattern := "%" + query + "%"
	result := &models.SearchResult{
		Medicines: []*models.Medicine{},
		Customers: []*models.Customer{},
		Doctors:   []*models.Doctor{},
	}

	rows, err := r.DB.Query(ctx,
		`SELECT `+medicineColumns+`
		 FROM medicines
		 WHERE name ILIKE $1 OR description ILIKE $1
		 ORDER BY name
		 LIMIT $2`, pattern, limit)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		result.Medicines = append(result.Medicines, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.DB.Query(ctx,
		`SELECT id, name, phone, email, address, created_at
		 FROM customers
		 WHERE name ILIKE $1 OR phone ILIKE $1 OR email ILIKE $1
		 ORDER BY name
		 LIMIT $2`, pattern, limit)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var c models.Customer
		err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt)
		if err != nil {
			rows.Close()
			return nil, err
		}
		result.Customers = append(result.Customers, &c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.DB.Query(ctx,
		`SELECT id, name, specialization, phone, created_at
		 FROM doctors
		 WHERE name ILIKE $1 OR specialization ILIKE $1
		 ORDER BY name
		 LIMIT $2`, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d models.Doctor
		err := rows.Scan(&d.ID, &d.Name, &d.Specialization, &d.Phone, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		result.Doctors = append(result.Doctors, &d)
	}
	return result, rows.Err()
}

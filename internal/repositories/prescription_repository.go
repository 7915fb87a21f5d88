package repositories

import (
	"context"

	"pharma-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PrescriptionRepository struct {
	DB *pgxpool.Pool
}

func NewPrescriptionRepository(db *pgxpool.Pool) *PrescriptionRepository {
	return &PrescriptionRepository{DB: db}
}

func (r *PrescriptionRepository) Create(ctx context.Context, p *models.Prescription) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO prescriptions(customer_id, doctor_id, image_path, notes)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at`,
		p.CustomerID, p.DoctorID, p.ImagePath, p.Notes,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *PrescriptionRepository) Get(ctx context.Context, id int) (*models.Prescription, error) {
	var p models.Prescription
	err := r.DB.QueryRow(ctx,
		`SELECT id, customer_id, doctor_id, COALESCE(image_path, ''), COALESCE(notes, ''), created_at
         FROM prescriptions WHERE id=$1`, id,
	).Scan(&p.ID, &p.CustomerID, &p.DoctorID, &p.ImagePath, &p.Notes, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByCustomer returns a customer's prescriptions, newest first
func (r *PrescriptionRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Prescription, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, customer_id, doctor_id, COALESCE(image_path, ''), COALESCE(notes, ''), created_at
         FROM prescriptions WHERE customer_id=$1 ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prescriptions []*models.Prescription
	for rows.Next() {
		var p models.Prescription
		err := rows.Scan(&p.ID, &p.CustomerID, &p.DoctorID, &p.ImagePath, &p.Notes, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		prescriptions = append(prescriptions, &p)
	}
	return prescriptions, rows.Err()
}

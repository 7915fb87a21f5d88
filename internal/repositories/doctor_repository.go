package repositories

import (
	"context"

	"pharma-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DoctorRepository struct {
	DB *pgxpool.Pool
}

func NewDoctorRepository(db *pgxpool.Pool) *DoctorRepository {
	return &DoctorRepository{DB: db}
}

func (r *DoctorRepository) Create(ctx context.Context, d *models.Doctor) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO doctors(name, specialization, phone)
         VALUES($1, $2, $3)
         RETURNING id, created_at`,
		d.Name, d.Specialization, d.Phone,
	).Scan(&d.ID, &d.CreatedAt)
}

func (r *DoctorRepository) Get(ctx context.Context, id int) (*models.Doctor, error) {
	var d models.Doctor
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, specialization, phone, created_at
         FROM doctors WHERE id=$1`, id,
	).Scan(&d.ID, &d.Name, &d.Specialization, &d.Phone, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepository) List(ctx context.Context) ([]*models.Doctor, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, specialization, phone, created_at
         FROM doctors ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []*models.Doctor
	for rows.Next() {
		var d models.Doctor
		err := rows.Scan(&d.ID, &d.Name, &d.Specialization, &d.Phone, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, &d)
	}
	return doctors, rows.Err()
}

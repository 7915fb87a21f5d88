package services

import (
	"context"
	"fmt"

	"pharma-backend/internal/models"
	"pharma-backend/internal/repositories"
)

type DoctorService struct {
	Repo *repositories.DoctorRepository
}

func NewDoctorService(repo *repositories.DoctorRepository) *DoctorService {
	return &DoctorService{Repo: repo}
}

func (s *DoctorService) CreateDoctor(ctx context.Context, req *models.CreateDoctorRequest) (*models.Doctor, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	d := &models.Doctor{
		Name:           req.Name,
		Specialization: req.Specialization,
		Phone:          req.Phone,
	}
	if err := s.Repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DoctorService) GetDoctor(ctx context.Context, id int) (*models.Doctor, error) {
	d, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "doctor %d", id)
	}
	return d, nil
}

func (s *DoctorService) ListDoctors(ctx context.Context) ([]*models.Doctor, error) {
	return s.Repo.List(ctx)
}

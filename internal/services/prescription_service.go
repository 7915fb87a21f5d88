package services

import (
	"context"
	"fmt"

	"pharma-backend/internal/models"
	"pharma-backend/internal/repositories"
)

type PrescriptionService struct {
	Repo      *repositories.PrescriptionRepository
	Customers *repositories.CustomerRepository
}

func NewPrescriptionService(repo *repositories.PrescriptionRepository, customers *repositories.CustomerRepository) *PrescriptionService {
	return &PrescriptionService{
		Repo:      repo,
		Customers: customers,
	}
}

// CreatePrescription records a prescription against an existing customer
func (s *PrescriptionService) CreatePrescription(ctx context.Context, req *models.CreatePrescriptionRequest) (*models.Prescription, error) {
	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customer_id is required", ErrInvalidInput)
	}
	if _, err := s.Customers.Get(ctx, req.CustomerID); err != nil {
		return nil, asNotFound(err, "customer %d", req.CustomerID)
	}

	p := &models.Prescription{
		CustomerID: req.CustomerID,
		DoctorID:   req.DoctorID,
		ImagePath:  req.ImagePath,
		Notes:      req.Notes,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PrescriptionService) GetPrescription(ctx context.Context, id int) (*models.Prescription, error) {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "prescription %d", id)
	}
	return p, nil
}

// ListByCustomer returns a customer's prescriptions, newest first
func (s *PrescriptionService) ListByCustomer(ctx context.Context, customerID int) ([]*models.Prescription, error) {
	return s.Repo.ListByCustomer(ctx, customerID)
}

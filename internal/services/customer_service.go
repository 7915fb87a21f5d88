package services

import (
	"context"
	"fmt"

	"pharma-backend/internal/models"
	"pharma-backend/internal/repositories"
)

type CustomerService struct {
	Repo *repositories.CustomerRepository
}

func NewCustomerService(repo *repositories.CustomerRepository) *CustomerService {
	return &CustomerService{Repo: repo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if req.Name == "" || req.Phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", ErrInvalidInput)
	}

	// Phone is the natural key at the counter; reject duplicates early
	existing, _ := s.Repo.GetByPhone(ctx, req.Phone)
	if existing != nil {
		return nil, fmt.Errorf("%w: customer with this phone already exists", ErrInvalidInput)
	}

	c := &models.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	c, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "customer %d", id)
	}
	return c, nil
}

func (s *CustomerService) GetCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	c, err := s.Repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, asNotFound(err, "customer with phone %s", phone)
	}
	return c, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.Repo.List(ctx)
}

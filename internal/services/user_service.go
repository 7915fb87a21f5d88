package services

import (
	"context"
	"fmt"

	"pharma-backend/internal/auth"
	"pharma-backend/internal/models"
	"pharma-backend/internal/repositories"
)

type UserService struct {
	Repo       *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
	}
}

// Signup registers a new pharmacist account and returns a signed token
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if req.Username == "" || req.Password == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: username, name, and password are required", ErrInvalidInput)
	}

	// Check if user already exists
	existingUser, _ := s.Repo.GetByUsername(ctx, req.Username)
	if existingUser != nil {
		return nil, fmt.Errorf("%w: username already taken", ErrInvalidInput)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hashedPassword,
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login authenticates a user by username and password
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	user, err := s.Repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrInvalidInput)
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrInvalidInput)
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

// CreateUser lets an admin add a staff account with an explicit role
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: username, name, and password are required", ErrInvalidInput)
	}
	if req.Role != "" && req.Role != "admin" && req.Role != "pharmacist" {
		return nil, fmt.Errorf("%w: role must be admin or pharmacist", ErrInvalidInput)
	}

	existingUser, _ := s.Repo.GetByUsername(ctx, req.Username)
	if existingUser != nil {
		return nil, fmt.Errorf("%w: username already taken", ErrInvalidInput)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hashedPassword,
		Role:         req.Role,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "user %d", id)
	}
	return user, nil
}

// ListUsers returns all users
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

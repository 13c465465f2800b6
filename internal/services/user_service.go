package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"livenzo-backend/internal/auth"
	"livenzo-backend/internal/models"
	"livenzo-backend/internal/repositories"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type UserService struct {
	userRepo   *repositories.UserRepository
	jwtManager *auth.JWTManager
}

func NewUserService(userRepo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{userRepo: userRepo, jwtManager: jwtManager}
}

func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.LoginResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}
	if req.Role != models.RoleOwner && req.Role != models.RoleRenter {
		return nil, fmt.Errorf("role must be %q or %q", models.RoleOwner, models.RoleRenter)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	if existing, _ := s.userRepo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	user.IsActive = true

	return s.issueToken(user)
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.Get(ctx, id)
}

func (s *UserService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	return s.userRepo.UpdateFCMToken(ctx, userID, token)
}

// UpdateUpiID sets the owner's collection VPA.
func (s *UserService) UpdateUpiID(ctx context.Context, userID, upiID string) error {
	if strings.Count(upiID, "@") != 1 {
		return fmt.Errorf("invalid UPI ID")
	}
	return s.userRepo.UpdateUpiID(ctx, userID, upiID)
}

func (s *UserService) issueToken(user *models.User) (*models.LoginResponse, error) {
	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

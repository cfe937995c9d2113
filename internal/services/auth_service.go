package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gkharab/projecthub-api/internal/apperrors"
	"github.com/gkharab/projecthub-api/internal/models"
	"github.com/gkharab/projecthub-api/internal/repository"
	"github.com/gkharab/projecthub-api/internal/utils"
)

// AuthService handles registration, login and token issuance
type AuthService struct {
	users     repository.UserRepository
	jwtSecret []byte
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository, jwtSecret []byte) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret}
}

// Register creates a new account with the USER role and returns a signed
// token. Duplicate emails fail with Conflict.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict(fmt.Sprintf("Email address %s is already registered. Please use a different email.", req.Email))
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Email:     req.Email,
		Password:  hashedPassword,
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, Email: user.Email, Role: user.Role}, nil
}

// Login verifies credentials and returns a signed token. The error message
// never reveals which of email or password was wrong.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthenticated("Invalid email or password")
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, apperrors.Unauthenticated("Invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, Email: user.Email, Role: user.Role}, nil
}

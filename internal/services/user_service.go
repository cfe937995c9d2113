package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gkharab/projecthub-api/internal/apperrors"
	"github.com/gkharab/projecthub-api/internal/models"
	"github.com/gkharab/projecthub-api/internal/repository"
)

// UserService provides user lookup and role assignment operations
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetAllUsers lists users with pagination. Route-level gating restricts this
// to admin:read holders.
func (s *UserService) GetAllUsers(ctx context.Context, page repository.Page) (*models.UserListResponse, error) {
	users, totalCount, err := s.users.List(ctx, page)
	if err != nil {
		return nil, err
	}

	responses := make([]models.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	return &models.UserListResponse{
		Users:      responses,
		TotalCount: totalCount,
		Page:       page.Number,
		Limit:      page.Limit,
	}, nil
}

// GetUserByID retrieves a user's client projection
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.UserResponse, error) {
	userID, err := parseID("User", id)
	if err != nil {
		return nil, err
	}

	user, err := s.GetUserEntityByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

// GetUserEntityByID retrieves a user entity unscoped, NotFound if absent
func (s *UserService) GetUserEntityByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User", "id", id.Hex())
		}
		return nil, err
	}
	return user, nil
}

// AssignRole changes a user's role. Route-level gating restricts this to
// admin:update holders; it is the only way a role ever changes.
func (s *UserService) AssignRole(ctx context.Context, id string, role models.Role) (*models.UserResponse, error) {
	userID, err := parseID("User", id)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User", "id", id)
		}
		return nil, err
	}

	user, err := s.GetUserEntityByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

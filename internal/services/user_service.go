package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskhive/taskhive-api/internal/models"
	"github.com/taskhive/taskhive-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrSyncFieldsMissing = errors.New("auth0Id and email are required")
	ErrEmailRequired     = errors.New("email is required")
)

// UserService reconciles external-identity sessions with local user records.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// SyncUserInput carries the identity-provider profile fields.
type SyncUserInput struct {
	Auth0ID  string
	Email    string
	FullName *string
}

// SyncUser reconciles a provider session with a local user. Resolution order
// matters and must not change: by auth0Id first (provider is the source of
// truth for email and name), then by email (links a pre-existing local
// account to the provider subject), then create.
func (s *UserService) SyncUser(input SyncUserInput) (*models.User, error) {
	if strings.TrimSpace(input.Auth0ID) == "" || strings.TrimSpace(input.Email) == "" {
		return nil, ErrSyncFieldsMissing
	}

	user, err := s.userRepo.FindByAuth0ID(input.Auth0ID)
	if err == nil {
		user.Email = input.Email
		user.FullName = input.FullName
		if err := s.userRepo.Update(user); err != nil {
			return nil, fmt.Errorf("failed to sync user: %w", err)
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user by auth0 id: %w", err)
	}

	user, err = s.userRepo.FindByEmail(input.Email)
	if err == nil {
		auth0ID := input.Auth0ID
		user.Auth0ID = &auth0ID
		user.FullName = input.FullName
		if err := s.userRepo.Update(user); err != nil {
			return nil, fmt.Errorf("failed to link user account: %w", err)
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	auth0ID := input.Auth0ID
	user = &models.User{
		Email:    input.Email,
		FullName: input.FullName,
		Auth0ID:  &auth0ID,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// CreateUser creates a user without a provider identity.
func (s *UserService) CreateUser(email string, fullName *string) (*models.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}

	user := &models.User{
		Email:    email,
		FullName: fullName,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers returns all users.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskhive/taskhive-api/internal/models"
	"github.com/taskhive/taskhive-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrOrganizationNotFound    = errors.New("organization not found")
	ErrInvalidOrganizationName = errors.New("organization name cannot be empty")
	ErrInvalidInviteCode       = errors.New("invalid invite code")
	ErrUserIDRequired          = errors.New("user id is required")
)

// OrganizationService provides business logic for organization operations.
type OrganizationService struct {
	orgRepo repository.OrganizationRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{
		orgRepo: orgRepo,
	}
}

// CreateOrganizationInput represents parameters to create a new organization.
type CreateOrganizationInput struct {
	Name    string
	OwnerID *string
}

// CreateOrganization creates a new organization. When OwnerID is set, the
// owner membership is created in the same transaction; otherwise the
// organization starts with zero members.
func (s *OrganizationService) CreateOrganization(input CreateOrganizationInput) (*models.Organization, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidOrganizationName
	}

	org := &models.Organization{
		Name: input.Name,
	}

	var member *models.OrganizationMember
	if input.OwnerID != nil {
		member = &models.OrganizationMember{
			UserID:   *input.OwnerID,
			Role:     models.RoleOwner,
			JoinedAt: time.Now(),
		}
	}

	if err := s.orgRepo.CreateWithOwner(org, member); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// JoinOrganization admits a user via invite code. The invite code is the
// organization id itself; there is no separate invite-token entity. Joining
// an organization the user already belongs to succeeds without creating a
// second membership row.
func (s *OrganizationService) JoinOrganization(inviteCode, userID string) (*models.Organization, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	org, err := s.orgRepo.FindByID(inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to find organization by invite code: %w", err)
	}

	member := &models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         userID,
		Role:           models.RoleMember,
		JoinedAt:       time.Now(),
	}

	// AddMember is conflict-tolerant, so a concurrent duplicate join (or a
	// repeat of an earlier one) lands here as a no-op success.
	if err := s.orgRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member to organization: %w", err)
	}

	return org, nil
}

// ListOrganizations returns non-deleted organizations, optionally filtered
// to those the given user is a member of.
func (s *OrganizationService) ListOrganizations(userID *string) ([]models.Organization, error) {
	orgs, err := s.orgRepo.List(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// GetOrganization returns an organization with its non-deleted projects and
// its members.
func (s *OrganizationService) GetOrganization(orgID string) (*models.Organization, error) {
	org, err := s.orgRepo.FindByIDWithDetails(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// ListMembers returns the user records of every member of the organization.
func (s *OrganizationService) ListMembers(orgID string) ([]models.User, error) {
	if _, err := s.orgRepo.FindByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	members, err := s.orgRepo.ListMembers(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization members: %w", err)
	}

	users := make([]models.User, 0, len(members))
	for _, m := range members {
		users = append(users, m.User)
	}
	return users, nil
}

// UpdateOrganizationName renames an organization.
func (s *OrganizationService) UpdateOrganizationName(orgID, name string) (*models.Organization, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidOrganizationName
	}

	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	org.Name = name
	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	return org, nil
}

// DeleteOrganization soft deletes an organization. Nothing cascades; list
// reads stop returning the organization once deletedAt is set.
func (s *OrganizationService) DeleteOrganization(orgID string) error {
	if _, err := s.orgRepo.FindByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to find organization: %w", err)
	}

	if err := s.orgRepo.Delete(orgID); err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}

	return nil
}

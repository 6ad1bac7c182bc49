package repository

import (
	"errors"
	"fmt"

	"github.com/taskhive/taskhive-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateOrganization is returned when creating the organization fails inside the transaction.
	ErrCreateOrganization = errors.New("organization repository: create organization failed")
	// ErrCreateOrganizationMember is returned when creating the owner membership fails inside the transaction.
	ErrCreateOrganizationMember = errors.New("organization repository: create organization member failed")
)

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// CreateWithOwner creates the organization and, when member is non-nil, the
// owner membership atomically.
func (r *GormOrganizationRepository) CreateWithOwner(org *models.Organization, member *models.OrganizationMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOrganization, err)
		}

		if member == nil {
			return nil
		}

		member.OrganizationID = org.ID
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOrganizationMember, err)
		}

		return nil
	})
}

// FindByID finds a non-deleted organization by ID
func (r *GormOrganizationRepository) FindByID(id string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByIDWithDetails loads the organization with non-deleted projects and members
func (r *GormOrganizationRepository) FindByIDWithDetails(id string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.
		Preload("Projects").
		Preload("Members.User").
		First(&org, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// List returns non-deleted organizations, optionally filtered to a member
func (r *GormOrganizationRepository) List(userID *string) ([]models.Organization, error) {
	var orgs []models.Organization
	query := r.db.Model(&models.Organization{})

	if userID != nil {
		query = query.
			Joins("JOIN organization_members ON organization_members.organization_id = organizations.id").
			Where("organization_members.user_id = ?", *userID)
	}

	if err := query.Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

// Update updates an organization
func (r *GormOrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// Delete soft deletes an organization. Projects, tasks and memberships are
// left untouched; list reads filter through the organization themselves.
func (r *GormOrganizationRepository) Delete(id string) error {
	return r.db.Delete(&models.Organization{}, "id = ?", id).Error
}

// AddMember inserts a membership row. The ON CONFLICT clause on the natural
// key makes concurrent duplicate joins resolve to a no-op instead of a
// duplicate row.
func (r *GormOrganizationRepository) AddMember(member *models.OrganizationMember) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "organization_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(member).Error
}

// ListMembers lists all members of an organization
func (r *GormOrganizationRepository) ListMembers(organizationID string) ([]models.OrganizationMember, error) {
	var members []models.OrganizationMember
	if err := r.db.Preload("User").
		Where("organization_id = ?", organizationID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName  *string   `gorm:"type:varchar(255)" json:"fullName"`
	Auth0ID   *string   `gorm:"type:varchar(255);uniqueIndex" json:"auth0Id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Memberships   []OrganizationMember `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
	AssignedTasks []Task               `gorm:"foreignKey:AssigneeID" json:"assignedTasks,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

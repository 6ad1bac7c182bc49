package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EntityTypeTask = "task"

	ActionCreateTask = "create_task"
	ActionUpdateTask = "update_task"
	ActionAddComment = "add_comment"
)

// ActivityLog is an append-only audit record. Rows are never updated or
// deleted, and they outlive the entities they reference.
type ActivityLog struct {
	ID         string         `gorm:"type:varchar(36);primarykey" json:"id"`
	EntityType string         `gorm:"type:varchar(50);not null;index:idx_activity_entity" json:"entityType"`
	EntityID   string         `gorm:"type:varchar(36);not null;index:idx_activity_entity" json:"entityId"`
	UserID     string         `gorm:"type:varchar(36);not null" json:"userId"`
	Action     string         `gorm:"type:varchar(50);not null" json:"action"`
	Metadata   datatypes.JSON `json:"metadata"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

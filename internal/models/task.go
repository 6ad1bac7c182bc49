package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "to_do"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether s is a known status. Transitions between statuses
// are unrestricted.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID             string         `gorm:"type:varchar(36);primarykey" json:"id"`
	OrganizationID string         `gorm:"type:varchar(36);not null;index" json:"organizationId"`
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Status         TaskStatus     `gorm:"type:varchar(20);not null;default:'to_do'" json:"status"`
	Priority       TaskPriority   `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	DueDate        *time.Time     `json:"dueDate"`
	AssigneeID     *string        `gorm:"type:varchar(36);index" json:"assigneeId"`
	CreatedBy      string         `gorm:"type:varchar(36);not null" json:"createdBy"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Assignee      *User              `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Creator       *User              `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Collaborators []TaskCollaborator `gorm:"foreignKey:TaskID" json:"collaborators,omitempty"`
	Projects      []ProjectTask      `gorm:"foreignKey:TaskID" json:"projects,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

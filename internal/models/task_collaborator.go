package models

import "time"

// TaskCollaborator is a plain (taskId, userId) association; the collaborator
// set of a task is unordered.
type TaskCollaborator struct {
	TaskID    string    `gorm:"type:varchar(36);primarykey" json:"taskId"`
	UserID    string    `gorm:"type:varchar(36);primarykey" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

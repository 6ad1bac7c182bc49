package models

import "time"

// ProjectTask links a task into a project's ordered list. Positions are
// allocated with a fixed gap so a task can later be moved between two
// neighbours by taking the midpoint of their positions, without renumbering.
type ProjectTask struct {
	ProjectID string    `gorm:"type:varchar(36);primarykey" json:"projectId"`
	TaskID    string    `gorm:"type:varchar(36);primarykey" json:"taskId"`
	Position  int64     `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Task    Task    `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}

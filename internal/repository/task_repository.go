package repository

import (
	"encoding/json"

	"github.com/taskhive/taskhive-api/internal/constants"
	"github.com/taskhive/taskhive-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// appendTaskToProject links a task at the end of a project's ordered list.
// The new position is the current maximum plus the gap constant, never a
// plain increment, so the sequence stays midpoint-insertable.
func appendTaskToProject(tx *gorm.DB, projectID, taskID string) error {
	var maxPos int64
	if err := tx.Model(&models.ProjectTask{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPos).Error; err != nil {
		return err
	}

	link := models.ProjectTask{
		ProjectID: projectID,
		TaskID:    taskID,
		Position:  maxPos + constants.PositionGap,
	}
	return tx.Create(&link).Error
}

// insertCollaborators inserts the (taskId, userId) pairs; existing pairs are
// skipped rather than erroring.
func insertCollaborators(tx *gorm.DB, taskID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}

	collaborators := make([]models.TaskCollaborator, len(userIDs))
	for i, userID := range userIDs {
		collaborators[i] = models.TaskCollaborator{
			TaskID: taskID,
			UserID: userID,
		}
	}

	return tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&collaborators).Error
}

// CreateWithSideEffects inserts the task and all of its creation side
// effects in one transaction: either everything commits or nothing does.
func (r *GormTaskRepository) CreateWithSideEffects(task *models.Task, projectID *string, collaboratorIDs []string, log *models.ActivityLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}

		if projectID != nil {
			if err := appendTaskToProject(tx, *projectID, task.ID); err != nil {
				return err
			}
		}

		if err := insertCollaborators(tx, task.ID, collaboratorIDs); err != nil {
			return err
		}

		log.EntityID = task.ID
		return tx.Create(log).Error
	})
}

// UpdateWithSideEffects saves the task, optionally replaces its collaborator
// set, and appends the activity log entry, all in one transaction. A non-nil
// empty collaborator list clears the set. The log metadata is built here so
// the "new" snapshot carries the timestamps the save actually wrote.
func (r *GormTaskRepository) UpdateWithSideEffects(task *models.Task, old *models.Task, collaboratorIDs *[]string, log *models.ActivityLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Unscoped: a soft-deleted task is still addressable by id.
		if err := tx.Unscoped().Save(task).Error; err != nil {
			return err
		}

		if collaboratorIDs != nil {
			if err := tx.Where("task_id = ?", task.ID).
				Delete(&models.TaskCollaborator{}).Error; err != nil {
				return err
			}
			if err := insertCollaborators(tx, task.ID, *collaboratorIDs); err != nil {
				return err
			}
		}

		meta, err := json.Marshal(map[string]*models.Task{"old": old, "new": task})
		if err != nil {
			return err
		}
		log.Metadata = datatypes.JSON(meta)

		return tx.Create(log).Error
	})
}

// FindByID finds a task by ID with optional preloading. Deliberately
// unscoped: direct id lookup returns soft-deleted tasks, unlike every list
// operation.
func (r *GormTaskRepository) FindByID(id string, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.Unscoped()

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListAssigned returns non-deleted tasks assigned to the user in the
// organization, newest first.
func (r *GormTaskRepository) ListAssigned(organizationID, userID string) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Where("organization_id = ? AND assignee_id = ?", organizationID, userID).
		Order("created_at DESC").
		Preload("Assignee").
		Preload("Collaborators.User").
		Preload("Projects.Project").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Delete soft deletes a task. No cascade: project links, collaborators and
// comments stay in place, and no activity log entry is written.
func (r *GormTaskRepository) Delete(id string) error {
	return r.db.Delete(&models.Task{}, "id = ?", id).Error
}

package repository

import (
	"encoding/json"

	"github.com/taskhive/taskhive-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// CreateWithLog inserts the comment and its activity log entry atomically.
// The log metadata references the comment id, which only exists once the
// insert has run, so it is filled in here.
func (r *GormCommentRepository) CreateWithLog(comment *models.Comment, log *models.ActivityLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		meta, err := json.Marshal(map[string]string{"commentId": comment.ID})
		if err != nil {
			return err
		}
		log.Metadata = datatypes.JSON(meta)

		return tx.Create(log).Error
	})
}

// FindByID finds a comment with its author resolved
func (r *GormCommentRepository) FindByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("User").First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByTask returns a task's comments oldest first with authors resolved
func (r *GormCommentRepository) ListByTask(taskID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Preload("User").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Delete hard deletes a comment. Comments carry no soft-delete marker;
// removal is irreversible.
func (r *GormCommentRepository) Delete(id string) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}

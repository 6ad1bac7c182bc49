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
	ErrCommentNotFound       = errors.New("comment not found")
	ErrCommentFieldsRequired = errors.New("taskId, userId and content are required")
)

// CommentService handles the append-only commentary on tasks.
type CommentService struct {
	commentRepo repository.CommentRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
	}
}

// CreateComment inserts the comment and its add_comment activity log entry
// in one transaction, and returns the comment with its author resolved.
func (s *CommentService) CreateComment(taskID, userID, content string) (*models.Comment, error) {
	if strings.TrimSpace(taskID) == "" || strings.TrimSpace(userID) == "" || strings.TrimSpace(content) == "" {
		return nil, ErrCommentFieldsRequired
	}

	comment := &models.Comment{
		TaskID:  taskID,
		UserID:  userID,
		Content: content,
	}

	log := &models.ActivityLog{
		EntityType: models.EntityTypeTask,
		EntityID:   taskID,
		UserID:     userID,
		Action:     models.ActionAddComment,
	}

	if err := s.commentRepo.CreateWithLog(comment, log); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return s.commentRepo.FindByID(comment.ID)
}

// ListComments returns a task's comments oldest first, authors resolved.
func (s *CommentService) ListComments(taskID string) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// DeleteComment hard deletes a comment. Irreversible, and no activity log
// entry is written; the delete request carries no actor.
func (s *CommentService) DeleteComment(commentID string) error {
	if _, err := s.commentRepo.FindByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

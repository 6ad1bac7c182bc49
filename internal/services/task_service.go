package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskhive/taskhive-api/internal/models"
	"github.com/taskhive/taskhive-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrTitleEmpty       = errors.New("title cannot be empty")
	ErrCreatorRequired  = errors.New("createdBy is required")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrInvalidPriority  = errors.New("invalid task priority")
	ErrActorRequired    = errors.New("userId of the acting user is required")
	ErrOrgIDRequired    = errors.New("organization id is required")
	ErrAssigneeRequired = errors.New("assignee user id is required")
)

// taskDetailPreloads resolves everything a task detail response carries:
// project links, assignee, and collaborators with their user records.
var taskDetailPreloads = []string{"Assignee", "Collaborators.User", "Projects.Project"}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title           string
	Description     string
	OrganizationID  string
	Status          models.TaskStatus
	Priority        models.TaskPriority
	DueDate         *time.Time
	AssigneeID      *string
	CreatedBy       string
	ProjectID       *string
	CollaboratorIDs []string
}

// CreateTask creates a task together with its creation side effects: the
// optional project link appended with the position gap, the collaborator
// rows, and one create_task activity log entry. Everything commits or fails
// as a unit.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.OrganizationID) == "" {
		return nil, ErrOrgIDRequired
	}
	if strings.TrimSpace(input.CreatedBy) == "" {
		return nil, ErrCreatorRequired
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	task := &models.Task{
		OrganizationID: input.OrganizationID,
		Title:          input.Title,
		Description:    input.Description,
		Status:         input.Status,
		Priority:       input.Priority,
		DueDate:        input.DueDate,
		AssigneeID:     input.AssigneeID,
		CreatedBy:      input.CreatedBy,
	}

	meta, err := json.Marshal(map[string]string{"title": input.Title})
	if err != nil {
		return nil, fmt.Errorf("failed to encode activity metadata: %w", err)
	}

	log := &models.ActivityLog{
		EntityType: models.EntityTypeTask,
		UserID:     input.CreatedBy,
		Action:     models.ActionCreateTask,
		Metadata:   datatypes.JSON(meta),
	}

	collaboratorIDs := uniqueStrings(input.CollaboratorIDs)

	if err := s.taskRepo.CreateWithSideEffects(task, input.ProjectID, collaboratorIDs, log); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskDetailPreloads...)
}

// UpdateTaskInput represents a partial task update. Pointer fields left nil
// are not touched; the Clear flags distinguish "set to null" from "not
// provided".
type UpdateTaskInput struct {
	Title           *string
	Description     *string
	Status          *models.TaskStatus
	Priority        *models.TaskPriority
	DueDate         *time.Time
	ClearDueDate    bool
	AssigneeID      *string
	ClearAssignee   bool
	CollaboratorIDs *[]string
	ActorID         string
}

// UpdateTask applies a partial update and its side effects in one
// transaction: the optional full replacement of the collaborator set and one
// update_task activity log entry carrying the old and new snapshots.
func (s *TaskService) UpdateTask(taskID string, input UpdateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.ActorID) == "" {
		return nil, ErrActorRequired
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	old := *task

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.ClearAssignee {
		task.AssigneeID = nil
	} else if input.AssigneeID != nil {
		task.AssigneeID = input.AssigneeID
	}

	log := &models.ActivityLog{
		EntityType: models.EntityTypeTask,
		EntityID:   task.ID,
		UserID:     input.ActorID,
		Action:     models.ActionUpdateTask,
	}

	var collaboratorIDs *[]string
	if input.CollaboratorIDs != nil {
		deduped := uniqueStrings(*input.CollaboratorIDs)
		collaboratorIDs = &deduped
	}

	if err := s.taskRepo.UpdateWithSideEffects(task, &old, collaboratorIDs, log); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskDetailPreloads...)
}

// GetTask returns a task with its project links, assignee and collaborators.
// Soft-deleted tasks are retrievable here: direct id lookup does not filter
// deletedAt, unlike the list operations.
func (s *TaskService) GetTask(taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, taskDetailPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// DeleteTask soft deletes a task. No cascade and no activity log entry; the
// delete request carries no actor to attribute one to.
func (s *TaskService) DeleteTask(taskID string) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ListMyTasks returns the organization's non-deleted tasks assigned to the
// user, newest first.
func (s *TaskService) ListMyTasks(organizationID, userID string) ([]models.Task, error) {
	if strings.TrimSpace(organizationID) == "" {
		return nil, ErrOrgIDRequired
	}
	if strings.TrimSpace(userID) == "" {
		return nil, ErrAssigneeRequired
	}

	tasks, err := s.taskRepo.ListAssigned(organizationID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tasks: %w", err)
	}
	return tasks, nil
}

// uniqueStrings removes duplicate values while preserving order.
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}

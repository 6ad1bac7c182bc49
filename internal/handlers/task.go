package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskhive/taskhive-api/internal/errors"
	"github.com/taskhive/taskhive-api/internal/models"
	"github.com/taskhive/taskhive-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
	aiService   *services.AIService
}

func NewTaskHandler(taskService *services.TaskService, aiService *services.AIService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		aiService:   aiService,
	}
}

// CreateTask creates a task with its side effects: the optional project
// link, the collaborator set, and the create_task activity log entry.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title           string     `json:"title" binding:"required"`
		Description     string     `json:"description"`
		OrgID           string     `json:"orgId"`
		OrganizationID  string     `json:"organizationId"`
		Status          string     `json:"status"`
		Priority        string     `json:"priority"`
		DueDate         *time.Time `json:"dueDate"`
		AssigneeID      *string    `json:"assigneeId"`
		CreatedBy       string     `json:"createdBy" binding:"required"`
		ProjectID       *string    `json:"projectId"`
		CollaboratorIDs []string   `json:"collaboratorIds"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	organizationID := req.OrgID
	if organizationID == "" {
		organizationID = req.OrganizationID
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		OrganizationID:  organizationID,
		Status:          models.TaskStatus(req.Status),
		Priority:        models.TaskPriority(req.Priority),
		DueDate:         req.DueDate,
		AssigneeID:      req.AssigneeID,
		CreatedBy:       req.CreatedBy,
		ProjectID:       req.ProjectID,
		CollaboratorIDs: req.CollaboratorIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTask returns one task with assignee, collaborators and project links.
// Soft-deleted tasks stay retrievable by id.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask applies a partial update. The body is decoded as a raw map so
// an explicit null (clear the field) can be told apart from an absent key
// (leave it alone) for dueDate and assigneeId.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTaskInput

	if v, ok := raw["userId"]; ok {
		if err := json.Unmarshal(v, &input.ActorID); err != nil {
			apierrors.BadRequest(c, "userId must be a string")
			return
		}
	}
	if v, ok := raw["title"]; ok {
		var title string
		if err := json.Unmarshal(v, &title); err != nil {
			apierrors.BadRequest(c, "title must be a string")
			return
		}
		input.Title = &title
	}
	if v, ok := raw["description"]; ok {
		var description string
		if err := json.Unmarshal(v, &description); err != nil {
			apierrors.BadRequest(c, "description must be a string")
			return
		}
		input.Description = &description
	}
	if v, ok := raw["status"]; ok {
		var status models.TaskStatus
		if err := json.Unmarshal(v, &status); err != nil {
			apierrors.BadRequest(c, "status must be a string")
			return
		}
		input.Status = &status
	}
	if v, ok := raw["priority"]; ok {
		var priority models.TaskPriority
		if err := json.Unmarshal(v, &priority); err != nil {
			apierrors.BadRequest(c, "priority must be a string")
			return
		}
		input.Priority = &priority
	}
	if v, ok := raw["dueDate"]; ok {
		if isJSONNull(v) {
			input.ClearDueDate = true
		} else {
			var dueDate time.Time
			if err := json.Unmarshal(v, &dueDate); err != nil {
				apierrors.BadRequest(c, "dueDate must be an ISO8601 datetime or null")
				return
			}
			input.DueDate = &dueDate
		}
	}
	if v, ok := raw["assigneeId"]; ok {
		if isJSONNull(v) {
			input.ClearAssignee = true
		} else {
			var assigneeID string
			if err := json.Unmarshal(v, &assigneeID); err != nil {
				apierrors.BadRequest(c, "assigneeId must be a string or null")
				return
			}
			input.AssigneeID = &assigneeID
		}
	}
	if v, ok := raw["collaboratorIds"]; ok && !isJSONNull(v) {
		var collaboratorIDs []string
		if err := json.Unmarshal(v, &collaboratorIDs); err != nil {
			apierrors.BadRequest(c, "collaboratorIds must be an array of strings")
			return
		}
		input.CollaboratorIDs = &collaboratorIDs
	}

	task, err := h.taskService.UpdateTask(c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask soft deletes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMyTasks returns the caller's assigned tasks in one organization,
// newest first.
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	organizationID := c.Query("orgId")
	if organizationID == "" {
		organizationID = c.Query("organizationId")
	}

	tasks, err := h.taskService.ListMyTasks(organizationID, c.Query("userId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GenerateTasks extracts task suggestions from free text via the AI service.
// Nothing is persisted.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	type GenerateRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "text is required")
		return
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI task generation is not configured")
		return
	}

	tasks, err := h.aiService.GenerateTasksFromText(c.Request.Context(), req.Text)
	if err != nil {
		if err == services.ErrAIServiceNotConfigured {
			apierrors.ServiceUnavailable(c, err.Error())
			return
		}
		apierrors.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskhive/taskhive-api/internal/errors"
	"github.com/taskhive/taskhive-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a project inside an organization. Both orgId and
// organizationId are accepted for the owning organization.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Name           string `json:"name" binding:"required"`
		OrgID          string `json:"orgId"`
		OrganizationID string `json:"organizationId"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	organizationID := req.OrgID
	if organizationID == "" {
		organizationID = req.OrganizationID
	}

	project, err := h.projectService.CreateProject(organizationID, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// ListProjects returns non-deleted projects, optionally scoped by ?orgId=.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var organizationID *string
	if v := c.Query("orgId"); v != "" {
		organizationID = &v
	} else if v := c.Query("organizationId"); v != "" {
		organizationID = &v
	}

	projects, err := h.projectService.ListProjects(organizationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProject returns a project with its tasks ordered by board position.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.GetProject(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListProjectTasks returns a project's tasks filtered by the optional
// status, priority, assigneeId and q query parameters.
func (h *ProjectHandler) ListProjectTasks(c *gin.Context) {
	tasks, err := h.projectService.ListProjectTasks(c.Param("id"), services.ListProjectTasksInput{
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		AssigneeID: c.Query("assigneeId"),
		Query:      c.Query("q"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// UpdateProject renames a project.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	type UpdateProjectRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProjectName(c.Param("id"), req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject soft deletes a project.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectService.DeleteProject(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

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
	ErrProjectNotFound        = errors.New("project not found")
	ErrInvalidProjectName     = errors.New("project name cannot be empty")
	ErrOrganizationIDRequired = errors.New("organization id is required")
	ErrInvalidStatusFilter    = errors.New("invalid status filter")
	ErrInvalidPriorityFilter  = errors.New("invalid priority filter")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProject creates a project scoped to one organization.
func (s *ProjectService) CreateProject(organizationID, name string) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidProjectName
	}
	if strings.TrimSpace(organizationID) == "" {
		return nil, ErrOrganizationIDRequired
	}

	project := &models.Project{
		OrganizationID: organizationID,
		Name:           name,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListProjects returns non-deleted projects with their linked tasks.
func (s *ProjectService) ListProjects(organizationID *string) ([]models.Project, error) {
	projects, err := s.projectRepo.List(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	for i := range projects {
		pruneDeletedTaskLinks(&projects[i])
	}
	return projects, nil
}

// GetProject returns a project with its tasks ordered ascending by position.
func (s *ProjectService) GetProject(projectID string) (*models.Project, error) {
	project, err := s.projectRepo.FindByIDWithTasks(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	pruneDeletedTaskLinks(project)
	return project, nil
}

// ListProjectTasksInput holds the optional filters for a project's task
// list. Absent filters impose no constraint; provided ones combine with AND.
type ListProjectTasksInput struct {
	Status     string
	Priority   string
	AssigneeID string
	Query      string
}

// ListProjectTasks returns a project's tasks ordered by position, filtered
// by status, priority, assignee and a case-insensitive title substring.
func (s *ProjectService) ListProjectTasks(projectID string, input ListProjectTasksInput) ([]models.Task, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	var filter repository.ProjectTaskFilter

	if input.Status != "" {
		status := models.TaskStatus(input.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatusFilter
		}
		filter.Status = &status
	}
	if input.Priority != "" {
		priority := models.TaskPriority(input.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriorityFilter
		}
		filter.Priority = &priority
	}
	if input.AssigneeID != "" {
		filter.AssigneeID = &input.AssigneeID
	}
	filter.TitleQuery = input.Query

	tasks, err := s.projectRepo.ListTasks(projectID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list project tasks: %w", err)
	}
	return tasks, nil
}

// UpdateProjectName renames a project.
func (s *ProjectService) UpdateProjectName(projectID, name string) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidProjectName
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	project.Name = name
	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject soft deletes a project. Task links stay in place.
func (s *ProjectService) DeleteProject(projectID string) error {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// pruneDeletedTaskLinks drops link rows whose task was soft deleted. The
// preload filters deleted tasks, which leaves those links with a zero Task.
func pruneDeletedTaskLinks(p *models.Project) {
	if len(p.Tasks) == 0 {
		return
	}
	links := p.Tasks[:0]
	for _, link := range p.Tasks {
		if link.Task.ID != "" {
			links = append(links, link)
		}
	}
	p.Tasks = links
}

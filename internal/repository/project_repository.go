package repository

import (
	"github.com/taskhive/taskhive-api/internal/database"
	"github.com/taskhive/taskhive-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a non-deleted project by ID
func (r *GormProjectRepository) FindByID(id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByIDWithTasks loads a project with its links ordered by position.
// Soft-deleted tasks are filtered by the Task preload; their dangling links
// are pruned by the service layer.
func (r *GormProjectRepository) FindByIDWithTasks(id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("project_tasks.position ASC")
		}).
		Preload("Tasks.Task.Assignee").
		Preload("Tasks.Task.Collaborators.User").
		First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns non-deleted projects with their linked tasks
func (r *GormProjectRepository) List(organizationID *string) ([]models.Project, error) {
	var projects []models.Project
	query := r.db.Preload("Tasks.Task")

	if organizationID != nil {
		query = query.Where("organization_id = ?", *organizationID)
	}

	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete soft deletes a project
func (r *GormProjectRepository) Delete(id string) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// ListTasks returns the project's non-deleted tasks ordered by position,
// with every provided filter applied conjunctively.
func (r *GormProjectRepository) ListTasks(projectID string, filter ProjectTaskFilter) ([]models.Task, error) {
	query := r.db.Model(&models.ProjectTask{}).
		Select("project_tasks.*").
		Joins("JOIN tasks ON tasks.id = project_tasks.task_id").
		Where("project_tasks.project_id = ?", projectID).
		Where("tasks.deleted_at IS NULL")

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.AssigneeID != nil {
		query = query.Where("tasks.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.TitleQuery != "" {
		query = query.Scopes(database.TitleContains(filter.TitleQuery))
	}

	var links []models.ProjectTask
	if err := query.
		Order("project_tasks.position ASC").
		Preload("Task.Assignee").
		Preload("Task.Collaborators.User").
		Preload("Task.Projects.Project").
		Find(&links).Error; err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(links))
	for _, link := range links {
		tasks = append(tasks, link.Task)
	}
	return tasks, nil
}

package repository

import (
	"github.com/taskhive/taskhive-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// Update persists changes to a user
	Update(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByAuth0ID finds a user by its external identity subject
	FindByAuth0ID(auth0ID string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List returns all users
	List() ([]models.User, error)
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// CreateWithOwner creates an organization and, when member is non-nil,
	// its owner membership within a single transaction.
	CreateWithOwner(org *models.Organization, member *models.OrganizationMember) error

	// FindByID finds a non-deleted organization by ID
	FindByID(id string) (*models.Organization, error)

	// FindByIDWithDetails loads an organization with its non-deleted
	// projects and its members (users resolved)
	FindByIDWithDetails(id string) (*models.Organization, error)

	// List returns non-deleted organizations, optionally restricted to
	// those the given user is a member of
	List(userID *string) ([]models.Organization, error)

	// Update persists changes to an organization
	Update(org *models.Organization) error

	// Delete soft deletes an organization
	Delete(id string) error

	// AddMember inserts a membership row. Inserting an existing
	// (organizationId, userId) pair is a no-op.
	AddMember(member *models.OrganizationMember) error

	// ListMembers lists all members of an organization with users resolved
	ListMembers(organizationID string) ([]models.OrganizationMember, error)
}

// ProjectTaskFilter holds the conjunctive filters for a project's task list
type ProjectTaskFilter struct {
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	AssigneeID *string
	TitleQuery string
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a non-deleted project by ID
	FindByID(id string) (*models.Project, error)

	// FindByIDWithTasks loads a non-deleted project with its task links
	// ordered ascending by position, tasks resolved with assignee and
	// collaborators
	FindByIDWithTasks(id string) (*models.Project, error)

	// List returns non-deleted projects with their linked tasks,
	// optionally restricted to one organization
	List(organizationID *string) ([]models.Project, error)

	// Update persists changes to a project
	Update(project *models.Project) error

	// Delete soft deletes a project
	Delete(id string) error

	// ListTasks returns the non-deleted tasks linked to a project,
	// filtered and ordered ascending by position
	ListTasks(projectID string, filter ProjectTaskFilter) ([]models.Task, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithSideEffects inserts the task, its optional project link
	// (appended with the position gap), its collaborator rows, and the
	// activity log entry in one transaction.
	CreateWithSideEffects(task *models.Task, projectID *string, collaboratorIDs []string, log *models.ActivityLog) error

	// UpdateWithSideEffects saves the task, replaces the collaborator set
	// when collaboratorIDs is non-nil, and appends the activity log entry
	// whose metadata carries the old and new snapshots, in one
	// transaction.
	UpdateWithSideEffects(task *models.Task, old *models.Task, collaboratorIDs *[]string, log *models.ActivityLog) error

	// FindByID finds a task by ID with optional preloading. The lookup is
	// unscoped: soft-deleted tasks are retrievable by direct id.
	FindByID(id string, preload ...string) (*models.Task, error)

	// ListAssigned returns non-deleted tasks in an organization assigned
	// to a user, newest first
	ListAssigned(organizationID, userID string) ([]models.Task, error)

	// Delete soft deletes a task; links, collaborators and comments are
	// left in place
	Delete(id string) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// CreateWithLog inserts the comment and its activity log entry in one
	// transaction
	CreateWithLog(comment *models.Comment, log *models.ActivityLog) error

	// FindByID finds a comment by ID with its author resolved
	FindByID(id string) (*models.Comment, error)

	// ListByTask returns a task's comments oldest first, authors resolved
	ListByTask(taskID string) ([]models.Comment, error)

	// Delete hard deletes a comment
	Delete(id string) error
}

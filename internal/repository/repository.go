// Package repository defines the persistence interfaces consumed by the
// service layer, plus their MongoDB implementations.
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gkharab/projecthub-api/internal/models"
)

// ErrNotFound is returned by lookups when no document matches the filter
var ErrNotFound = errors.New("document not found")

// Page carries offset pagination parameters. Page numbers start at 1.
type Page struct {
	Number int64
	Limit  int64
}

// Skip returns the number of documents to skip for this page
func (p Page) Skip() int64 {
	skip := (p.Number - 1) * p.Limit
	if skip < 0 {
		return 0
	}
	return skip
}

// UserRepository provides keyed and scoped access to users
type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, id primitive.ObjectID, role models.Role) error
	List(ctx context.Context, page Page) ([]models.User, int64, error)
	CountByRole(ctx context.Context, role models.Role) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// ProjectRepository provides keyed and owner-scoped access to projects
type ProjectRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Project, error)
	ListAll(ctx context.Context, page Page) ([]models.Project, int64, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID, page Page) ([]models.Project, int64, error)
	Insert(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// TaskRepository provides keyed, assignee-scoped and project-scoped access to
// tasks
type TaskRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	FindByIDAndAssignee(ctx context.Context, id, assigneeID primitive.ObjectID) (*models.Task, error)
	ListAll(ctx context.Context, page Page) ([]models.Task, int64, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID, page Page) ([]models.Task, int64, error)
	ListByProjectAndStatus(ctx context.Context, projectID primitive.ObjectID, status models.TaskStatus, page Page) ([]models.Task, int64, error)
	ListByProjectAndPriority(ctx context.Context, projectID primitive.ObjectID, priority models.TaskPriority, page Page) ([]models.Task, int64, error)
	ListByAssignee(ctx context.Context, assigneeID primitive.ObjectID, page Page) ([]models.Task, int64, error)
	Insert(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.TaskStatus) (int64, error)
	CountByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error)
	CountByProjectAndStatus(ctx context.Context, projectID primitive.ObjectID, status models.TaskStatus) (int64, error)
	CountByProjectAndPriority(ctx context.Context, projectID primitive.ObjectID, priority models.TaskPriority) (int64, error)
}

package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gkharab/projecthub-api/internal/access"
	"github.com/gkharab/projecthub-api/internal/apperrors"
	"github.com/gkharab/projecthub-api/internal/models"
	"github.com/gkharab/projecthub-api/internal/repository"
)

// ProjectService provides project operations with owner/role scoped access
type ProjectService struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects repository.ProjectRepository, users repository.UserRepository) *ProjectService {
	return &ProjectService{projects: projects, users: users}
}

// GetAllProjects lists every project. Admin only.
func (s *ProjectService) GetAllProjects(ctx context.Context, actor *models.User, page repository.Page) (*models.ProjectListResponse, error) {
	if actor.Role != models.RoleAdmin {
		return nil, apperrors.AccessDenied("Only administrators can access all projects")
	}

	projects, totalCount, err := s.projects.ListAll(ctx, page)
	if err != nil {
		return nil, err
	}
	return s.toListResponse(ctx, projects, totalCount, page), nil
}

// GetMyProjects lists the projects owned by the actor
func (s *ProjectService) GetMyProjects(ctx context.Context, actor *models.User, page repository.Page) (*models.ProjectListResponse, error) {
	projects, totalCount, err := s.projects.ListByOwner(ctx, actor.ID, page)
	if err != nil {
		return nil, err
	}
	return s.toListResponse(ctx, projects, totalCount, page), nil
}

// GetProjectByID resolves a project under the actor's read scope and returns
// its client projection
func (s *ProjectService) GetProjectByID(ctx context.Context, actor *models.User, id string) (*models.ProjectResponse, error) {
	projectID, err := parseID("Project", id)
	if err != nil {
		return nil, err
	}

	project, err := s.ResolveProjectScope(ctx, projectID, actor)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, project), nil
}

// ResolveProjectScope resolves a project by id under the actor's scope:
// admins look up by id alone, everyone else by id and ownership. Both
// branches fail with NotFound, so a non-owned existing project looks
// identical to a nonexistent one.
func (s *ProjectService) ResolveProjectScope(ctx context.Context, id primitive.ObjectID, actor *models.User) (*models.Project, error) {
	var (
		project *models.Project
		err     error
	)
	switch access.ProjectReadScope(actor.Role) {
	case access.ScopeGlobal:
		project, err = s.projects.FindByID(ctx, id)
	default:
		project, err = s.projects.FindByIDAndOwner(ctx, id, actor.ID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Project", "id", id.Hex())
		}
		return nil, err
	}
	return project, nil
}

// GetProjectEntityByID resolves a project by id with no actor scoping. Callers
// must have authorized the actor separately.
func (s *ProjectService) GetProjectEntityByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Project", "id", id.Hex())
		}
		return nil, err
	}
	return project, nil
}

// CreateProject persists a new project owned by the actor. Regular users
// cannot create projects.
func (s *ProjectService) CreateProject(ctx context.Context, actor *models.User, req *models.CreateProjectRequest) (*models.ProjectResponse, error) {
	if !access.CanCreateProject(actor.Role) {
		return nil, apperrors.AccessDenied("Users cannot create projects")
	}

	now := time.Now()
	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Insert(ctx, project); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, project), nil
}

// UpdateProject applies a partial update to a project resolved under the
// actor's read scope. Read access implies write access here.
func (s *ProjectService) UpdateProject(ctx context.Context, actor *models.User, id string, req *models.UpdateProjectRequest) (*models.ProjectResponse, error) {
	projectID, err := parseID("Project", id)
	if err != nil {
		return nil, err
	}

	project, err := s.ResolveProjectScope(ctx, projectID, actor)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, project), nil
}

// DeleteProject deletes a project resolved under the actor's read scope
func (s *ProjectService) DeleteProject(ctx context.Context, actor *models.User, id string) error {
	projectID, err := parseID("Project", id)
	if err != nil {
		return err
	}

	project, err := s.ResolveProjectScope(ctx, projectID, actor)
	if err != nil {
		return err
	}
	return s.projects.Delete(ctx, project.ID)
}

func (s *ProjectService) toResponse(ctx context.Context, project *models.Project) *models.ProjectResponse {
	resp := &models.ProjectResponse{
		ID:          project.ID.Hex(),
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID.Hex(),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
	if owner, err := s.users.FindByID(ctx, project.OwnerID); err == nil {
		resp.OwnerEmail = owner.Email
	}
	return resp
}

func (s *ProjectService) toListResponse(ctx context.Context, projects []models.Project, totalCount int64, page repository.Page) *models.ProjectListResponse {
	responses := make([]models.ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = *s.toResponse(ctx, &projects[i])
	}
	return &models.ProjectListResponse{
		Projects:   responses,
		TotalCount: totalCount,
		Page:       page.Number,
		Limit:      page.Limit,
	}
}

package services

import (
	"context"

	"github.com/gkharab/projecthub-api/internal/apperrors"
	"github.com/gkharab/projecthub-api/internal/models"
	"github.com/gkharab/projecthub-api/internal/repository"
)

// StatsService aggregates task and user counts for dashboards
type StatsService struct {
	users          repository.UserRepository
	projects       repository.ProjectRepository
	tasks          repository.TaskRepository
	projectService *ProjectService
}

// NewStatsService creates a new StatsService
func NewStatsService(users repository.UserRepository, projects repository.ProjectRepository, tasks repository.TaskRepository, projectService *ProjectService) *StatsService {
	return &StatsService{
		users:          users,
		projects:       projects,
		tasks:          tasks,
		projectService: projectService,
	}
}

// GetProjectStats returns task counts by status and priority for a project
// resolved under the actor's read scope
func (s *StatsService) GetProjectStats(ctx context.Context, actor *models.User, projectID string) (*models.ProjectStatsResponse, error) {
	id, err := parseID("Project", projectID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectService.ResolveProjectScope(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	total, err := s.tasks.CountByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[models.TaskStatus]int64, 3)
	for _, status := range []models.TaskStatus{models.StatusTodo, models.StatusInProgress, models.StatusDone} {
		count, err := s.tasks.CountByProjectAndStatus(ctx, project.ID, status)
		if err != nil {
			return nil, err
		}
		byStatus[status] = count
	}

	byPriority := make(map[models.TaskPriority]int64, 3)
	for _, priority := range []models.TaskPriority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh} {
		count, err := s.tasks.CountByProjectAndPriority(ctx, project.ID, priority)
		if err != nil {
			return nil, err
		}
		byPriority[priority] = count
	}

	return &models.ProjectStatsResponse{
		ProjectID:       project.ID.Hex(),
		ProjectName:     project.Name,
		TotalTasks:      total,
		TasksByStatus:   byStatus,
		TasksByPriority: byPriority,
	}, nil
}

// GetOverviewMetrics returns system-wide counts. Admin only.
func (s *StatsService) GetOverviewMetrics(ctx context.Context, actor *models.User) (*models.OverviewMetricsResponse, error) {
	if actor.Role != models.RoleAdmin {
		return nil, apperrors.AccessDenied("Only administrators can access dashboard metrics")
	}

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalProjects, err := s.projects.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalTasks, err := s.tasks.Count(ctx)
	if err != nil {
		return nil, err
	}

	tasksByStatus := make(map[models.TaskStatus]int64, 3)
	for _, status := range []models.TaskStatus{models.StatusTodo, models.StatusInProgress, models.StatusDone} {
		count, err := s.tasks.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		tasksByStatus[status] = count
	}

	usersByRole := make(map[models.Role]int64, 3)
	for _, role := range []models.Role{models.RoleAdmin, models.RoleManager, models.RoleUser} {
		count, err := s.users.CountByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		usersByRole[role] = count
	}

	return &models.OverviewMetricsResponse{
		TotalUsers:    totalUsers,
		TotalProjects: totalProjects,
		TotalTasks:    totalTasks,
		TasksByStatus: tasksByStatus,
		UsersByRole:   usersByRole,
	}, nil
}

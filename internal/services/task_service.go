package services

import (
	"context"
	"errors"
	"time"

	"github.com/gkharab/projecthub-api/internal/access"
	"github.com/gkharab/projecthub-api/internal/apperrors"
	"github.com/gkharab/projecthub-api/internal/models"
	"github.com/gkharab/projecthub-api/internal/repository"
)

// TaskService provides task operations. Read access is scoped per role:
// admins see everything, managers see tasks in projects they own, regular
// users see only tasks assigned to them.
type TaskService struct {
	tasks          repository.TaskRepository
	userService    *UserService
	projectService *ProjectService
}

// NewTaskService creates a new TaskService
func NewTaskService(tasks repository.TaskRepository, userService *UserService, projectService *ProjectService) *TaskService {
	return &TaskService{
		tasks:          tasks,
		userService:    userService,
		projectService: projectService,
	}
}

// GetAllTasks lists every task. Admin only.
func (s *TaskService) GetAllTasks(ctx context.Context, actor *models.User, page repository.Page) (*models.TaskListResponse, error) {
	if actor.Role != models.RoleAdmin {
		return nil, apperrors.AccessDenied("Only administrators can access all tasks")
	}

	tasks, totalCount, err := s.tasks.ListAll(ctx, page)
	if err != nil {
		return nil, err
	}
	return s.toListResponse(ctx, tasks, totalCount, page), nil
}

// GetMyTasks lists the tasks assigned to the actor
func (s *TaskService) GetMyTasks(ctx context.Context, actor *models.User, page repository.Page) (*models.TaskListResponse, error) {
	tasks, totalCount, err := s.tasks.ListByAssignee(ctx, actor.ID, page)
	if err != nil {
		return nil, err
	}
	return s.toListResponse(ctx, tasks, totalCount, page), nil
}

// GetTasksByProject lists the tasks of a project resolved under the actor's
// project scope
func (s *TaskService) GetTasksByProject(ctx context.Context, actor *models.User, projectID string, page repository.Page) (*models.TaskListResponse, error) {
	project, err := s.resolveProjectScope(ctx, projectID, actor)
	if err != nil {
		return nil, err
	}

	tasks, totalCount, err := s.tasks.ListByProject(ctx, project.ID, page)
	if err != nil {
		return nil, err
	}
	return s.toListResponse(ctx, tasks, totalCount, page), nil
}

// GetTasksByProjectAndStatus lists a project's tasks filtered by status
func (s *TaskService) GetTasksByProjectAndStatus(ctx context.Context, actor *models.User, projectID string, status models.TaskStatus, page repository.Page) (*models.TaskListResponse, error) {
	project, err := s.resolveProjectScope(ctx, projectID, actor)
	if err != nil {
		return nil, err
	}

	tasks, totalCount, err := s.tasks.ListByProjectAndStatus(ctx, project.ID, status, page)
	if err != nil {
		return nil, err
	}
	return s.toListResponse(ctx, tasks, totalCount, page), nil
}

// GetTasksByProjectAndPriority lists a project's tasks filtered by priority
func (s *TaskService) GetTasksByProjectAndPriority(ctx context.Context, actor *models.User, projectID string, priority models.TaskPriority, page repository.Page) (*models.TaskListResponse, error) {
	project, err := s.resolveProjectScope(ctx, projectID, actor)
	if err != nil {
		return nil, err
	}

	tasks, totalCount, err := s.tasks.ListByProjectAndPriority(ctx, project.ID, priority, page)
	if err != nil {
		return nil, err
	}
	return s.toListResponse(ctx, tasks, totalCount, page), nil
}

// GetTaskByID resolves a task under the actor's read scope and returns its
// client projection
func (s *TaskService) GetTaskByID(ctx context.Context, actor *models.User, id string) (*models.TaskResponse, error) {
	task, err := s.resolveTaskForRead(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, task), nil
}

// CreateTask creates a task in a project resolved under the actor's project
// scope. New tasks always start in TODO; any status on the request is
// ignored. Regular users own no projects, so they structurally cannot create
// tasks.
func (s *TaskService) CreateTask(ctx context.Context, actor *models.User, req *models.CreateTaskRequest) (*models.TaskResponse, error) {
	project, err := s.resolveProjectScope(ctx, req.ProjectID, actor)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusTodo,
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		ProjectID:   project.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if req.AssignedUserID != nil {
		assignee, err := s.resolveUser(ctx, *req.AssignedUserID)
		if err != nil {
			return nil, err
		}
		task.AssignedUserID = &assignee.ID
	}

	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, task), nil
}

// UpdateTask applies a partial update to a task the actor may modify. Absent
// fields leave the task unchanged. Reassignment through this path is denied
// to regular users even though canModify already excludes them.
func (s *TaskService) UpdateTask(ctx context.Context, actor *models.User, id string, req *models.UpdateTaskRequest) (*models.TaskResponse, error) {
	task, err := s.resolveTaskForRead(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	canModify, err := s.canModify(ctx, task, actor)
	if err != nil {
		return nil, err
	}
	if !canModify {
		return nil, apperrors.AccessDenied("You don't have permission to update this task")
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = models.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = models.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if req.AssignedUserID != nil {
		if actor.Role == models.RoleUser {
			return nil, apperrors.AccessDenied("Regular users cannot assign tasks")
		}
		assignee, err := s.resolveUser(ctx, *req.AssignedUserID)
		if err != nil {
			return nil, err
		}
		task.AssignedUserID = &assignee.ID
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, task), nil
}

// UpdateTaskStatus moves a task between statuses. Only the assigned user may
// do this, regardless of role or project ownership; it is the one mutation
// path open to the assignee.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, actor *models.User, id string, status models.TaskStatus) (*models.TaskResponse, error) {
	task, err := s.resolveTaskForRead(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	assigneeMatch := task.AssignedUserID != nil && *task.AssignedUserID == actor.ID
	if !access.CanUpdateTaskStatus(assigneeMatch) {
		return nil, apperrors.AccessDenied("Only the assigned user can update task status")
	}

	task.Status = status
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, task), nil
}

// AssignTask reassigns a task to a user. Regular users are rejected before
// any lookup, so they never learn whether the task id exists.
func (s *TaskService) AssignTask(ctx context.Context, actor *models.User, id, userID string) (*models.TaskResponse, error) {
	if !access.CanAssignTasks(actor.Role) {
		return nil, apperrors.AccessDenied("Regular users cannot assign tasks")
	}

	task, err := s.resolveTaskForRead(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	assignee, err := s.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	task.AssignedUserID = &assignee.ID
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, task), nil
}

// DeleteTask deletes a task the actor may modify
func (s *TaskService) DeleteTask(ctx context.Context, actor *models.User, id string) error {
	task, err := s.resolveTaskForRead(ctx, id, actor)
	if err != nil {
		return err
	}

	canModify, err := s.canModify(ctx, task, actor)
	if err != nil {
		return err
	}
	if !canModify {
		return apperrors.AccessDenied("You don't have permission to delete this task")
	}
	return s.tasks.Delete(ctx, task.ID)
}

// resolveProjectScope resolves a project id (hex) under the actor's scope,
// reusing the project resolver
func (s *TaskService) resolveProjectScope(ctx context.Context, projectID string, actor *models.User) (*models.Project, error) {
	id, err := parseID("Project", projectID)
	if err != nil {
		return nil, err
	}
	return s.projectService.ResolveProjectScope(ctx, id, actor)
}

// resolveTaskForRead resolves a task by id under the actor's scope. Admins
// and managers look up by id alone; a manager who does not own the task's
// project is then denied with Forbidden, revealing existence. Regular users
// look up scoped to their assignment and get NotFound on any mismatch.
func (s *TaskService) resolveTaskForRead(ctx context.Context, id string, actor *models.User) (*models.Task, error) {
	taskID, err := parseID("Task", id)
	if err != nil {
		return nil, err
	}

	var task *models.Task
	switch access.TaskReadScope(actor.Role) {
	case access.ScopeAssignee:
		task, err = s.tasks.FindByIDAndAssignee(ctx, taskID, actor.ID)
	default:
		task, err = s.tasks.FindByID(ctx, taskID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Task", "id", id)
		}
		return nil, err
	}

	if actor.Role == models.RoleManager {
		ownerMatch, err := s.taskProjectOwnedBy(ctx, task, actor)
		if err != nil {
			return nil, err
		}
		if access.TaskReadAfterLookup(actor.Role, ownerMatch) == access.DenyForbidden {
			return nil, apperrors.AccessDenied("You don't have permission to access this task")
		}
	}
	return task, nil
}

// canModify decides general mutation eligibility for a resolved task
func (s *TaskService) canModify(ctx context.Context, task *models.Task, actor *models.User) (bool, error) {
	ownerMatch := false
	if actor.Role == models.RoleManager {
		var err error
		ownerMatch, err = s.taskProjectOwnedBy(ctx, task, actor)
		if err != nil {
			return false, err
		}
	}
	return access.CanModifyTask(actor.Role, ownerMatch), nil
}

func (s *TaskService) taskProjectOwnedBy(ctx context.Context, task *models.Task, actor *models.User) (bool, error) {
	project, err := s.projectService.GetProjectEntityByID(ctx, task.ProjectID)
	if err != nil {
		return false, err
	}
	return project.OwnerID == actor.ID, nil
}

func (s *TaskService) resolveUser(ctx context.Context, id string) (*models.User, error) {
	userID, err := parseID("User", id)
	if err != nil {
		return nil, err
	}
	return s.userService.GetUserEntityByID(ctx, userID)
}

func (s *TaskService) toResponse(ctx context.Context, task *models.Task) *models.TaskResponse {
	resp := &models.TaskResponse{
		ID:          task.ID.Hex(),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		ProjectID:   task.ProjectID.Hex(),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if project, err := s.projectService.GetProjectEntityByID(ctx, task.ProjectID); err == nil {
		resp.ProjectName = project.Name
	}
	if task.AssignedUserID != nil {
		resp.AssignedUserID = task.AssignedUserID.Hex()
		if assignee, err := s.userService.GetUserEntityByID(ctx, *task.AssignedUserID); err == nil {
			resp.AssignedUserEmail = assignee.Email
		}
	}
	return resp
}

func (s *TaskService) toListResponse(ctx context.Context, tasks []models.Task, totalCount int64, page repository.Page) *models.TaskListResponse {
	responses := make([]models.TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *s.toResponse(ctx, &tasks[i])
	}
	return &models.TaskListResponse{
		Tasks:      responses,
		TotalCount: totalCount,
		Page:       page.Number,
		Limit:      page.Limit,
	}
}

package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gkharab/projecthub-api/internal/models"
	"github.com/gkharab/projecthub-api/internal/repository"
)

// In-memory repository fakes. Lookups return copies so service-side mutation
// only becomes visible through Update. Each fake records the names of the
// methods invoked, which the no-lookup-leak tests assert on.

type fakeUserRepo struct {
	users map[primitive.ObjectID]models.User
	calls []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]models.User)}
}

func (f *fakeUserRepo) add(user models.User) models.User {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.calls = append(f.calls, "FindByID")
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.calls = append(f.calls, "FindByEmail")
	for _, user := range f.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.calls = append(f.calls, "ExistsByEmail")
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Insert(_ context.Context, user *models.User) error {
	f.calls = append(f.calls, "Insert")
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id primitive.ObjectID, role models.Role) error {
	f.calls = append(f.calls, "UpdateRole")
	user, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	f.users[id] = user
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, page repository.Page) ([]models.User, int64, error) {
	f.calls = append(f.calls, "List")
	out := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role models.Role) (int64, error) {
	var count int64
	for _, user := range f.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeProjectRepo struct {
	projects map[primitive.ObjectID]models.Project
	calls    []string
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[primitive.ObjectID]models.Project)}
}

func (f *fakeProjectRepo) add(project models.Project) models.Project {
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	f.projects[project.ID] = project
	return project
}

func (f *fakeProjectRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	f.calls = append(f.calls, "FindByID")
	project, ok := f.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &project, nil
}

func (f *fakeProjectRepo) FindByIDAndOwner(_ context.Context, id, ownerID primitive.ObjectID) (*models.Project, error) {
	f.calls = append(f.calls, "FindByIDAndOwner")
	project, ok := f.projects[id]
	if !ok || project.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	return &project, nil
}

func (f *fakeProjectRepo) ListAll(_ context.Context, page repository.Page) ([]models.Project, int64, error) {
	f.calls = append(f.calls, "ListAll")
	out := make([]models.Project, 0, len(f.projects))
	for _, project := range f.projects {
		out = append(out, project)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProjectRepo) ListByOwner(_ context.Context, ownerID primitive.ObjectID, page repository.Page) ([]models.Project, int64, error) {
	f.calls = append(f.calls, "ListByOwner")
	var out []models.Project
	for _, project := range f.projects {
		if project.OwnerID == ownerID {
			out = append(out, project)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProjectRepo) Insert(_ context.Context, project *models.Project) error {
	f.calls = append(f.calls, "Insert")
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	f.projects[project.ID] = *project
	return nil
}

func (f *fakeProjectRepo) Update(_ context.Context, project *models.Project) error {
	f.calls = append(f.calls, "Update")
	if _, ok := f.projects[project.ID]; !ok {
		return repository.ErrNotFound
	}
	project.UpdatedAt = time.Now()
	f.projects[project.ID] = *project
	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.calls = append(f.calls, "Delete")
	if _, ok := f.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.projects)), nil
}

type fakeTaskRepo struct {
	tasks map[primitive.ObjectID]models.Task
	calls []string
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[primitive.ObjectID]models.Task)}
}

func (f *fakeTaskRepo) add(task models.Task) models.Task {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	f.tasks[task.ID] = task
	return task
}

func (f *fakeTaskRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	f.calls = append(f.calls, "FindByID")
	task, ok := f.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &task, nil
}

func (f *fakeTaskRepo) FindByIDAndAssignee(_ context.Context, id, assigneeID primitive.ObjectID) (*models.Task, error) {
	f.calls = append(f.calls, "FindByIDAndAssignee")
	task, ok := f.tasks[id]
	if !ok || task.AssignedUserID == nil || *task.AssignedUserID != assigneeID {
		return nil, repository.ErrNotFound
	}
	return &task, nil
}

func (f *fakeTaskRepo) ListAll(_ context.Context, page repository.Page) ([]models.Task, int64, error) {
	f.calls = append(f.calls, "ListAll")
	out := make([]models.Task, 0, len(f.tasks))
	for _, task := range f.tasks {
		out = append(out, task)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTaskRepo) ListByProject(_ context.Context, projectID primitive.ObjectID, page repository.Page) ([]models.Task, int64, error) {
	f.calls = append(f.calls, "ListByProject")
	var out []models.Task
	for _, task := range f.tasks {
		if task.ProjectID == projectID {
			out = append(out, task)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeTaskRepo) ListByProjectAndStatus(_ context.Context, projectID primitive.ObjectID, status models.TaskStatus, page repository.Page) ([]models.Task, int64, error) {
	f.calls = append(f.calls, "ListByProjectAndStatus")
	var out []models.Task
	for _, task := range f.tasks {
		if task.ProjectID == projectID && task.Status == status {
			out = append(out, task)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeTaskRepo) ListByProjectAndPriority(_ context.Context, projectID primitive.ObjectID, priority models.TaskPriority, page repository.Page) ([]models.Task, int64, error) {
	f.calls = append(f.calls, "ListByProjectAndPriority")
	var out []models.Task
	for _, task := range f.tasks {
		if task.ProjectID == projectID && task.Priority == priority {
			out = append(out, task)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeTaskRepo) ListByAssignee(_ context.Context, assigneeID primitive.ObjectID, page repository.Page) ([]models.Task, int64, error) {
	f.calls = append(f.calls, "ListByAssignee")
	var out []models.Task
	for _, task := range f.tasks {
		if task.AssignedUserID != nil && *task.AssignedUserID == assigneeID {
			out = append(out, task)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeTaskRepo) Insert(_ context.Context, task *models.Task) error {
	f.calls = append(f.calls, "Insert")
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	f.calls = append(f.calls, "Update")
	if _, ok := f.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	task.UpdatedAt = time.Now()
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.calls = append(f.calls, "Delete")
	if _, ok := f.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.tasks)), nil
}

func (f *fakeTaskRepo) CountByStatus(_ context.Context, status models.TaskStatus) (int64, error) {
	var count int64
	for _, task := range f.tasks {
		if task.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeTaskRepo) CountByProject(_ context.Context, projectID primitive.ObjectID) (int64, error) {
	var count int64
	for _, task := range f.tasks {
		if task.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

func (f *fakeTaskRepo) CountByProjectAndStatus(_ context.Context, projectID primitive.ObjectID, status models.TaskStatus) (int64, error) {
	var count int64
	for _, task := range f.tasks {
		if task.ProjectID == projectID && task.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeTaskRepo) CountByProjectAndPriority(_ context.Context, projectID primitive.ObjectID, priority models.TaskPriority) (int64, error) {
	var count int64
	for _, task := range f.tasks {
		if task.ProjectID == projectID && task.Priority == priority {
			count++
		}
	}
	return count, nil
}

// testEnv wires the fakes into the real services the way main does
type testEnv struct {
	userRepo    *fakeUserRepo
	projectRepo *fakeProjectRepo
	taskRepo    *fakeTaskRepo

	userService    *UserService
	projectService *ProjectService
	taskService    *TaskService
	statsService   *StatsService
}

func newTestEnv() *testEnv {
	userRepo := newFakeUserRepo()
	projectRepo := newFakeProjectRepo()
	taskRepo := newFakeTaskRepo()

	userService := NewUserService(userRepo)
	projectService := NewProjectService(projectRepo, userRepo)
	taskService := NewTaskService(taskRepo, userService, projectService)
	statsService := NewStatsService(userRepo, projectRepo, taskRepo, projectService)

	return &testEnv{
		userRepo:       userRepo,
		projectRepo:    projectRepo,
		taskRepo:       taskRepo,
		userService:    userService,
		projectService: projectService,
		taskService:    taskService,
		statsService:   statsService,
	}
}

func (e *testEnv) addUser(email string, role models.Role) *models.User {
	user := e.userRepo.add(models.User{Email: email, Role: role})
	return &user
}

func (e *testEnv) addProject(name string, owner *models.User) *models.Project {
	project := e.projectRepo.add(models.Project{Name: name, OwnerID: owner.ID})
	return &project
}

func (e *testEnv) addTask(title string, project *models.Project, assignee *models.User) *models.Task {
	task := models.Task{
		Title:     title,
		Status:    models.StatusTodo,
		Priority:  models.PriorityMedium,
		ProjectID: project.ID,
	}
	if assignee != nil {
		task.AssignedUserID = &assignee.ID
	}
	added := e.taskRepo.add(task)
	return &added
}

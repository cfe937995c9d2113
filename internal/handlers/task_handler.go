package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/gkharab/projecthub-api/internal/middleware"
	"github.com/gkharab/projecthub-api/internal/models"
	"github.com/gkharab/projecthub-api/internal/services"
	"github.com/gkharab/projecthub-api/internal/utils"
)

// TaskHandler handles task related HTTP requests
type TaskHandler struct {
	taskService *services.TaskService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(ts *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: ts,
		validator:   utils.NewValidator(),
	}
}

// ListTasks handles listing every task. Admin route.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	resp, err := h.taskService.GetAllTasks(r.Context(), actor, parsePagination(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ListMyTasks handles listing the tasks assigned to the actor
func (h *TaskHandler) ListMyTasks(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	resp, err := h.taskService.GetMyTasks(r.Context(), actor, parsePagination(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ListTasksByProject handles listing a project's tasks
func (h *TaskHandler) ListTasksByProject(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	resp, err := h.taskService.GetTasksByProject(r.Context(), actor, mux.Vars(r)["projectId"], parsePagination(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ListTasksByProjectAndStatus handles listing a project's tasks filtered by status
func (h *TaskHandler) ListTasksByProjectAndStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	vars := mux.Vars(r)
	status := models.TaskStatus(strings.ToUpper(vars["status"]))
	if !status.Valid() {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid task status. Must be 'TODO', 'IN_PROGRESS', or 'DONE'.")
		return
	}

	resp, err := h.taskService.GetTasksByProjectAndStatus(r.Context(), actor, vars["projectId"], status, parsePagination(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ListTasksByProjectAndPriority handles listing a project's tasks filtered by priority
func (h *TaskHandler) ListTasksByProjectAndPriority(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	vars := mux.Vars(r)
	priority := models.TaskPriority(strings.ToUpper(vars["priority"]))
	if !priority.Valid() {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid task priority. Must be 'LOW', 'MEDIUM', or 'HIGH'.")
		return
	}

	resp, err := h.taskService.GetTasksByProjectAndPriority(r.Context(), actor, vars["projectId"], priority, parsePagination(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GetTaskByID handles retrieving a single task under the actor's scope
func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	resp, err := h.taskService.GetTaskByID(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// CreateTask handles creating a new task
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithValidationError(w, err)
		return
	}

	resp, err := h.taskService.CreateTask(r.Context(), actor, &req)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// UpdateTask handles a partial task update
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithValidationError(w, err)
		return
	}

	resp, err := h.taskService.UpdateTask(r.Context(), actor, mux.Vars(r)["id"], &req)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// UpdateTaskStatus handles the assignee-only status transition
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	vars := mux.Vars(r)
	status := models.TaskStatus(strings.ToUpper(vars["status"]))
	if !status.Valid() {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid task status. Must be 'TODO', 'IN_PROGRESS', or 'DONE'.")
		return
	}

	resp, err := h.taskService.UpdateTaskStatus(r.Context(), actor, vars["id"], status)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// AssignTask handles reassigning a task to another user
func (h *TaskHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	vars := mux.Vars(r)
	resp, err := h.taskService.AssignTask(r.Context(), actor, vars["id"], vars["userId"])
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// DeleteTask handles deleting a task
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

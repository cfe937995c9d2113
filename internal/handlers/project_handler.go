package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/gkharab/projecthub-api/internal/middleware"
	"github.com/gkharab/projecthub-api/internal/models"
	"github.com/gkharab/projecthub-api/internal/services"
	"github.com/gkharab/projecthub-api/internal/utils"
)

// ProjectHandler handles project related HTTP requests
type ProjectHandler struct {
	projectService *services.ProjectService
	validator      *validator.Validate
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: ps,
		validator:      utils.NewValidator(),
	}
}

// ListProjects handles listing every project. Admin route.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	resp, err := h.projectService.GetAllProjects(r.Context(), actor, parsePagination(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ListMyProjects handles listing the actor's own projects
func (h *ProjectHandler) ListMyProjects(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	resp, err := h.projectService.GetMyProjects(r.Context(), actor, parsePagination(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GetProjectByID handles retrieving a single project under the actor's scope
func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	resp, err := h.projectService.GetProjectByID(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// CreateProject handles creating a new project owned by the actor
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithValidationError(w, err)
		return
	}

	resp, err := h.projectService.CreateProject(r.Context(), actor, &req)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// UpdateProject handles a partial project update
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithValidationError(w, err)
		return
	}

	resp, err := h.projectService.UpdateProject(r.Context(), actor, mux.Vars(r)["id"], &req)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// DeleteProject handles deleting a project
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.projectService.DeleteProject(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

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

// UserHandler handles user related HTTP requests
type UserHandler struct {
	userService *services.UserService
	validator   *validator.Validate
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(us *services.UserService) *UserHandler {
	return &UserHandler{
		userService: us,
		validator:   utils.NewValidator(),
	}
}

// ListUsers handles listing all users with pagination. Admin route.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.userService.GetAllUsers(r.Context(), parsePagination(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GetUserByID handles retrieving a single user. Admin route.
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	resp, err := h.userService.GetUserByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GetCurrentUser returns the acting user's own profile
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, actor.ToResponse())
}

// AssignRole handles changing a user's role. Admin route.
func (h *UserHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	var req models.RoleAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithValidationError(w, err)
		return
	}

	resp, err := h.userService.AssignRole(r.Context(), mux.Vars(r)["id"], req.Role)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gkharab/projecthub-api/internal/middleware"
	"github.com/gkharab/projecthub-api/internal/services"
	"github.com/gkharab/projecthub-api/internal/utils"
)

// StatsHandler handles dashboard and per-project statistics requests
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(ss *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: ss}
}

// GetProjectStats returns task counts for a project under the actor's scope
func (h *StatsHandler) GetProjectStats(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	resp, err := h.statsService.GetProjectStats(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GetOverviewMetrics returns system-wide counts. Admin route.
func (h *StatsHandler) GetOverviewMetrics(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	resp, err := h.statsService.GetOverviewMetrics(r.Context(), actor)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

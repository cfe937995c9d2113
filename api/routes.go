package api

import (
	"github.com/gorilla/mux"

	"github.com/gkharab/projecthub-api/internal/handlers"
	"github.com/gkharab/projecthub-api/internal/middleware"
)

// SetupRoutes configures all API routes. Coarse per-route permission strings
// narrow the actor class before the fine-grained checks in the services run;
// routes gated with "" require authentication only.
func SetupRoutes(
	router *mux.Router,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	projectHandler *handlers.ProjectHandler,
	taskHandler *handlers.TaskHandler,
	statsHandler *handlers.StatsHandler,
) {
	v1 := router.PathPrefix("/api/v1").Subrouter()

	// Authentication routes (public)
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// User routes (admin-gated except /me)
	v1.HandleFunc("/users", authMiddleware.JWTAuth(userHandler.ListUsers, "admin:read")).Methods("GET")
	v1.HandleFunc("/users/me", authMiddleware.JWTAuth(userHandler.GetCurrentUser, "")).Methods("GET")
	v1.HandleFunc("/users/{id}", authMiddleware.JWTAuth(userHandler.GetUserByID, "admin:read")).Methods("GET")
	v1.HandleFunc("/users/{id}/role", authMiddleware.JWTAuth(userHandler.AssignRole, "admin:update")).Methods("PATCH")

	// Project routes
	v1.HandleFunc("/projects", authMiddleware.JWTAuth(projectHandler.ListProjects, "admin:read")).Methods("GET")
	v1.HandleFunc("/projects/my", authMiddleware.JWTAuth(projectHandler.ListMyProjects, "")).Methods("GET")
	// ADMIN holds manager:create too, so one permission string covers both roles
	v1.HandleFunc("/projects", authMiddleware.JWTAuth(projectHandler.CreateProject, "manager:create")).Methods("POST")
	v1.HandleFunc("/projects/{id}/stats", authMiddleware.JWTAuth(statsHandler.GetProjectStats, "")).Methods("GET")
	v1.HandleFunc("/projects/{id}", authMiddleware.JWTAuth(projectHandler.GetProjectByID, "")).Methods("GET")
	v1.HandleFunc("/projects/{id}", authMiddleware.JWTAuth(projectHandler.UpdateProject, "")).Methods("PUT")
	v1.HandleFunc("/projects/{id}", authMiddleware.JWTAuth(projectHandler.DeleteProject, "")).Methods("DELETE")

	// Task routes
	v1.HandleFunc("/tasks", authMiddleware.JWTAuth(taskHandler.ListTasks, "admin:read")).Methods("GET")
	v1.HandleFunc("/tasks/my", authMiddleware.JWTAuth(taskHandler.ListMyTasks, "")).Methods("GET")
	v1.HandleFunc("/tasks/project/{projectId}", authMiddleware.JWTAuth(taskHandler.ListTasksByProject, "")).Methods("GET")
	v1.HandleFunc("/tasks/project/{projectId}/status/{status}", authMiddleware.JWTAuth(taskHandler.ListTasksByProjectAndStatus, "")).Methods("GET")
	v1.HandleFunc("/tasks/project/{projectId}/priority/{priority}", authMiddleware.JWTAuth(taskHandler.ListTasksByProjectAndPriority, "")).Methods("GET")
	v1.HandleFunc("/tasks", authMiddleware.JWTAuth(taskHandler.CreateTask, "")).Methods("POST")
	v1.HandleFunc("/tasks/{id}/status/{status}", authMiddleware.JWTAuth(taskHandler.UpdateTaskStatus, "")).Methods("PATCH")
	v1.HandleFunc("/tasks/{id}/assign/{userId}", authMiddleware.JWTAuth(taskHandler.AssignTask, "manager:update")).Methods("PATCH")
	v1.HandleFunc("/tasks/{id}", authMiddleware.JWTAuth(taskHandler.GetTaskByID, "")).Methods("GET")
	v1.HandleFunc("/tasks/{id}", authMiddleware.JWTAuth(taskHandler.UpdateTask, "")).Methods("PUT")
	v1.HandleFunc("/tasks/{id}", authMiddleware.JWTAuth(taskHandler.DeleteTask, "")).Methods("DELETE")

	// Dashboard routes (admin)
	v1.HandleFunc("/dashboard/metrics", authMiddleware.JWTAuth(statsHandler.GetOverviewMetrics, "admin:read")).Methods("GET")
}

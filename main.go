package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/gkharab/projecthub-api/api"
	"github.com/gkharab/projecthub-api/internal/config"
	"github.com/gkharab/projecthub-api/internal/database"
	"github.com/gkharab/projecthub-api/internal/handlers"
	"github.com/gkharab/projecthub-api/internal/middleware"
	"github.com/gkharab/projecthub-api/internal/repository"
	"github.com/gkharab/projecthub-api/internal/services"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		logrus.WithError(err).Fatal("Error loading config")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// 2. Connect to MongoDB
	client, err := database.ConnectMongoDB(cfg.MongoURI)
	if err != nil {
		logrus.WithError(err).Fatal("Error connecting to MongoDB")
	}
	defer func() {
		if err = client.Disconnect(context.Background()); err != nil {
			logrus.WithError(err).Error("Error disconnecting from MongoDB")
		}
	}()

	db := client.Database(cfg.DBName)
	if err := database.EnsureIndexes(db); err != nil {
		logrus.WithError(err).Fatal("Error creating database indexes")
	}

	// 3. Initialize repositories
	userRepo := repository.NewMongoUserRepository(db)
	projectRepo := repository.NewMongoProjectRepository(db)
	taskRepo := repository.NewMongoTaskRepository(db)

	// 4. Initialize services
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, userService, projectService)
	authService := services.NewAuthService(userRepo, []byte(cfg.JWTSecret))
	statsService := services.NewStatsService(userRepo, projectRepo, taskRepo, projectService)

	// 5. Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// 6. Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.JWTSecret), userRepo)

	// 7. Setup router
	router := mux.NewRouter()
	api.SetupRoutes(router, authMiddleware, authHandler, userHandler, projectHandler, taskHandler, statsHandler)

	handlerWithCORS := cors.AllowAll().Handler(router)

	// 8. Start HTTP server
	logrus.WithField("port", cfg.Port).Info("Server starting")
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlerWithCORS,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Fatalf("Could not listen on %s", cfg.Port)
	}
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project represents a project owned by exactly one user. The owner is set at
// creation and never changes afterwards.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// CreateProjectRequest is for creating a new project
type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateProjectRequest is for updating an existing project. Absent fields
// leave the corresponding project fields unchanged.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// ProjectResponse is the client-facing projection of a project
type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	OwnerEmail  string    `json:"owner_email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectListResponse holds projects and pagination metadata
type ProjectListResponse struct {
	Projects   []ProjectResponse `json:"projects"`
	TotalCount int64             `json:"total_count"`
	Page       int64             `json:"page"`
	Limit      int64             `json:"limit"`
}

// ProjectStatsResponse holds per-project task counts
type ProjectStatsResponse struct {
	ProjectID       string                 `json:"project_id"`
	ProjectName     string                 `json:"project_name"`
	TotalTasks      int64                  `json:"total_tasks"`
	TasksByStatus   map[TaskStatus]int64   `json:"tasks_by_status"`
	TasksByPriority map[TaskPriority]int64 `json:"tasks_by_priority"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// Valid reports whether s is a known task status
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// Valid reports whether p is a known task priority
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single task item. A task belongs to exactly one project
// for its whole lifetime; the assignee may change.
type Task struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Title          string              `bson:"title" json:"title"`
	Description    string              `bson:"description" json:"description"`
	Status         TaskStatus          `bson:"status" json:"status"`
	Priority       TaskPriority        `bson:"priority" json:"priority"`
	DueDate        *time.Time          `bson:"due_date,omitempty" json:"due_date,omitempty"`
	ProjectID      primitive.ObjectID  `bson:"project_id" json:"project_id"`
	AssignedUserID *primitive.ObjectID `bson:"assigned_user_id,omitempty" json:"assigned_user_id,omitempty"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updated_at"`
}

// CreateTaskRequest is for creating a new task. Any status supplied by the
// client is ignored: new tasks always start in TODO.
type CreateTaskRequest struct {
	Title          string     `json:"title" validate:"required,min=3,max=100"`
	Description    string     `json:"description" validate:"max=500"`
	Status         string     `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority       string     `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
	DueDate        *time.Time `json:"due_date,omitempty" validate:"omitempty,todayorfuture"`
	ProjectID      string     `json:"project_id" validate:"required"`
	AssignedUserID *string    `json:"assigned_user_id,omitempty"`
}

// UpdateTaskRequest is for updating an existing task. Absent fields leave the
// corresponding task fields unchanged.
type UpdateTaskRequest struct {
	Title          *string    `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Description    *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	Status         *string    `json:"status,omitempty" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority       *string    `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate        *time.Time `json:"due_date,omitempty" validate:"omitempty,todayorfuture"`
	AssignedUserID *string    `json:"assigned_user_id,omitempty"`
}

// TaskResponse is the client-facing projection of a task
type TaskResponse struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Status            TaskStatus   `json:"status"`
	Priority          TaskPriority `json:"priority"`
	DueDate           *time.Time   `json:"due_date,omitempty"`
	ProjectID         string       `json:"project_id"`
	ProjectName       string       `json:"project_name"`
	AssignedUserID    string       `json:"assigned_user_id,omitempty"`
	AssignedUserEmail string       `json:"assigned_user_email,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// TaskListResponse holds tasks and pagination metadata
type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	TotalCount int64          `json:"total_count"`
	Page       int64          `json:"page"`
	Limit      int64          `json:"limit"`
}

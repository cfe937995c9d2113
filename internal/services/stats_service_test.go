package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkharab/projecthub-api/internal/apperrors"
	"github.com/gkharab/projecthub-api/internal/models"
)

func TestGetProjectStats(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser("owner@test.com", models.RoleManager)
	outsider := env.addUser("outsider@test.com", models.RoleManager)
	project := env.addProject("Alpha", owner)

	env.taskRepo.add(models.Task{Title: "a", Status: models.StatusTodo, Priority: models.PriorityHigh, ProjectID: project.ID})
	env.taskRepo.add(models.Task{Title: "b", Status: models.StatusDone, Priority: models.PriorityHigh, ProjectID: project.ID})
	env.taskRepo.add(models.Task{Title: "c", Status: models.StatusDone, Priority: models.PriorityLow, ProjectID: project.ID})

	t.Run("owner gets per-status and per-priority counts", func(t *testing.T) {
		stats, err := env.statsService.GetProjectStats(context.Background(), owner, project.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "Alpha", stats.ProjectName)
		assert.Equal(t, int64(3), stats.TotalTasks)
		assert.Equal(t, int64(1), stats.TasksByStatus[models.StatusTodo])
		assert.Equal(t, int64(2), stats.TasksByStatus[models.StatusDone])
		assert.Equal(t, int64(0), stats.TasksByStatus[models.StatusInProgress])
		assert.Equal(t, int64(2), stats.TasksByPriority[models.PriorityHigh])
		assert.Equal(t, int64(1), stats.TasksByPriority[models.PriorityLow])
	})

	t.Run("non-owner gets NotFound through the project gate", func(t *testing.T) {
		_, err := env.statsService.GetProjectStats(context.Background(), outsider, project.ID.Hex())
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestGetOverviewMetrics(t *testing.T) {
	env := newTestEnv()
	admin := env.addUser("admin@test.com", models.RoleAdmin)
	manager := env.addUser("manager@test.com", models.RoleManager)
	project := env.addProject("Alpha", manager)
	env.addTask("a", project, nil)
	env.addTask("b", project, nil)

	t.Run("admin sees system-wide totals", func(t *testing.T) {
		metrics, err := env.statsService.GetOverviewMetrics(context.Background(), admin)
		require.NoError(t, err)
		assert.Equal(t, int64(2), metrics.TotalUsers)
		assert.Equal(t, int64(1), metrics.TotalProjects)
		assert.Equal(t, int64(2), metrics.TotalTasks)
		assert.Equal(t, int64(2), metrics.TasksByStatus[models.StatusTodo])
		assert.Equal(t, int64(1), metrics.UsersByRole[models.RoleAdmin])
		assert.Equal(t, int64(1), metrics.UsersByRole[models.RoleManager])
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		_, err := env.statsService.GetOverviewMetrics(context.Background(), manager)
		require.Error(t, err)
		assert.True(t, apperrors.IsAccessDenied(err))
	})
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkharab/projecthub-api/internal/apperrors"
	"github.com/gkharab/projecthub-api/internal/models"
)

func TestAssignRole(t *testing.T) {
	env := newTestEnv()
	user := env.addUser("promote@test.com", models.RoleUser)

	t.Run("promotes a user to manager", func(t *testing.T) {
		resp, err := env.userService.AssignRole(context.Background(), user.ID.Hex(), models.RoleManager)
		require.NoError(t, err)
		assert.Equal(t, models.RoleManager, resp.Role)
	})

	t.Run("unknown user fails NotFound", func(t *testing.T) {
		_, err := env.userService.AssignRole(context.Background(), "ffffffffffffffffffffffff", models.RoleAdmin)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestGetUserByID(t *testing.T) {
	env := newTestEnv()
	user := env.addUser("findme@test.com", models.RoleUser)

	resp, err := env.userService.GetUserByID(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "findme@test.com", resp.Email)

	_, err = env.userService.GetUserByID(context.Background(), "bogus")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetAllUsers(t *testing.T) {
	env := newTestEnv()
	env.addUser("a@test.com", models.RoleUser)
	env.addUser("b@test.com", models.RoleManager)

	resp, err := env.userService.GetAllUsers(context.Background(), testPage)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TotalCount)
	assert.Len(t, resp.Users, 2)
}

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triphive/internal/models"
)

func TestUserGetByEmailAbsent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserGetByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	seeded := seedUser(t, db, "traveler", "Ash")

	user, err := repo.GetByEmail(context.Background(), seeded.Email)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, seeded.ID, user.ID)
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	seedUser(t, db, "traveler", "Ash")

	err := repo.Create(ctx, &models.User{
		Username: "traveler",
		Email:    "other@example.com",
		Password: "hashed",
	})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUserUpdateByIDEmptyFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	user := seedUser(t, db, "traveler", "Ash")

	affected, err := repo.UpdateByID(context.Background(), user.ID, map[string]any{})
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestUserDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "traveler", "Ash")

	deleted, err := repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.GetByID(ctx, user.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

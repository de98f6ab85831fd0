package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triphive/internal/models"
)

func TestTripByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTripRepository(db)
	ctx := context.Background()

	alex := seedUser(t, db, "alex", "Alex")
	blair := seedUser(t, db, "blair", "Blair")
	lisbon := seedTrip(t, db, alex.ID, "Lisbon", "2025-06-01", "2025-06-03")
	porto := seedTrip(t, db, blair.ID, "Porto", "2025-07-01", "2025-07-02")

	require.NoError(t, repo.AddMember(ctx, &models.TripMember{TripID: lisbon.ID, UserID: alex.ID}))
	require.NoError(t, repo.AddMember(ctx, &models.TripMember{TripID: porto.ID, UserID: blair.ID}))

	trips, err := repo.ByUserID(ctx, alex.ID)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "Lisbon", trips[0].TripName)
	assert.Equal(t, "Alex", trips[0].FirstName)
	assert.Equal(t, "2025-06-01", trips[0].StartDate)
}

func TestTripMembersByTripID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTripRepository(db)
	ctx := context.Background()

	alex := seedUser(t, db, "alex", "Alex")
	blair := seedUser(t, db, "blair", "Blair")
	trip := seedTrip(t, db, alex.ID, "Lisbon", "2025-06-01", "2025-06-03")

	require.NoError(t, repo.AddMember(ctx, &models.TripMember{TripID: trip.ID, UserID: alex.ID}))
	require.NoError(t, repo.AddMember(ctx, &models.TripMember{TripID: trip.ID, UserID: blair.ID}))

	members, err := repo.MembersByTripID(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	for _, m := range members {
		assert.Equal(t, "Lisbon", m.TripName)
		assert.NotEmpty(t, m.Email)
	}
}

func TestTripCreateWithCreator(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTripRepository(db)
	ctx := context.Background()

	alex := seedUser(t, db, "alex", "Alex")
	trip := &models.Trip{
		CreatedBy: alex.ID,
		TripName:  "Lisbon",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-03",
	}
	require.NoError(t, repo.CreateWithCreator(ctx, trip))
	require.NotZero(t, trip.ID)

	members, err := repo.MembersByTripID(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Alex", members[0].FirstName)
}

func TestTripAddMemberDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTripRepository(db)
	ctx := context.Background()

	alex := seedUser(t, db, "alex", "Alex")
	trip := seedTrip(t, db, alex.ID, "Lisbon", "2025-06-01", "2025-06-03")

	require.NoError(t, repo.AddMember(ctx, &models.TripMember{TripID: trip.ID, UserID: alex.ID}))
	err := repo.AddMember(ctx, &models.TripMember{TripID: trip.ID, UserID: alex.ID})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestTripRemoveMember(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTripRepository(db)
	ctx := context.Background()

	alex := seedUser(t, db, "alex", "Alex")
	trip := seedTrip(t, db, alex.ID, "Lisbon", "2025-06-01", "2025-06-03")
	require.NoError(t, repo.AddMember(ctx, &models.TripMember{TripID: trip.ID, UserID: alex.ID}))

	removed, err := repo.RemoveMember(ctx, trip.ID, alex.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = repo.RemoveMember(ctx, trip.ID, alex.ID)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestTripGetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTripRepository(db)

	_, err := repo.GetByID(context.Background(), 42)
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"triphive/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Trip{},
		&models.Event{},
		&models.TripMember{},
		&models.Friendship{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

func TestFactoryCreateUser(t *testing.T) {
	db := setupTestDB(t)
	factory := NewFactory(db, Options{SkipBcrypt: true})

	user, err := factory.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.Username)
	assert.Contains(t, user.Email, "@example.com")
}

func TestFactoryCreateUserOverride(t *testing.T) {
	db := setupTestDB(t)
	factory := NewFactory(db, Options{SkipBcrypt: true})

	user, err := factory.CreateUser(func(u *models.User) {
		u.Username = "demo"
		u.Email = "demo@example.com"
	})
	require.NoError(t, err)
	assert.Equal(t, "demo", user.Username)
}

func TestFactoryCreateTripAndEvents(t *testing.T) {
	db := setupTestDB(t)
	factory := NewFactory(db, Options{SkipBcrypt: true})

	user, err := factory.CreateUser()
	require.NoError(t, err)

	trip, err := factory.CreateTrip(user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, trip.CreatedBy)

	start, end, err := trip.DateRange()
	require.NoError(t, err)
	assert.False(t, end.Before(start))

	event, err := factory.CreateEvent(trip)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, event.TripID)

	// The event lands inside the trip range.
	day, err := time.Parse(models.DateLayout, event.Date)
	require.NoError(t, err)
	assert.False(t, day.Before(start))
	assert.False(t, day.After(end))
}

func TestFactoryDryRunWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	factory := NewFactory(db, Options{SkipBcrypt: true, DryRun: true})

	user, err := factory.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeederRun(t *testing.T) {
	db := setupTestDB(t)
	seeder := NewSeeder(db, Options{
		NumUsers:      6,
		NumTrips:      3,
		EventsPerTrip: 2,
		SkipBcrypt:    true,
	})

	require.NoError(t, seeder.Run())

	var userCount, tripCount, eventCount, memberCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Trip{}).Count(&tripCount).Error)
	require.NoError(t, db.Model(&models.Event{}).Count(&eventCount).Error)
	require.NoError(t, db.Model(&models.TripMember{}).Count(&memberCount).Error)

	assert.Equal(t, int64(6), userCount)
	assert.Equal(t, int64(3), tripCount)
	assert.Equal(t, int64(6), eventCount)
	// Each trip carries at least its creator.
	assert.GreaterOrEqual(t, memberCount, int64(3))
}

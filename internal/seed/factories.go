// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"triphive/internal/models"
	"triphive/internal/schedule"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers      int
	NumTrips      int
	EventsPerTrip int
	ShouldClean   bool
	// SkipBcrypt stores a plain password for dev fast mode.
	SkipBcrypt bool
	// DryRun builds entities without writing to the database.
	DryRun bool
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	username := strings.ToLower(fmt.Sprintf("%s_%s%d", first, last, gofakeit.Number(10, 99)))

	user := &models.User{
		Username:       username,
		Email:          fmt.Sprintf("%s@example.com", username),
		FirstName:      first,
		LastName:       last,
		PhoneNumber:    fmt.Sprintf("555%07d", gofakeit.Number(0, 9999999)),
		ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s", user.Username)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateTrip constructs and persists a trip created by the given user,
// with a plausible date range starting within the next 60 days.
func (f *Factory) CreateTrip(creator *models.User, overrides ...func(*models.Trip)) (*models.Trip, error) {
	start := time.Now().AddDate(0, 0, gofakeit.Number(1, 60))
	end := start.AddDate(0, 0, gofakeit.Number(1, 9))

	trip := &models.Trip{
		CreatedBy: creator.ID,
		TripName:  fmt.Sprintf("%s in %s", gofakeit.HipsterWord(), gofakeit.City()),
		StartDate: start.Format(models.DateLayout),
		EndDate:   end.Format(models.DateLayout),
	}

	for _, override := range overrides {
		override(trip)
	}

	if f.opts.DryRun {
		f.nextID++
		trip.ID = f.nextID
		log.Printf("[dry-run] CreateTrip: %q %s to %s", trip.TripName, trip.StartDate, trip.EndDate)
		return trip, nil
	}

	if err := f.db.Create(trip).Error; err != nil {
		return nil, err
	}
	return trip, nil
}

// CreateEvent constructs and persists an event on a random day of the
// given trip, with display clock times in the stored format.
func (f *Factory) CreateEvent(trip *models.Trip, overrides ...func(*models.Event)) (*models.Event, error) {
	event := &models.Event{
		TripID:      trip.ID,
		Description: gofakeit.Sentence(4),
		Date:        randomTripDay(trip),
		CreatedBy:   trip.CreatedBy,
	}

	startHour := gofakeit.Number(1, 11)
	event.StartTime = schedule.CombineTimeAndDay(fmt.Sprintf("%02d%02d", startHour, gofakeit.Number(0, 5)*10), "am")
	event.EndTime = schedule.CombineTimeAndDay(fmt.Sprintf("%02d00", gofakeit.Number(1, 9)), "pm")
	if gofakeit.Bool() {
		event.Note = gofakeit.Sentence(8)
	}

	for _, override := range overrides {
		override(event)
	}

	if f.opts.DryRun {
		f.nextID++
		event.ID = f.nextID
		log.Printf("[dry-run] CreateEvent: trip=%d %q on %s", event.TripID, event.Description, event.Date)
		return event, nil
	}

	if err := f.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// AddMember persists a trip membership row for the given user.
func (f *Factory) AddMember(trip *models.Trip, user *models.User) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] AddMember: trip=%d user=%d", trip.ID, user.ID)
		return nil
	}
	return f.db.Create(&models.TripMember{TripID: trip.ID, UserID: user.ID}).Error
}

// CreateFriendship persists the directed friend edge user -> friend.
func (f *Factory) CreateFriendship(user, friend *models.User) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateFriendship: %d -> %d", user.ID, friend.ID)
		return nil
	}
	return f.db.Create(&models.Friendship{UserID: user.ID, FriendID: friend.ID}).Error
}

// randomTripDay picks a stored-format date inside the trip's range,
// falling back to the start date when the range does not parse.
func randomTripDay(trip *models.Trip) string {
	start, end, err := trip.DateRange()
	if err != nil {
		return trip.StartDate
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	//nolint:gosec // Weak random number generator is fine for seeding
	offset := rand.Intn(days)
	return start.AddDate(0, 0, offset).Format(models.DateLayout)
}

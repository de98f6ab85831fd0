package seed

import (
	"fmt"
	"log"
	"math/rand"

	"triphive/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Seeder orchestrates a full seeding run using a Factory.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder returns a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, opts),
		opts:    opts,
	}
}

// ClearAll removes all seeded rows. Child tables go first so the
// foreign keys never block the truncation.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE friends_list, trip_users, events, trips, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// Run populates the database per the seeder options: users, trips with
// their creators as members, events spread across trip days, extra
// members, and a directed friendship mesh.
func (s *Seeder) Run() error {
	log.Printf("Starting database seeding with %d users and %d trips...", s.opts.NumUsers, s.opts.NumTrips)

	users, err := s.seedUsers()
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	trips, err := s.seedTrips(users)
	if err != nil {
		return fmt.Errorf("failed to create trips: %w", err)
	}
	log.Printf("%d trips created", len(trips))

	if err := s.seedFriendships(users); err != nil {
		return fmt.Errorf("failed to create friendships: %w", err)
	}

	log.Println("Database seeding completed")
	return nil
}

func (s *Seeder) seedUsers() ([]*models.User, error) {
	users := make([]*models.User, 0, s.opts.NumUsers)

	// Always include a couple of known logins for manual testing.
	for _, name := range []string{"demo", "test"} {
		username := name
		user, err := s.factory.CreateUser(func(u *models.User) {
			u.Username = username
			u.Email = fmt.Sprintf("%s@example.com", username)
		})
		if err != nil {
			log.Printf("Failed to create user %s: %v", username, err)
			continue
		}
		users = append(users, user)
	}

	for i := len(users); i < s.opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}
	return users, nil
}

func (s *Seeder) seedTrips(users []*models.User) ([]*models.Trip, error) {
	if len(users) == 0 {
		return nil, nil
	}

	eventsPerTrip := s.opts.EventsPerTrip
	if eventsPerTrip <= 0 {
		eventsPerTrip = 5
	}

	trips := make([]*models.Trip, 0, s.opts.NumTrips)
	for i := 0; i < s.opts.NumTrips; i++ {
		creator := users[rand.Intn(len(users))]

		trip, err := s.factory.CreateTrip(creator)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)

		// The creator is on their own trip from the start.
		if err := s.factory.AddMember(trip, creator); err != nil {
			return nil, err
		}

		for _, member := range pickOthers(users, creator, gofakeit.Number(0, 4)) {
			if err := s.factory.AddMember(trip, member); err != nil {
				log.Printf("Failed to add member %d to trip %d: %v", member.ID, trip.ID, err)
			}
		}

		for j := 0; j < eventsPerTrip; j++ {
			if _, err := s.factory.CreateEvent(trip); err != nil {
				return nil, err
			}
		}
	}
	return trips, nil
}

func (s *Seeder) seedFriendships(users []*models.User) error {
	for _, user := range users {
		for _, friend := range pickOthers(users, user, gofakeit.Number(0, 5)) {
			if err := s.factory.CreateFriendship(user, friend); err != nil {
				// Duplicate edges from the random picks are fine to skip.
				continue
			}
		}
	}
	return nil
}

// pickOthers selects up to n distinct users different from exclude.
func pickOthers(users []*models.User, exclude *models.User, n int) []*models.User {
	picked := make([]*models.User, 0, n)
	seen := map[uint]struct{}{exclude.ID: {}}

	for len(picked) < n && len(seen) < len(users) {
		candidate := users[rand.Intn(len(users))]
		if _, ok := seen[candidate.ID]; ok {
			continue
		}
		seen[candidate.ID] = struct{}{}
		picked = append(picked, candidate)
	}
	return picked
}

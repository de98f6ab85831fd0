// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"triphive/internal/config"
	"triphive/internal/database"
	"triphive/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numTrips := flag.Int("trips", 20, "Number of trips to create")
	eventsPerTrip := flag.Int("events", 5, "Number of events per trip")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("fast", false, "Skip bcrypt hashing for faster seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d trips, %d events/trip, clean=%v\n", *numUsers, *numTrips, *eventsPerTrip, *shouldClean)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	seeder := seed.NewSeeder(db, seed.Options{
		NumUsers:      *numUsers,
		NumTrips:      *numTrips,
		EventsPerTrip: *eventsPerTrip,
		SkipBcrypt:    *skipBcrypt,
	})

	if *shouldClean {
		if err := seeder.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := seeder.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Test users have the password: password123")
}

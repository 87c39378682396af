package main

import (
	"log"

	"github.com/joho/godotenv"

	"cupid-backend/internal/config"
	"cupid-backend/internal/db"
)

// Standalone seeder: wipes the database and loads demo users, swipes
// and matches regardless of APP_ENV.
func main() {
	_ = godotenv.Load()

	cfg := config.New()

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}

	if err := db.SeedTestData(database); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	log.Println("Seeding complete.")
}

// Command migrate applies the database schema for MuscleJourney. Production
// deployments run it explicitly; non-production environments migrate on boot.
package main

import (
	"log"

	"musclejourney/internal/config"
	"musclejourney/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Schema migration completed")
}

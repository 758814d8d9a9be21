// Command main runs the database seeder for MuscleJourney.
package main

import (
	"context"
	"flag"
	"log"

	"musclejourney/internal/bootstrap"
	"musclejourney/internal/config"
	"musclejourney/internal/observability"
	"musclejourney/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	demoUsers := flag.Bool("demo-users", true, "Ensure the built-in demo accounts exist")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	// Seeding has no request ID; a correlation ID ties its log lines together.
	ctx := observability.WithCorrelationID(context.Background(), observability.GenerateCorrelationID())

	seeder := seed.NewSeeder(db)
	if err := seeder.Run(ctx, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	// After the clean so a wipe never removes them.
	if *demoUsers {
		if err := bootstrap.EnsureDemoUsers(db); err != nil {
			log.Fatalf("Failed to create demo accounts: %v", err)
		}
	}

	log.Println("✓ Seeding complete")
}

// Command main runs the database seeder for Ladle.
package main

import (
	"flag"
	"log"

	"ladle/internal/bootstrap"
	"ladle/internal/config"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numRecipes := flag.Int("recipes", 200, "Number of recipes to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d recipes, clean=%v\n", *numUsers, *numRecipes, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{
		SeedDemoData: true,
		DemoUsers:    *numUsers,
		DemoRecipes:  *numRecipes,
		CleanFirst:   *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}

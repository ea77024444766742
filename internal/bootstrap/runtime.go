// Package bootstrap wires shared runtime dependencies for the binaries.
package bootstrap

import (
	"fmt"

	"ladle/internal/cache"
	"ladle/internal/config"
	"ladle/internal/database"
	"ladle/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates the database with generated users and recipes.
	// Intended for development environments only.
	SeedDemoData bool
	DemoUsers    int
	DemoRecipes  int
	// CleanFirst wipes existing rows before seeding.
	CleanFirst bool
}

// seedOptions translates bootstrap options into seeder options, applying the
// small-dataset defaults when counts are unset.
func seedOptions(opts Options) seed.Options {
	users := opts.DemoUsers
	if users <= 0 {
		users = 10
	}
	recipes := opts.DemoRecipes
	if recipes <= 0 {
		recipes = 50
	}
	return seed.Options{
		NumUsers:    users,
		NumRecipes:  recipes,
		ShouldClean: opts.CleanFirst,
	}
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	// Connect DB
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seed.Seed(db, seedOptions(opts)); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}

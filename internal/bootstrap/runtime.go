// Package bootstrap wires shared runtime dependencies for the auxiliary
// commands (seeder, migrator) without dragging in the HTTP server.
package bootstrap

import (
	"context"
	"fmt"

	"musclejourney/internal/cache"
	"musclejourney/internal/config"
	"musclejourney/internal/database"
	"musclejourney/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// EnsureDemoUsers creates a small set of fixed demo accounts when they
	// are missing, so local environments always have known profiles.
	EnsureDemoUsers bool
}

var demoUsernames = []string{"demo_lifter", "demo_runner", "demo_coach"}

// InitRuntime connects to the database and redis and applies the options.
// A nil redis client means redis is unreachable; callers treat that as
// cache-off.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	redisClient := cache.InitRedis(cfg.RedisURL)

	if opts.EnsureDemoUsers {
		if err := EnsureDemoUsers(db); err != nil {
			return nil, nil, fmt.Errorf("demo user setup failed: %w", err)
		}
	}

	return db, redisClient, nil
}

// EnsureDemoUsers creates the fixed demo accounts that are missing.
func EnsureDemoUsers(db *gorm.DB) error {
	ctx := context.Background()
	for _, username := range demoUsernames {
		var count int64
		if err := db.WithContext(ctx).
			Model(&models.User{}).
			Where("username = ?", username).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		user := &models.User{
			Username: username,
			Bio:      "Built-in demo account",
		}
		if err := db.WithContext(ctx).Create(user).Error; err != nil {
			return err
		}
	}
	return nil
}

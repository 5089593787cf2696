package main

import (
	"log"

	"anoa.com/campuscircle/internal/bootstrap"
	"anoa.com/campuscircle/internal/config"
	"anoa.com/campuscircle/internal/server"
	"anoa.com/campuscircle/pkg/database"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedMadeBy(db); err != nil {
		log.Fatalf("failed to seed developer info: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedStudents(db); err != nil {
			log.Fatalf("failed to seed students: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, login throttling and stats cache disabled")
	}

	srv := server.NewServer(cfg, db, redisClient)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

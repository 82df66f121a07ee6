package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/quest-chronicles/internal/config"
	"github.com/KirkDiggler/quest-chronicles/internal/gamedata"
	"github.com/KirkDiggler/quest-chronicles/internal/repositories/characters"
	"github.com/KirkDiggler/quest-chronicles/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Write default catalogs on first run
	if err := gamedata.EnsureDefaultDataFiles(cfg.Game.DataDir); err != nil {
		log.Fatalf("Failed to create default data files: %v", err)
	}

	catalog, err := gamedata.LoadCatalog(cfg.Game.DataDir)
	if err != nil {
		log.Fatalf("Failed to load game data: %v", err)
	}
	log.Printf("Loaded %d items and %d quests", len(catalog.Items), len(catalog.Quests))

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	providerConfig := &services.ProviderConfig{
		Items:  catalog.Items,
		Quests: catalog.Quests,
	}

	// Try to connect to Redis if URL is provided
	if redisURL := cfg.Redis.URL; redisURL != "" {
		log.Printf("Connecting to Redis at: %s", redisURL)

		opts, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			log.Printf("Failed to parse Redis URL: %v", parseErr)
			log.Println("Falling back to save files")
		} else {
			redisClient = redis.NewClient(opts)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
				cancel()
				log.Printf("Failed to connect to Redis: %v", pingErr)
				log.Println("Falling back to save files")
				redisClient = nil
			} else {
				cancel()
				log.Println("Using Redis for persistence")
				providerConfig.CharacterRepository = characters.NewRedisRepository(redisClient)
			}
		}
	}

	if providerConfig.CharacterRepository == nil {
		providerConfig.CharacterRepository = characters.NewFileRepository(cfg.Game.SaveDir)
		log.Printf("Using save files under %s", cfg.Game.SaveDir)
	}

	serviceProvider := services.NewProvider(providerConfig)

	g := newGame(&gameConfig{
		Provider:   serviceProvider,
		ReviveCost: cfg.Game.ReviveCost,
		Input:      os.Stdin,
		Output:     os.Stdout,
	})

	if err := g.Run(context.Background()); err != nil {
		log.Fatalf("Game ended with error: %v", err)
	}

	// Clean up Redis connection if we have one
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}
}

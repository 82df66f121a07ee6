package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	Game  GameConfig
	Redis RedisConfig
}

// GameConfig holds game data and save locations
type GameConfig struct {
	DataDir    string // item and quest catalog files
	SaveDir    string // character save files
	ReviveCost int    // gold charged to revive a fallen character
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string // Optional: save files are used when unset
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Game: GameConfig{
			DataDir:    getEnvOrDefault("GAME_DATA_DIR", "data"),
			SaveDir:    getEnvOrDefault("GAME_SAVE_DIR", "data/save_games"),
			ReviveCost: getEnvAsIntOrDefault("GAME_REVIVE_COST", 50),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type MongoConfig struct {
	URI    string
	DBName string
}

type Config struct {
	App struct {
		Port string
	}
	Mongo MongoConfig
}

// Load reads configuration from the environment, optionally seeding it
// from a .env file first. MONGO_URI is the only required variable.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}

	cfg.App.Port = os.Getenv("APP_PORT")
	if cfg.App.Port == "" {
		cfg.App.Port = "3004"
	}

	cfg.Mongo.URI = os.Getenv("MONGO_URI")
	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}

	cfg.Mongo.DBName = os.Getenv("MONGO_DB")
	if cfg.Mongo.DBName == "" {
		cfg.Mongo.DBName = "inventory"
	}

	return cfg, nil
}

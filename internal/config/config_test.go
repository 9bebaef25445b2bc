package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"inventory-backend/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("APP_PORT", "")
	t.Setenv("MONGO_DB", "")

	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, "3004", cfg.App.Port)
	require.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	require.Equal(t, "inventory", cfg.Mongo.DBName)
}

func TestLoad_RequiresMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")

	_, err := config.Load("")
	require.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db.internal:27017")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("MONGO_DB", "inventory_test")

	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, "9000", cfg.App.Port)
	require.Equal(t, "inventory_test", cfg.Mongo.DBName)
}

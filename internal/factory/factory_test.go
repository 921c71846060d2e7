package factory

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/octiline/internal/model"
	"github.com/mcoot/octiline/internal/storage/memory"
	sqlitestorage "github.com/mcoot/octiline/internal/storage/sqlite"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	cfg, err := configFromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.App.StorageType)
	assert.Equal(t, model.DefaultGridSize, cfg.App.GameConfig.DefaultGridSize)
	assert.Nil(t, cfg.App.RedisConfig)
	assert.Nil(t, cfg.App.SQLiteConfig)
	assert.Nil(t, cfg.App.PostgresConfig)
}

func TestConfigFromEnvOverrides(t *testing.T) {
	cfg, err := configFromLookup(lookupFrom(map[string]string{
		EnvPort:            "9090",
		EnvLogLevel:        "debug",
		EnvDefaultGridSize: "8",
		EnvCORSOrigins:     "http://a.example, http://b.example",
		EnvStorageType:     "Redis",
		EnvRedisURL:        "redis://cache:6379/1",
		EnvRedisSessionTTL: "2h",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 8, cfg.App.GameConfig.DefaultGridSize)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, StorageTypeRedis, cfg.App.StorageType)
	require.NotNil(t, cfg.App.RedisConfig)
	assert.Equal(t, "redis://cache:6379/1", cfg.App.RedisConfig.URL)
	assert.Equal(t, 2*time.Hour, cfg.App.RedisConfig.SessionTTL)
}

func TestConfigFromEnvStorageSettings(t *testing.T) {
	cfg, err := configFromLookup(lookupFrom(map[string]string{
		EnvStorageType: StorageTypeSQLite,
		EnvSQLitePath:  "/tmp/games.db",
	}))
	require.NoError(t, err)
	require.NotNil(t, cfg.App.SQLiteConfig)
	assert.Equal(t, "/tmp/games.db", cfg.App.SQLiteConfig.Path)

	cfg, err = configFromLookup(lookupFrom(map[string]string{
		EnvStorageType: StorageTypePostgres,
		EnvPostgresURL: "postgres://localhost/octiline",
	}))
	require.NoError(t, err)
	require.NotNil(t, cfg.App.PostgresConfig)
	assert.Equal(t, "postgres://localhost/octiline", cfg.App.PostgresConfig.URL)
}

func TestConfigFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{EnvPort: "eighty"}},
		{"port out of range", map[string]string{EnvPort: "70000"}},
		{"bad log level", map[string]string{EnvLogLevel: "loud"}},
		{"bad grid size", map[string]string{EnvDefaultGridSize: "big"}},
		{"redis without url", map[string]string{EnvStorageType: StorageTypeRedis}},
		{"bad redis ttl", map[string]string{EnvStorageType: StorageTypeRedis, EnvRedisURL: "redis://x", EnvRedisSessionTTL: "soon"}},
		{"postgres without url", map[string]string{EnvStorageType: StorageTypePostgres}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := configFromLookup(lookupFrom(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("OCTILINE_DOTENV_TEST=loaded\n"), 0o600))
	t.Setenv("OCTILINE_DOTENV_TEST", "")
	require.NoError(t, os.Unsetenv("OCTILINE_DOTENV_TEST"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "loaded", os.Getenv("OCTILINE_DOTENV_TEST"))
}

func TestNewDefaultsToMemory(t *testing.T) {
	app, err := New(t.Context(), Config{})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	assert.IsType(t, &memory.Storage{}, app.Storage)
	assert.NotNil(t, app.GameController)
	assert.NotNil(t, app.BotService)
	assert.NotNil(t, app.HubManager)
}

func TestNewSQLite(t *testing.T) {
	app, err := New(t.Context(), Config{
		StorageType:  StorageTypeSQLite,
		SQLiteConfig: &sqlitestorage.Config{Path: ":memory:"},
	})
	require.NoError(t, err)

	session, err := app.GameController.CreateSession(t.Context(), 0)
	require.NoError(t, err)
	_, err = app.GameController.GetSession(t.Context(), session.ID)
	require.NoError(t, err)

	assert.NoError(t, app.Close())
}

func TestNewInvalidStorage(t *testing.T) {
	_, err := New(t.Context(), Config{StorageType: "tape"})
	assert.Error(t, err)

	_, err = New(t.Context(), Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)

	_, err = New(t.Context(), Config{StorageType: StorageTypeSQLite})
	assert.Error(t, err)

	_, err = New(t.Context(), Config{StorageType: StorageTypePostgres})
	assert.Error(t, err)
}

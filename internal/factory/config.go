package factory

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/octiline/internal/services/game"
	pgstorage "github.com/mcoot/octiline/internal/storage/postgres"
	redisstorage "github.com/mcoot/octiline/internal/storage/redis"
	sqlitestorage "github.com/mcoot/octiline/internal/storage/sqlite"
)

// Environment variables read by ConfigFromEnv
const (
	EnvStorageType     = "STORAGE_TYPE"
	EnvRedisURL        = "REDIS_URL"
	EnvRedisSessionTTL = "REDIS_SESSION_TTL"
	EnvSQLitePath      = "SQLITE_PATH"
	EnvPostgresURL     = "POSTGRES_URL"
	EnvPort            = "PORT"
	EnvLogLevel        = "LOG_LEVEL"
	EnvDefaultGridSize = "DEFAULT_GRID_SIZE"
	EnvCORSOrigins     = "CORS_ALLOWED_ORIGINS"
)

// EnvConfig is the process configuration read from the environment
type EnvConfig struct {
	App         Config
	Port        int
	LogLevel    slog.Level
	CORSOrigins []string
}

// LoadDotEnv loads variables from the given files (".env" if none) without
// overriding variables already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ConfigFromEnv builds the process configuration from environment variables.
// Unset variables fall back to each component's defaults.
func ConfigFromEnv() (EnvConfig, error) {
	return configFromLookup(os.LookupEnv)
}

func configFromLookup(lookup func(string) (string, bool)) (EnvConfig, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := EnvConfig{
		App: Config{
			StorageType: strings.ToLower(get(EnvStorageType)),
			GameConfig:  game.DefaultConfig(),
		},
		Port:        8080,
		LogLevel:    slog.LevelInfo,
		CORSOrigins: []string{"*"},
	}

	if v := get(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return EnvConfig{}, fmt.Errorf("%s: invalid port %q", EnvPort, v)
		}
		cfg.Port = port
	}

	if v := get(EnvLogLevel); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return EnvConfig{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}

	if v := get(EnvDefaultGridSize); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return EnvConfig{}, fmt.Errorf("%s: invalid grid size %q", EnvDefaultGridSize, v)
		}
		cfg.App.GameConfig.DefaultGridSize = size
	}

	if v := get(EnvCORSOrigins); v != "" {
		cfg.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	switch storageTypeOrDefault(cfg.App.StorageType) {
	case StorageTypeRedis:
		url := get(EnvRedisURL)
		if url == "" {
			return EnvConfig{}, fmt.Errorf("%s required when %s=redis", EnvRedisURL, EnvStorageType)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = url
		if v := get(EnvRedisSessionTTL); v != "" {
			ttl, err := time.ParseDuration(v)
			if err != nil {
				return EnvConfig{}, fmt.Errorf("%s: %w", EnvRedisSessionTTL, err)
			}
			redisCfg.SessionTTL = ttl
		}
		cfg.App.RedisConfig = &redisCfg
	case StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		if v := get(EnvSQLitePath); v != "" {
			sqliteCfg.Path = v
		}
		cfg.App.SQLiteConfig = &sqliteCfg
	case StorageTypePostgres:
		url := get(EnvPostgresURL)
		if url == "" {
			return EnvConfig{}, fmt.Errorf("%s required when %s=postgres", EnvPostgresURL, EnvStorageType)
		}
		pgCfg := pgstorage.DefaultConfig()
		pgCfg.URL = url
		cfg.App.PostgresConfig = &pgCfg
	}

	return cfg, nil
}

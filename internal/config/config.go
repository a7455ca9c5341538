package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/ladder-league/internal/platform/logging"
)

// Config stores runtime configuration for the ladder.
type Config struct {
	AppEnv     string
	SaveDir    string
	Store      string
	SQLitePath string
	LogLevel   logging.Level
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

const DefaultSaveDir = "saved_games"

// Load reads configuration from the environment. Values from a .env file in the
// working directory are applied first without overriding variables already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	store, err := ParseStore(getEnv("LADDER_STORE", StoreFile))
	if err != nil {
		return Config{}, err
	}

	saveDir := strings.TrimSpace(getEnv("LADDER_SAVE_DIR", DefaultSaveDir))
	sqlitePath := strings.TrimSpace(getEnv("LADDER_SQLITE_PATH", "ladder.db"))

	logLevelDefault := "warn"
	if appEnv == EnvDev {
		logLevelDefault = "info"
	}

	cfg := Config{
		AppEnv:     appEnv,
		SaveDir:    saveDir,
		Store:      store,
		SQLitePath: sqlitePath,
		LogLevel:   logging.ParseLevel(getEnv("LOG_LEVEL", logLevelDefault)),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := ParseStore(c.Store); err != nil {
		return err
	}
	if c.SaveDir == "" {
		return fmt.Errorf("LADDER_SAVE_DIR must not be empty")
	}
	if c.Store == StoreSQLite && c.SQLitePath == "" {
		return fmt.Errorf("LADDER_SQLITE_PATH is required when LADDER_STORE=%s", StoreSQLite)
	}

	return nil
}

func ParseStore(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StoreFile, StoreMemory, StoreSQLite:
		return value, nil
	default:
		return "", fmt.Errorf("invalid LADDER_STORE %q: valid values are %s, %s, %s", v, StoreFile, StoreMemory, StoreSQLite)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

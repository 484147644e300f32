// internal/config/config.go
//
// Server configuration.
// Values are layered, later layers winning:
//  1. Defaults (Default()).
//  2. An optional TOML file (CONFIG_FILE or --config).
//  3. Environment variables, after a best-effort .env load via godotenv.
//
// Environment variables:
//
//	PORT, LOG_LEVEL, DB_PATH, JWT_SECRET, JWT_EXPIRES_DAYS, COOKIE_NAME,
//	CLIENT_ORIGIN, NODE_ENV (=production), DAILY_SALT, WORDS_FILE,
//	GRID_SIZE, MAX_ATTEMPTS

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the server and the generator.
type Config struct {
	Port           string `toml:"port"`
	LogLevel       string `toml:"log_level"`
	DBPath         string `toml:"db_path"`
	JWTSecret      string `toml:"jwt_secret"`
	JWTExpiresDays int    `toml:"jwt_expires_days"`
	CookieName     string `toml:"cookie_name"`
	ClientOrigin   string `toml:"client_origin"`
	Production     bool   `toml:"production"`
	DailySalt      string `toml:"daily_salt"`
	WordsFile      string `toml:"words_file"`
	GridSize       int    `toml:"grid_size"`
	MaxAttempts    int    `toml:"max_attempts"`
}

// Default returns the development defaults.
func Default() Config {
	return Config{
		Port:           "5175",
		LogLevel:       "info",
		DBPath:         "./data/wordsearch.db",
		JWTSecret:      "dev_secret_change_me",
		JWTExpiresDays: 14,
		CookieName:     "wordsearch_token",
		ClientOrigin:   "http://localhost:5173",
		DailySalt:      "local_dev_salt",
		GridSize:       15,
		MaxAttempts:    100,
	}
}

// Load builds a Config from defaults, the TOML file at path (if any) and the environment.
// A missing file is only an error when path was given explicitly.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

// Validate rejects values the server cannot run with.
func (c Config) Validate() error {
	if c.GridSize < 2 {
		return fmt.Errorf("grid_size must be at least 2, got %d", c.GridSize)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be positive, got %d", c.MaxAttempts)
	}
	if c.Production && c.JWTSecret == Default().JWTSecret {
		return errors.New("jwt_secret must be set in production")
	}
	return nil
}

func applyEnv(c *Config) {
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.JWTExpiresDays = getEnvInt("JWT_EXPIRES_DAYS", c.JWTExpiresDays)
	c.CookieName = getEnv("COOKIE_NAME", c.CookieName)
	c.ClientOrigin = getEnv("CLIENT_ORIGIN", c.ClientOrigin)
	if os.Getenv("NODE_ENV") == "production" {
		c.Production = true
	}
	c.DailySalt = getEnv("DAILY_SALT", c.DailySalt)
	c.WordsFile = getEnv("WORDS_FILE", c.WordsFile)
	c.GridSize = getEnvInt("GRID_SIZE", c.GridSize)
	c.MaxAttempts = getEnvInt("MAX_ATTEMPTS", c.MaxAttempts)
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

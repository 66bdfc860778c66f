// Package config loads settings for the job board API and its command line client.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// client
	APIURL         string `yaml:"api_url"`
	SessionFile    string `yaml:"session_file"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	DefaultSort    string `yaml:"default_sort"`
	PageSize       int    `yaml:"page_size"`

	LogLevel string `yaml:"log_level"`

	// server
	Port               int      `yaml:"port"`
	DatabaseURL        string   `yaml:"database_url"`
	JWTSecret          string   `yaml:"jwt_secret"`
	AdminUsername      string   `yaml:"admin_username"`
	AdminPassword      string   `yaml:"admin_password"`
	UploadDir          string   `yaml:"upload_dir"`
	AllowOrigins       []string `yaml:"allow_origins"`
	RateLimitPerSecond int      `yaml:"rate_limit_per_second"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		APIURL:             "http://localhost:5000/api",
		SessionFile:        defaultSessionFile(),
		TimeoutSeconds:     30,
		DefaultSort:        "newest",
		PageSize:           10,
		LogLevel:           "info",
		Port:               5000,
		JWTSecret:          "change-me-in-production",
		AdminUsername:      "admin",
		AdminPassword:      "admin123",
		UploadDir:          "uploads",
		RateLimitPerSecond: 5,
	}
}

// Load reads .env when present, overlays the YAML file at path when path is not
// empty, then applies environment variables.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env file")
	}

	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.APIURL = getEnv("JOBBOARD_API_URL", cfg.APIURL)
	cfg.SessionFile = getEnv("JOBBOARD_SESSION_FILE", cfg.SessionFile)
	cfg.TimeoutSeconds = getEnvAsInt("JOBBOARD_TIMEOUT", cfg.TimeoutSeconds)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Port = getEnvAsInt("PORT", cfg.Port)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.AdminUsername = getEnv("ADMIN_USERNAME", cfg.AdminUsername)
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", cfg.AdminPassword)
	cfg.UploadDir = getEnv("UPLOAD_DIR", cfg.UploadDir)
	cfg.AllowOrigins = getEnvAsList("ALLOW_ORIGINS", cfg.AllowOrigins)
	cfg.RateLimitPerSecond = getEnvAsInt("RATE_LIMIT_PER_SECOND", cfg.RateLimitPerSecond)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.APIURL) == "":
		return errors.New("config: api url must not be empty")
	case c.TimeoutSeconds <= 0:
		return fmt.Errorf("config: timeout must be positive, got %d", c.TimeoutSeconds)
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("config: invalid port %d", c.Port)
	case c.RateLimitPerSecond <= 0:
		return fmt.Errorf("config: rate limit must be positive, got %d", c.RateLimitPerSecond)
	}
	return nil
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Addr is the listen address of the API server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".jobboard", "session.json")
	}
	return filepath.Join(home, ".jobboard", "session.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("ignoring non-numeric setting")
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Package config loads .env, then the optional YAML file, then environment overrides, then defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"cv-builder/internal/logger"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Renderer RendererConfig `yaml:"renderer"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Logger   logger.Config  `yaml:"logger"`
}

type ServerConfig struct {
	Port               string `yaml:"port"`
	Environment        string `yaml:"environment"`
	BodyLimitMB        int    `yaml:"body_limit_mb"`
	SessionIdleMinutes int    `yaml:"session_idle_minutes"`
}

// DatabaseConfig: an empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig: an empty Addr disables the record cache.
type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

type RendererConfig struct {
	ChromePath     string `yaml:"chrome_path"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Attempts       int    `yaml:"attempts"`
	BackoffMillis  int    `yaml:"backoff_millis"`
}

// ArchiveConfig: an empty Endpoint disables archiving exported PDFs.
type ArchiveConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Load reads configuration. A missing .env or YAML file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found, using environment variables")
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			logger.Debug().Str("path", path).Msg("config file not found, using environment only")
		default:
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.Environment, "APP_ENV")
	setInt(&c.Server.SessionIdleMinutes, "SESSION_IDLE_MINUTES")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setInt(&c.Redis.DB, "REDIS_DB")
	setInt(&c.Redis.TTLSeconds, "CACHE_TTL_SECONDS")
	setString(&c.Renderer.ChromePath, "CHROME_PATH")
	setInt(&c.Renderer.TimeoutSeconds, "RENDER_TIMEOUT_SECONDS")
	setInt(&c.Renderer.Attempts, "RENDER_ATTEMPTS")
	setString(&c.Archive.Endpoint, "ARCHIVE_ENDPOINT")
	setString(&c.Archive.AccessKey, "ARCHIVE_ACCESS_KEY")
	setString(&c.Archive.SecretKey, "ARCHIVE_SECRET_KEY")
	setString(&c.Archive.Bucket, "ARCHIVE_BUCKET")
	setString(&c.Archive.Region, "ARCHIVE_REGION")
	setBool(&c.Archive.UseSSL, "ARCHIVE_USE_SSL")
	setString(&c.Logger.Level, "LOG_LEVEL")
	setString(&c.Logger.Format, "LOG_FORMAT")
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "5000"
	}
	if c.Server.Environment == "" {
		c.Server.Environment = "development"
	}
	if c.Server.BodyLimitMB == 0 {
		c.Server.BodyLimitMB = 10
	}
	if c.Server.SessionIdleMinutes == 0 {
		c.Server.SessionIdleMinutes = 60
	}
	if c.Redis.TTLSeconds == 0 {
		c.Redis.TTLSeconds = 300
	}
	if c.Renderer.TimeoutSeconds == 0 {
		c.Renderer.TimeoutSeconds = 60
	}
	if c.Renderer.Attempts == 0 {
		c.Renderer.Attempts = 3
	}
	if c.Renderer.BackoffMillis == 0 {
		c.Renderer.BackoffMillis = 1000
	}
	if c.Archive.Bucket == "" {
		c.Archive.Bucket = "cv-exports"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "json"
	}
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Renderer.Attempts < 1 {
		return fmt.Errorf("renderer attempts must be at least 1, got %d", c.Renderer.Attempts)
	}
	if c.Renderer.TimeoutSeconds < 1 {
		return fmt.Errorf("renderer timeout must be at least 1s, got %d", c.Renderer.TimeoutSeconds)
	}
	if c.Archive.Endpoint != "" && (c.Archive.AccessKey == "" || c.Archive.SecretKey == "") {
		return fmt.Errorf("archive endpoint set without ARCHIVE_ACCESS_KEY/ARCHIVE_SECRET_KEY")
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.Server.Environment == "production" }

func (c *Config) CacheTTL() time.Duration { return time.Duration(c.Redis.TTLSeconds) * time.Second }

func (c *Config) RenderTimeout() time.Duration {
	return time.Duration(c.Renderer.TimeoutSeconds) * time.Second
}

func (c *Config) RenderBackoff() time.Duration {
	return time.Duration(c.Renderer.BackoffMillis) * time.Millisecond
}

func (c *Config) SessionIdle() time.Duration {
	return time.Duration(c.Server.SessionIdleMinutes) * time.Minute
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", v).Msg("invalid integer, ignoring")
		return
	}
	*dst = n
}

func setBool(dst *bool, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", v).Msg("invalid boolean, ignoring")
		return
	}
	*dst = b
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"example.com/edunotes/internal/db"
	"example.com/edunotes/internal/stringsx"
)

type Config struct {
	HTTPAddr        string        `yaml:"http_addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	DatabaseDriver string `yaml:"database_driver"`
	DatabaseURL    string `yaml:"database_url"`

	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`

	// AllowedOrigins lists CORS origins. Entries starting with "." match
	// any origin ending in that suffix; "*" allows every origin.
	AllowedOrigins []string `yaml:"allowed_origins"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

const defaultSQLitePath = "edunotes.db"

func Default() Config {
	return Config{
		HTTPAddr:        ":5000",
		ShutdownTimeout: 5 * time.Second,
		DatabaseDriver:  string(db.Postgres),
		MaxOpenConns:    20,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		AllowedOrigins:  []string{"http://localhost:5173"},
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path, and finally the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if d, err := db.ParseDialect(cfg.DatabaseDriver); err == nil && d == db.SQLite && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = defaultSQLitePath
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.HTTPAddr = getenv("HTTP_ADDR", c.HTTPAddr)
	if os.Getenv("HTTP_ADDR") == "" {
		if port := os.Getenv("PORT"); port != "" {
			c.HTTPAddr = ":" + port
		}
	}
	c.ShutdownTimeout = getenvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)

	c.DatabaseDriver = getenv("DB_DRIVER", c.DatabaseDriver)
	c.DatabaseURL = getenv("DATABASE_URL", c.DatabaseURL)
	c.MaxOpenConns = getenvInt("DB_MAX_OPEN", c.MaxOpenConns)
	c.MaxIdleConns = getenvInt("DB_MAX_IDLE", c.MaxIdleConns)
	c.ConnMaxLifetime = getenvDuration("DB_CONN_MAX_LIFETIME", c.ConnMaxLifetime)
	c.ConnMaxIdleTime = getenvDuration("DB_CONN_MAX_IDLE_TIME", c.ConnMaxIdleTime)

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.AllowedOrigins = stringsx.SplitList(v)
	}

	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getenv("LOG_FORMAT", c.LogFormat)
}

func (c Config) Validate() error {
	d, err := db.ParseDialect(c.DatabaseDriver)
	if err != nil {
		return err
	}
	if d == db.Postgres && c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required for postgres")
	}
	if c.HTTPAddr == "" {
		return errors.New("http address is required")
	}
	return nil
}

// DBOptions maps the pool settings onto db.Options.
func (c Config) DBOptions() db.Options {
	return db.Options{
		Driver:      c.DatabaseDriver,
		URL:         c.DatabaseURL,
		MaxOpen:     c.MaxOpenConns,
		MaxIdle:     c.MaxIdleConns,
		MaxLifetime: c.ConnMaxLifetime,
		MaxIdleTime: c.ConnMaxIdleTime,
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

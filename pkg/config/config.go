package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config carries everything the service needs at startup.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Limit    LimitConfig    `mapstructure:"limit"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// CORSConfig lists the web origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

// LimitConfig controls the per-IP rate limiter. Disabled by default.
type LimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// Load reads config.yaml from the working directory when present and applies
// LIBRARY_* environment overrides on top of the defaults, e.g.
// LIBRARY_SERVER_PORT=9000 or LIBRARY_DATABASE_PATH=/data/library.db.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LIBRARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8000)
	v.SetDefault("database.path", "databases/library.db")
	v.SetDefault("cors.allow_origins", []string{
		"http://localhost:5173",
		"http://localhost:4173",
		"http://localhost:3000",
	})
	v.SetDefault("cors.allow_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allow_headers", []string{"Content-Type", "Authorization"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("limit.enabled", false)
	v.SetDefault("limit.rps", 50)
	v.SetDefault("limit.burst", 100)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No config file is fine, the defaults cover every key.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.Limit.Enabled && (c.Limit.RPS <= 0 || c.Limit.Burst <= 0) {
		return fmt.Errorf("rate limit rps and burst must be positive")
	}
	return nil
}

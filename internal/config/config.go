// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Site identity
	SiteName string

	// Content locations
	DataDir    string // holds posts/, portfolio/, categories.yaml, images/
	LocalesDir string // per-locale translation dictionaries

	// Valkey (Redis-compatible page cache). Empty host disables caching.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		SiteName: envOrDefault("SITE_NAME", "polyblog"),

		DataDir:    envOrDefault("DATA_DIR", "./data"),
		LocalesDir: envOrDefault("LOCALES_DIR", "./locales"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// PostsDir returns the root of the locale-partitioned post tree.
func (c *Config) PostsDir() string {
	return filepath.Join(c.DataDir, "posts")
}

// PortfolioDir returns the root of the locale-partitioned portfolio tree.
func (c *Config) PortfolioDir() string {
	return filepath.Join(c.DataDir, "portfolio")
}

// TaxonomyPath returns the category tree source file.
func (c *Config) TaxonomyPath() string {
	return filepath.Join(c.DataDir, "categories.yaml")
}

// ImagesDir returns the directory of content images served at /images/.
func (c *Config) ImagesDir() string {
	return filepath.Join(c.DataDir, "images")
}

// CacheEnabled reports whether a Valkey page cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// ValkeyAddr returns the Valkey host:port. Only meaningful when
// CacheEnabled is true.
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

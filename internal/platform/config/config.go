// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, codec) via constructors.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Agora API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// JWTPubKeyPath is the PEM public key used to verify access tokens.
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Cross-Origin Resource Sharing
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`

	// Session defaults
	DefaultTheme string `env:"DEFAULT_THEME" envDefault:"dark"`

	// Normalized cache snapshot
	CacheSnapshotKey string        `env:"CACHE_SNAPSHOT_KEY" envDefault:"agora:cache:snapshot"`
	CacheSnapshotTTL time.Duration `env:"CACHE_SNAPSHOT_TTL" envDefault:"24h"`

	// FilterTimezone is the IANA zone in which "start of today" is computed.
	FilterTimezone string `env:"FILTER_TIMEZONE" envDefault:"Local"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if _, err := cfg.FilterLocation(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FilterLocation resolves [Config.FilterTimezone].
func (c *Config) FilterLocation() (*time.Location, error) {
	location, err := time.LoadLocation(c.FilterTimezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid FILTER_TIMEZONE %q: %w", c.FilterTimezone, err)
	}
	return location, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the extra CORS origins.
func (c *Config) AllowedOrigins() []string {
	return c.ExtraOrigins
}

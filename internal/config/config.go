// Package config provides configuration management for the Prop Tracker application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig       `mapstructure:"app" validate:"required"`
	Storage  StorageConfig   `mapstructure:"storage" validate:"required"`
	Database DatabaseConfig  `mapstructure:"database"`
	Server   ServerConfig    `mapstructure:"server" validate:"required"`
	Metrics  MetricsConfig   `mapstructure:"metrics"`
	Autosave AutosaveConfig  `mapstructure:"autosave"`
	Accounts []AccountConfig `mapstructure:"accounts" validate:"required,min=1,dive"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=flatfile postgres"`
	DataDir string `mapstructure:"data_dir"`
}

// DatabaseConfig represents PostgreSQL connection configuration, used when
// the storage backend is "postgres"
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// ServerConfig represents the JSON API server configuration
type ServerConfig struct {
	Port           int     `mapstructure:"port" validate:"required,min=1,max=65535"`
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps" validate:"omitempty,gt=0"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst" validate:"omitempty,gt=0"`
}

// MetricsConfig represents Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// AutosaveConfig represents the scheduled journal autosave configuration
type AutosaveConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// AccountConfig represents one trading account's static configuration,
// replacing the original free-form per-account dictionaries with named,
// statically typed fields
type AccountConfig struct {
	Name            string  `mapstructure:"name" validate:"required"`
	Strategy        string  `mapstructure:"strategy" validate:"required"`
	StartingBalance float64 `mapstructure:"starting_balance" validate:"required,gt=0"`
	RiskPerTrade    float64 `mapstructure:"risk_per_trade" validate:"required,gt=0,lt=1"`
	DailyStop       float64 `mapstructure:"daily_stop" validate:"required,gt=0,lt=1"`
	WeeklyStop      float64 `mapstructure:"weekly_stop" validate:"required,gt=0,lt=1"`
	Color           string  `mapstructure:"color"`
	HeaderClass     string  `mapstructure:"header_class"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// UsesPostgres reports whether the postgres storage backend is selected
func (c *Config) UsesPostgres() bool {
	return c.Storage.Backend == "postgres"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// AccountByName returns the account configuration with the given name
func (c *Config) AccountByName(name string) (AccountConfig, bool) {
	for _, account := range c.Accounts {
		if account.Name == name {
			return account, true
		}
	}
	return AccountConfig{}, false
}

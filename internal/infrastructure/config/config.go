package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Transaction TransactionConfig `mapstructure:"transaction"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Seed        SeedConfig        `mapstructure:"seed"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	AllowedOrigins    []string      `mapstructure:"allowedOrigins"`
}

// Address returns the host:port the HTTP server listens on
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	Database           string        `mapstructure:"database"`
	SSLMode            string        `mapstructure:"sslMode"`
	MaxOpenConns       int           `mapstructure:"maxOpenConns"`
	MaxIdleConns       int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime    time.Duration `mapstructure:"connMaxLifetime"`    // minutes
	ConnMaxIdleTime    time.Duration `mapstructure:"connMaxIdleTime"`    // minutes
	QueryTimeout       time.Duration `mapstructure:"queryTimeout"`       // seconds
	RetryAttempts      int           `mapstructure:"retryAttempts"`
	RetryDelay         time.Duration `mapstructure:"retryDelay"`         // seconds
	SlowQueryThreshold time.Duration `mapstructure:"slowQueryThreshold"` // milliseconds
	AutoMigrate        bool          `mapstructure:"autoMigrate"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	ServiceName string `mapstructure:"serviceName"`
}

// TransactionConfig contains transaction processing settings
type TransactionConfig struct {
	IsolationLevel  string `mapstructure:"isolationLevel"`
	LockTimeoutMs   int64  `mapstructure:"lockTimeoutMs"`
	DefaultPageSize int    `mapstructure:"defaultPageSize"`
}

// LockTimeout returns the row lock wait limit, zero meaning wait indefinitely
func (t TransactionConfig) LockTimeout() time.Duration {
	return time.Duration(t.LockTimeoutMs) * time.Millisecond
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// SeedConfig lists demo users created at startup
type SeedConfig struct {
	Enabled bool       `mapstructure:"enabled"`
	Users   []SeedUser `mapstructure:"users"`
}

// SeedUser describes one demo user and the account opened for them
type SeedUser struct {
	ID             string `mapstructure:"id"`
	Name           string `mapstructure:"name"`
	Email          string `mapstructure:"email"`
	AccountNumber  string `mapstructure:"accountNumber"`
	AccountType    string `mapstructure:"accountType"`
	OpeningBalance string `mapstructure:"openingBalance"`
}

// Validate reports every missing or invalid required setting at once
func (c *Config) Validate() error {
	var missing []string
	if c.Database.Host == "" {
		missing = append(missing, "database.host")
	}
	if c.Database.Username == "" {
		missing = append(missing, "database.username")
	}
	if c.Database.Password == "" {
		missing = append(missing, "database.password")
	}
	if c.Database.Database == "" {
		missing = append(missing, "database.database")
	}

	var errList []error
	if len(missing) > 0 {
		errList = append(errList, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", ")))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errList = append(errList, fmt.Errorf("invalid server port: %d", c.Server.Port))
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errList = append(errList, fmt.Errorf("invalid database port: %d", c.Database.Port))
	}
	if c.Transaction.DefaultPageSize < 1 || c.Transaction.DefaultPageSize > 100 {
		errList = append(errList, fmt.Errorf("transaction.defaultPageSize must be between 1 and 100, got: %d", c.Transaction.DefaultPageSize))
	}
	if c.Transaction.LockTimeoutMs < 0 {
		errList = append(errList, fmt.Errorf("transaction.lockTimeoutMs must be non-negative, got: %d", c.Transaction.LockTimeoutMs))
	}
	for i, u := range c.Seed.Users {
		if u.Email == "" || u.Name == "" {
			errList = append(errList, fmt.Errorf("seed.users[%d] requires name and email", i))
		}
	}

	return errors.Join(errList...)
}

package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/config"
)

// Config represents database configuration
type Config struct {
	Host               string
	Port               int
	Username           string
	Password           string
	Database           string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	QueryTimeout       time.Duration
	RetryAttempts      int
	RetryDelay         time.Duration
	LogLevel           string
	SlowQueryThreshold time.Duration

	// IsolationLevel is applied to every unit of work
	IsolationLevel sql.IsolationLevel
	// LockTimeout bounds how long a unit of work waits for a row lock, zero waits indefinitely
	LockTimeout time.Duration
}

// NewConfig adapts the application configuration to database configuration
func NewConfig(conf *config.Config) (*Config, error) {
	isolation, err := ParseIsolationLevel(conf.Transaction.IsolationLevel)
	if err != nil {
		return nil, err
	}

	dbConf := &Config{
		Host:               conf.Database.Host,
		Port:               conf.Database.Port,
		Username:           conf.Database.Username,
		Password:           conf.Database.Password,
		Database:           conf.Database.Database,
		SSLMode:            conf.Database.SSLMode,
		MaxOpenConns:       conf.Database.MaxOpenConns,
		MaxIdleConns:       conf.Database.MaxIdleConns,
		ConnMaxLifetime:    conf.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    conf.Database.ConnMaxIdleTime,
		QueryTimeout:       conf.Database.QueryTimeout,
		RetryAttempts:      conf.Database.RetryAttempts,
		RetryDelay:         conf.Database.RetryDelay,
		LogLevel:           conf.Logger.Level,
		SlowQueryThreshold: conf.Database.SlowQueryThreshold,
		IsolationLevel:     isolation,
		LockTimeout:        conf.Transaction.LockTimeout(),
	}

	if err := dbConf.Validate(); err != nil {
		return nil, err
	}
	return dbConf, nil
}

// ParseIsolationLevel converts a configured isolation name into a sql.IsolationLevel
func ParseIsolationLevel(level string) (sql.IsolationLevel, error) {
	switch strings.ToLower(strings.TrimSpace(strings.ReplaceAll(level, "_", " "))) {
	case "", "serializable":
		return sql.LevelSerializable, nil
	case "repeatable read":
		return sql.LevelRepeatableRead, nil
	case "read committed":
		return sql.LevelReadCommitted, nil
	default:
		return sql.LevelDefault, fmt.Errorf("unsupported isolation level: %s", level)
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("database host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", c.Port)
	}
	if c.Username == "" {
		return errors.New("database username is required")
	}
	if c.Database == "" {
		return errors.New("database name is required")
	}

	validSSLModes := map[string]bool{
		"disable":     true,
		"require":     true,
		"verify-ca":   true,
		"verify-full": true,
		"prefer":      true,
	}
	if !validSSLModes[c.SSLMode] {
		return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
	}

	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns <= 0 {
		return fmt.Errorf("max idle connections must be positive, got: %d", c.MaxIdleConns)
	}
	if c.QueryTimeout <= 0 {
		return errors.New("query timeout must be positive")
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts must be non-negative, got: %d", c.RetryAttempts)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must be non-negative, got: %s", c.RetryDelay)
	}

	return nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}

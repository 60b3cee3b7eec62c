package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"gorm.io/gorm"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys
const txKey contextKey = "tx"

// ErrNestedUnitOfWork is returned when Begin is called with a context that already carries a transaction
var ErrNestedUnitOfWork = errors.New("nested unit of work is not supported")

// ErrNoUnitOfWork is returned when Commit or Rollback find no transaction in the context
var ErrNoUnitOfWork = errors.New("no transaction found in context")

// GormStore runs ledger statements through gorm and scopes them into units of work.
// It implements both persistence.Store and persistence.UnitOfWork.
type GormStore struct {
	db          *gorm.DB
	isolation   sql.IsolationLevel
	lockTimeout time.Duration
	errorMapper *ErrorMapper
	logger      coreport.Logger
}

// NewGormStore creates a store over db using the isolation and lock timeout from config
func NewGormStore(db *gorm.DB, config *Config, logger coreport.Logger) *GormStore {
	return &GormStore{
		db:          db,
		isolation:   config.IsolationLevel,
		lockTimeout: config.LockTimeout,
		errorMapper: NewErrorMapper(),
		logger:      logger,
	}
}

// Begin starts a new database transaction
func (s *GormStore) Begin(ctx context.Context) (context.Context, error) {
	if _, ok := txFromContext(ctx); ok {
		return ctx, ErrNestedUnitOfWork
	}

	tx := s.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: s.isolation})
	if tx.Error != nil {
		s.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, s.errorMapper.MapError(tx.Error, "begin")
	}

	if s.lockTimeout > 0 {
		// SET does not accept bind parameters
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = %d", s.lockTimeout.Milliseconds())
		if err := tx.Exec(stmt).Error; err != nil {
			tx.Rollback()
			s.logger.Error("Failed to set lock timeout", map[string]any{"error": err.Error()})
			return ctx, s.errorMapper.MapError(err, "begin")
		}
	}

	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the transaction in ctx
func (s *GormStore) Commit(ctx context.Context) error {
	tx, ok := txFromContext(ctx)
	if !ok {
		return ErrNoUnitOfWork
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return s.errorMapper.MapError(err, "commit")
	}
	return nil
}

// Rollback rolls back the transaction in ctx; a finished transaction is left alone
func (s *GormStore) Rollback(ctx context.Context) error {
	tx, ok := txFromContext(ctx)
	if !ok {
		return ErrNoUnitOfWork
	}

	err := tx.Rollback().Error
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		s.logger.Debug("Transaction has already been committed or rolled back", nil)
		return nil
	}
	if err != nil {
		s.logger.Error("Failed to rollback transaction", map[string]any{"error": err.Error()})
		return s.errorMapper.MapError(err, "rollback")
	}
	return nil
}

// Execute runs a statement and returns the number of affected rows
func (s *GormStore) Execute(ctx context.Context, statement string, params ...any) (int64, error) {
	res := s.conn(ctx).Exec(statement, params...)
	if res.Error != nil {
		return 0, s.errorMapper.MapError(res.Error, "execute")
	}
	return res.RowsAffected, nil
}

// QueryOne scans the first row into dest and reports whether a row was found
func (s *GormStore) QueryOne(ctx context.Context, dest any, statement string, params ...any) (bool, error) {
	res := s.conn(ctx).Raw(statement, params...).Scan(dest)
	if res.Error != nil {
		return false, s.errorMapper.MapError(res.Error, "query")
	}
	return res.RowsAffected > 0, nil
}

// QueryMany scans all rows into dest, which must be a pointer to a slice
func (s *GormStore) QueryMany(ctx context.Context, dest any, statement string, params ...any) error {
	if err := s.conn(ctx).Raw(statement, params...).Scan(dest).Error; err != nil {
		return s.errorMapper.MapError(err, "query")
	}
	return nil
}

// conn returns the transaction carried by ctx, or the pool outside a unit of work
func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return s.db.WithContext(ctx)
}

func txFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	return tx, ok && tx != nil
}

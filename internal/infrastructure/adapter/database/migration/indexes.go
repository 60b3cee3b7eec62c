package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"gorm.io/gorm"
)

// IndexManager creates PostgreSQL objects gorm's AutoMigrate cannot express
type IndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *gorm.DB, logger coreport.Logger) *IndexManager {
	return &IndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateIndexes creates the history ordering index
func (m *IndexManager) CreateIndexes(ctx context.Context) error {
	m.logger.Info("Creating database indexes", nil)

	// Serves COUNT and the newest-first page scan of one account
	if err := m.db.WithContext(ctx).Exec(`
		CREATE INDEX IF NOT EXISTS idx_transactions_account_created
		ON transactions (account_id, created_at DESC, seq DESC)
	`).Error; err != nil {
		m.logger.Error("Failed to create history index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	return nil
}

// CreateAppendOnlyGuard installs a trigger rejecting UPDATE and DELETE on transactions
func (m *IndexManager) CreateAppendOnlyGuard(ctx context.Context) error {
	m.logger.Info("Installing append-only guard on transactions", nil)

	statements := []string{
		`CREATE OR REPLACE FUNCTION reject_transaction_mutation() RETURNS trigger AS $$
		BEGIN
			RAISE EXCEPTION 'transactions are append-only' USING ERRCODE = 'check_violation';
		END;
		$$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS transactions_append_only ON transactions`,
		`CREATE TRIGGER transactions_append_only
		BEFORE UPDATE OR DELETE ON transactions
		FOR EACH ROW EXECUTE FUNCTION reject_transaction_mutation()`,
	}

	db := m.db.WithContext(ctx)
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			m.logger.Error("Failed to install append-only guard", map[string]any{
				"error": err.Error(),
			})
			return err
		}
	}

	return nil
}

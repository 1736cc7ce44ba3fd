package mysql

import (
	"context"
	"fmt"

	"flexible-project/infrastructure/persistence"
	"flexible-project/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// Transactor runs a function inside a database transaction. The
// transaction travels in the context, so repositories pick it up through
// persistence.TxFromContext. Transient failures retry the whole function.
type Transactor struct {
	db          *gorm.DB
	retryConfig retry.Config
}

// NewTransactor creates a transactor using the default retry policy
func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db, retryConfig: retry.DefaultConfig}
}

// SetRetryConfig updates the retry configuration
func (t *Transactor) SetRetryConfig(config retry.Config) {
	t.retryConfig = config
}

// Execute runs fn in a transaction: commit on success, rollback on error.
// When ctx already carries a transaction, fn joins it and the outer caller
// owns commit and retry.
func (t *Transactor) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if persistence.TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	executeOnce := func(ctx context.Context) error {
		tx := t.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}

		if err := fn(persistence.ContextWithTx(ctx, tx)); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}

	return retry.ExecuteWithRetry(ctx, t.retryConfig, executeOnce)
}

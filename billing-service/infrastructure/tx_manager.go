package infrastructure

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type txKey struct{}

// SqlxTxManager runs functions inside a single database transaction. The
// open transaction is carried in the context so that repositories built on
// executor enlist automatically.
type SqlxTxManager struct {
	db *sqlx.DB
}

// NewSqlxTxManager creates a new SqlxTxManager
func NewSqlxTxManager(db *sqlx.DB) *SqlxTxManager {
	return &SqlxTxManager{db: db}
}

// WithinTx begins a transaction, runs fn with it in the context, and
// commits. Any error from fn rolls the transaction back and is returned
// unchanged.
func (m *SqlxTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Wrapf(err, "rollback failed: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}

// executor returns the statement executor for ctx: the enlisted transaction
// when one is open, the base connection otherwise.
func executor(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

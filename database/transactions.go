package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Transactor defines the interface for managing transactions
type Transactor interface {
	// WithTransaction executes fn within a transaction
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}

type DBTransactor struct {
	db *pgxpool.Pool
}

func NewDBTransactor(db *pgxpool.Pool) *DBTransactor {
	return &DBTransactor{db: db}
}

// WithTransaction runs fn with the transaction stored in its context. Stores
// pick it up through Executor. fn's error rolls the transaction back.
func (t *DBTransactor) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	tx, err := t.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	ctx = context.WithValue(ctx, txKey{}, tx)

	if err := fn(ctx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

type txKey struct{}

// Executor returns the transaction carried by ctx, or db when there is none.
func Executor(ctx context.Context, db DBTX) DBTX {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db
}

// Package db holds small database/sql helpers shared by the stores.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// WithTx runs fn in a transaction that is committed when fn returns nil
// and rolled back otherwise.
func WithTx(ctx context.Context, conn *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Null stores the zero value of v as NULL.
func Null[T int64 | float64 | string](v T) sql.Null[T] {
	var zero T
	return sql.Null[T]{V: v, Valid: v != zero}
}

// NullInt is Null for the int fields of media.Info.
func NullInt(v int) sql.Null[int64] {
	return Null(int64(v))
}

// Value reads a nullable column, NULL becoming the zero value.
func Value[T any](n sql.Null[T]) T {
	if !n.Valid {
		var zero T
		return zero
	}
	return n.V
}

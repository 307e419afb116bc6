package dbx

import (
	"context"
	"database/sql"
)

// Queryer/Execer/Getter let these helpers work with *sql.DB and *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
type Getter interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Runner is what a read needs; *sql.DB and *sql.Tx both satisfy it.
type Runner interface {
	Queryer
	Getter
}

func Query(ctx context.Context, q Queryer, query string, args ...any) (*sql.Rows, error) {
	return q.QueryContext(ctx, query, args...)
}
func Exec(ctx context.Context, e Execer, query string, args ...any) (sql.Result, error) {
	return e.ExecContext(ctx, query, args...)
}
func Get(ctx context.Context, g Getter, query string, args ...any) *sql.Row {
	return g.QueryRowContext(ctx, query, args...)
}

// WithinTx runs fn in a transaction (commit on nil, rollback on error).
func WithinTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	return WithinTxOptions(ctx, db, nil, fn)
}

// WithinTxOptions is WithinTx with explicit isolation / read-only options.
func WithinTxOptions(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// SnapshotOptions pins one consistent view for a sequence of reads.
var SnapshotOptions = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// RowsAffected turns "0 rows touched" into sql.ErrNoRows.
func RowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

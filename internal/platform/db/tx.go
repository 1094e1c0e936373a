package db

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX: *sql.DB と *sql.Tx の共通部分。
// ストア層はこれを受け取り、Tx内かどうかを意識しない。
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RunInTx: Txを開始して fn を実行する。fn が nil を返せば COMMIT、
// エラーまたは panic なら ROLLBACK。打刻の「評価して追記」はこの中で行う。
func RunInTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	done := false
	defer func() {
		if !done {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	done = true
	return tx.Commit()
}

// ReadOnly: 読み取り専用Tx。複数クエリを同一スナップショットで読むときに使う。
func ReadOnly(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx DBTX) error) error {
	return RunInTx(ctx, db, &sql.TxOptions{ReadOnly: true}, fn)
}

package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/garnizeh/trivia/internal/db"
	"github.com/garnizeh/trivia/pkg/repository"
)

// querier is satisfied by both *db.DB and *db.Tx.
type querier interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRow(ctx context.Context, query string, args ...any) *sql.Row
	QueryRows(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   querier
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.QuestionRepo = (*SQLiteRepo)(nil)
var _ repository.CategoryRepo = (*SQLiteRepo)(nil)
var _ repository.Store = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

// InTx runs fn on a repository bound to a new transaction. Called on a
// repository that is already transactional, it reuses that transaction.
func (r *SQLiteRepo) InTx(ctx context.Context, fn func(tx repository.Store) error) error {
	d, ok := r.conn.(*db.DB)
	if !ok {
		return fn(r)
	}
	return d.WithTx(ctx, func(tx *db.Tx) error {
		return fn(&SQLiteRepo{conn: tx, logger: r.logger})
	})
}

// nullID maps the zero id to NULL so SQLite assigns the next rowid.
func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

// SqliteStore hands out SQLite backed repositories, one transaction each.
type SqliteStore struct {
	db       *sql.DB
	hashCost int
}

func NewSqliteStore(db *sql.DB, passwordHashCost int) *SqliteStore {
	return &SqliteStore{
		db:       db,
		hashCost: passwordHashCost,
	}
}

func (s *SqliteStore) Begin(ctx context.Context) (Repository, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &txRepo{
		conn:     &sqlConn{tx: tx},
		backend:  "sqlite",
		hashCost: s.hashCost,
	}, nil
}

func (s *SqliteStore) EnsureSchema(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymlog.sqlite.ensureSchema")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

var placeholderRegex = regexp.MustCompile(`\$\d+`)

// rebind turns $N placeholders into sqlite's positional ones.
// Only valid when every $N is used once and in order.
func rebind(query string) string {
	return placeholderRegex.ReplaceAllString(query, "?")
}

type sqlConn struct {
	tx *sql.Tx
}

func (c *sqlConn) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := c.tx.ExecContext(ctx, rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (c *sqlConn) queryRow(ctx context.Context, query string, args ...any) rowScanner {
	return c.tx.QueryRowContext(ctx, rebind(query), args...)
}

func (c *sqlConn) query(ctx context.Context, query string, args ...any) (resultRows, error) {
	rows, err := c.tx.QueryContext(ctx, rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return &sqlRows{Rows: rows}, nil
}

func (c *sqlConn) commit(_ context.Context) error {
	return c.tx.Commit()
}

func (c *sqlConn) rollback(_ context.Context) error {
	return c.tx.Rollback()
}

func (c *sqlConn) isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (c *sqlConn) isUniqueViolation(err error) bool {
	return pkg.IsSqliteUniqueViolationError(err)
}

func (c *sqlConn) isForeignKeyViolation(err error) bool {
	return pkg.IsSqliteForeignKeyViolationError(err)
}

func (c *sqlConn) timeArg(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func (c *sqlConn) timeDest() (any, func() (time.Time, error)) {
	var performedAt sql.NullString
	return &performedAt, func() (time.Time, error) {
		if !performedAt.Valid || performedAt.String == "" {
			return time.Time{}, nil
		}
		return time.Parse(time.RFC3339Nano, performedAt.String)
	}
}

// sqlRows drops the Close error, it is reported again by Err.
type sqlRows struct {
	*sql.Rows
}

func (r *sqlRows) Close() {
	_ = r.Rows.Close()
}

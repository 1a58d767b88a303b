package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PsqlStore hands out Postgres backed repositories, one transaction each.
type PsqlStore struct {
	db       *pgxpool.Pool
	hashCost int
}

func NewPsqlStore(db *pgxpool.Pool, passwordHashCost int) *PsqlStore {
	return &PsqlStore{
		db:       db,
		hashCost: passwordHashCost,
	}
}

func (s *PsqlStore) Begin(ctx context.Context) (Repository, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &txRepo{
		conn:     &pgxConn{tx: tx},
		backend:  "psql",
		hashCost: s.hashCost,
	}, nil
}

func (s *PsqlStore) EnsureSchema(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymlog.psql.ensureSchema")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// no arguments, so pgx runs it over the simple protocol (multiple statements allowed)
	if _, err := s.db.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

type pgxConn struct {
	tx pgx.Tx
}

func (c *pgxConn) exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := c.tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (c *pgxConn) queryRow(ctx context.Context, query string, args ...any) rowScanner {
	return c.tx.QueryRow(ctx, query, args...)
}

func (c *pgxConn) query(ctx context.Context, query string, args ...any) (resultRows, error) {
	rows, err := c.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *pgxConn) commit(ctx context.Context) error {
	return c.tx.Commit(ctx)
}

func (c *pgxConn) rollback(ctx context.Context) error {
	return c.tx.Rollback(ctx)
}

func (c *pgxConn) isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func (c *pgxConn) isUniqueViolation(err error) bool {
	return pkg.IsUniqueViolationError(err)
}

func (c *pgxConn) isForeignKeyViolation(err error) bool {
	return pkg.IsForeignKeyViolationError(err)
}

func (c *pgxConn) timeArg(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func (c *pgxConn) timeDest() (any, func() (time.Time, error)) {
	var performedAt *time.Time
	return &performedAt, func() (time.Time, error) {
		if performedAt == nil {
			return time.Time{}, nil
		}
		return *performedAt, nil
	}
}

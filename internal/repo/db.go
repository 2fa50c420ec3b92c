// Package repo contains all database access logic for the Tripfolio API.
// Each aggregate has its own file with an interface and a Postgres
// implementation. No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Repos bundles one repository per aggregate, all bound to the same
// connection, pool, or transaction. Services that need multi-statement
// atomicity receive a Repos bound to a single transaction via TxRunner.
type Repos struct {
	Trips          TripRepo
	Days           DayRepo
	Accommodations AccommodationRepo
	Items          PlanItemRepo
	Segments       SegmentRepo
	Images         ImageRepo
}

// NewRepos constructs the full repository bundle over conn.
func NewRepos(conn db) Repos {
	return Repos{
		Trips:          NewTripRepo(conn),
		Days:           NewDayRepo(conn),
		Accommodations: NewAccommodationRepo(conn),
		Items:          NewPlanItemRepo(conn),
		Segments:       NewSegmentRepo(conn),
		Images:         NewImageRepo(conn),
	}
}

// TxRunner executes a function inside a single database transaction.
// The day reconciler and the adjacency-gated segment writes depend on this:
// their read-then-write sequences must not interleave with a concurrent
// mutation of the same trip, and a failure partway through must leave the
// database unchanged.
type TxRunner interface {
	// InTx begins a transaction, calls fn with a Repos bound to it, and
	// commits iff fn returns nil. Any error (from fn, begin, or commit)
	// rolls the transaction back and is returned to the caller.
	InTx(ctx context.Context, fn func(r Repos) error) error
}

// pgTxRunner is the pgxpool-backed TxRunner used in production.
type pgTxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constructs a TxRunner over the given pool.
func NewTxRunner(pool *pgxpool.Pool) TxRunner {
	return &pgTxRunner{pool: pool}
}

func (t *pgTxRunner) InTx(ctx context.Context, fn func(r Repos) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TxRunner: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TxRunner: commit: %w", err)
	}
	return nil
}

package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/syssam/essence/dialect"
)

// ExecQuerier wraps the standard Exec and Query methods.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Driver runs statements of one dialect against a database.
type Driver struct {
	ExecQuerier
	dialect dialect.Dialect
}

// NewDriver creates a new Driver with the given ExecQuerier and dialect.
func NewDriver(d dialect.Dialect, eq ExecQuerier) *Driver {
	return &Driver{ExecQuerier: eq, dialect: d}
}

// Open wraps the database/sql.Open method using the dialect's driver name.
func Open(d dialect.Dialect, source string) (*Driver, error) {
	db, err := sql.Open(d.DriverName(), source)
	if err != nil {
		return nil, err
	}
	return NewDriver(d, db), nil
}

// OpenDB wraps the given database/sql.DB with a Driver.
func OpenDB(d dialect.Dialect, db *sql.DB) *Driver {
	return NewDriver(d, db)
}

// DB returns the underlying *sql.DB instance, or nil when the driver
// wraps something else.
func (d *Driver) DB() *sql.DB {
	db, _ := d.ExecQuerier.(*sql.DB)
	return db
}

// Dialect returns the driver dialect.
func (d *Driver) Dialect() dialect.Dialect { return d.dialect }

// Exec executes a statement that returns no rows.
func (d *Driver) Exec(ctx context.Context, query string, args ...any) error {
	if _, err := d.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("dialect/sql: exec: %w", err)
	}
	return nil
}

// Count runs a query returning a single integer.
func (d *Driver) Count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := d.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("dialect/sql: query: %w", err)
	}
	return n, nil
}

// Close closes the underlying connection.
func (d *Driver) Close() error {
	if db := d.DB(); db != nil {
		return db.Close()
	}
	return nil
}

package sql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/syssam/essence/compiler/ast"
	"github.com/syssam/essence/dialect"
)

// Step is the work for one migration. Exists is empty for dialects with
// conditional table creation; otherwise Create runs only when Exists
// counts zero tables.
type Step struct {
	Table  string
	Exists string
	Create string
}

// Plan returns one step per migration in declaration order.
func Plan(d dialect.Dialect, migrations []ast.Migration) []Step {
	steps := make([]Step, 0, len(migrations))
	for _, m := range migrations {
		s := Step{
			Table:  m.Table,
			Create: d.CreateTable(m.Table, Columns(m.Fields)),
		}
		if !d.ConditionalCreate() {
			s.Exists = d.TableExistsQuery(m.Table)
		}
		steps = append(steps, s)
	}
	return steps
}

// Columns converts field definitions to dialect columns.
func Columns(fields []ast.FieldDef) []dialect.Column {
	cols := make([]dialect.Column, len(fields))
	for i, f := range fields {
		cols[i] = dialect.Column{
			Name:       f.Name,
			Type:       f.Type,
			PrimaryKey: f.PrimaryKey,
			Identity:   f.Identity,
		}
	}
	return cols
}

// ErrMigrate is matched by every MigrateError.
var ErrMigrate = errors.New("dialect/sql: migration failed")

// MigrateError reports the table whose migration failed.
type MigrateError struct {
	Table string
	Cause error
}

// Error implements the error interface.
func (e *MigrateError) Error() string {
	return fmt.Sprintf("dialect/sql: migrate table %s: %v", e.Table, e.Cause)
}

// Unwrap returns the underlying error.
func (e *MigrateError) Unwrap() error { return e.Cause }

// Is reports whether the target matches ErrMigrate.
func (e *MigrateError) Is(target error) bool { return target == ErrMigrate }

// Migrator applies migrations through a Driver.
type Migrator struct {
	drv    *Driver
	logger *slog.Logger
}

// MigrateOption configures a Migrator.
type MigrateOption func(*Migrator)

// WithLogger sets the logger used to report each table. The default is
// slog.Default().
func WithLogger(l *slog.Logger) MigrateOption {
	return func(m *Migrator) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMigrator returns a Migrator for drv.
func NewMigrator(drv *Driver, opts ...MigrateOption) *Migrator {
	m := &Migrator{drv: drv, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Migrate runs the migrations sequentially in declaration order and stops
// at the first failure.
func (m *Migrator) Migrate(ctx context.Context, migrations []ast.Migration) error {
	for _, s := range Plan(m.drv.Dialect(), migrations) {
		start := time.Now()
		applied, err := m.apply(ctx, s)
		if err != nil {
			m.logger.ErrorContext(ctx, "migration failed", "table", s.Table, "error", err)
			return &MigrateError{Table: s.Table, Cause: err}
		}
		m.logger.InfoContext(ctx, "migrated table",
			"table", s.Table,
			"applied", applied,
			"duration", time.Since(start),
		)
	}
	return nil
}

func (m *Migrator) apply(ctx context.Context, s Step) (bool, error) {
	if s.Exists != "" {
		n, err := m.drv.Count(ctx, s.Exists)
		if err != nil {
			return false, err
		}
		if n > 0 {
			return false, nil
		}
	}
	if err := m.drv.Exec(ctx, s.Create); err != nil {
		if IsTableExistsError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Package sql implements the MySQL and MSSQL dialects and runs migrations
// against a live database.
//
// # Dialects
//
// For resolves a dialect by name:
//
//	d, err := sql.For(dialect.MSSQL)
//	d.Insert("items", []string{"name", "price"})
//	// INSERT INTO items (name, price) VALUES (@name, @price)
//
// # Migrations
//
// Plan turns AST migrations into the statements a dialect runs, in
// declaration order. The generated db package embeds the same plan, and
// Migrator executes it directly:
//
//	drv, err := sql.Open(d, dsn)
//	if err != nil {
//	    return err
//	}
//	defer drv.Close()
//	err = sql.NewMigrator(drv).Migrate(ctx, tree.Migrations)
//
// A CREATE TABLE that fails because the table already exists is not a
// failure; see IsTableExistsError.
//
// # Statistics
//
// Instrument wraps a driver to count statements and report slow ones:
//
//	inst, stats := sql.Instrument(drv, sql.WithSlowQueryLog(logger))
//
// The driver for the dialect must be registered by the caller, for
// example with a blank import of github.com/go-sql-driver/mysql.
package sql

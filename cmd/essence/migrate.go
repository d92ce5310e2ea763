package main

import (
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/microsoft/go-mssqldb"

	"github.com/syssam/essence/compiler/load"
	dsql "github.com/syssam/essence/dialect/sql"
)

// MigrateCmd applies the migrations of a source file.
type MigrateCmd struct {
	Input string `arg:"" type:"existingfile" help:"Essence source file or serialized AST (.yaml, .yml, .json)."`
	DSN   string `help:"Data source name. Defaults to the connect directive." env:"ESSENCE_DSN"`
}

// Run implements the migrate command.
func (c *MigrateCmd) Run(a *app) error {
	res, err := load.File(c.Input)
	if err != nil {
		return err
	}
	a.warn(res.Warnings)
	if !res.AST.HasDB() {
		return errors.New("migrate: no db type directive")
	}
	d, err := dsql.For(res.AST.DB.Dialect)
	if err != nil {
		return err
	}
	dsn := c.DSN
	if dsn == "" {
		if res.AST.DB.URL == "" {
			return errors.New("migrate: no --dsn and no connect directive")
		}
		dsn = d.Conn(res.AST.DB.URL).DSN
	}
	if len(res.AST.Migrations) == 0 {
		a.logger.Info("nothing to migrate", "input", c.Input)
		return nil
	}

	drv, err := a.open(d, dsn)
	if err != nil {
		return fmt.Errorf("migrate: open %s: %w", d.Name(), err)
	}
	defer drv.Close()

	inst, stats := dsql.Instrument(drv, dsql.WithSlowQueryLog(a.logger))
	err = dsql.NewMigrator(inst, dsql.WithLogger(a.logger)).Migrate(a.ctx, res.AST.Migrations)
	a.logger.Debug("migration statements", "stats", stats.Stats().String())
	return err
}

package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/essence/compiler/ast"
	"github.com/syssam/essence/compiler/gen"
	dsql "github.com/syssam/essence/dialect/sql"
)

// NewGenerator returns a generator for a wired with the SQL dialect
// generator and, when a selects a database, its dialect.
//
// Example:
//
//	g, err := sql.NewGenerator(a, cfg)
//	if err != nil {
//	    return err
//	}
//	artifacts, err := g.Artifacts(ctx)
func NewGenerator(a *ast.AST, cfg *gen.Config) (*gen.JenniferGenerator, error) {
	g := gen.NewJenniferGenerator(a, cfg)
	if a.HasDB() {
		d, err := dsql.For(a.DB.Dialect)
		if err != nil {
			return nil, err
		}
		g.WithSQL(d)
	}
	return g.WithDialect(NewDialect(g)), nil
}

// Dialect implements gen.DialectGenerator for gin services backed by
// database/sql. MySQL and MSSQL differences are read from the
// dialect.Dialect of the helper.
type Dialect struct {
	helper gen.GeneratorHelper
}

// NewDialect creates a new SQL dialect generator.
// The helper parameter should be a *gen.JenniferGenerator.
func NewDialect(helper gen.GeneratorHelper) *Dialect {
	return &Dialect{helper: helper}
}

// Name returns the dialect name.
func (d *Dialect) Name() string {
	return "sql"
}

// GenApp generates the program entry point (app.go).
// Includes: env loading, database init, middlewares, route mounting.
func (d *Dialect) GenApp() *jen.File {
	return genApp(d.helper)
}

// GenDB generates db/db.go.
// Includes: connection, readiness gate, row unwrapping, migrations.
func (d *Dialect) GenDB() *jen.File {
	return genDB(d.helper)
}

// GenAuth generates auth/auth.go.
func (d *Dialect) GenAuth() *jen.File {
	return genAuth(d.helper)
}

// GenAuthRoutes generates routes/auth.go.
func (d *Dialect) GenAuthRoutes() *jen.File {
	return genAuthRoutes(d.helper)
}

// GenIndex generates routes/index.go.
func (d *Dialect) GenIndex() *jen.File {
	return genIndex(d.helper)
}

// GenGroup generates the routes file of a group.
func (d *Dialect) GenGroup(g *gen.Group) *jen.File {
	return genGroup(d.helper, g)
}

// Verify Dialect implements gen.DialectGenerator at compile time.
var _ gen.DialectGenerator = (*Dialect)(nil)

package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/essence/compiler/ast"
	"github.com/syssam/essence/dialect"
)

// ServiceGenerator generates the service-level files.
// Each method is called once per generation run and returns nil when
// the AST does not call for the file.
type ServiceGenerator interface {
	// GenApp generates the program entry point (app.go).
	GenApp() *jen.File
	// GenDB generates the connection and migration module (db/db.go).
	GenDB() *jen.File
	// GenAuth generates the token middleware (auth/auth.go).
	GenAuth() *jen.File
	// GenAuthRoutes generates the register and login routes (routes/auth.go).
	GenAuthRoutes() *jen.File
	// GenIndex generates the route index (routes/index.go).
	GenIndex() *jen.File
}

// GroupGenerator generates per-group code.
// GenGroup is called once per route group.
type GroupGenerator interface {
	// GenGroup generates the group's routes file (routes/{file}).
	GenGroup(g *Group) *jen.File
}

// DialectGenerator defines the interface implemented by the packages
// rendering the service.
//
//	┌────────────────────────────────────────────┐
//	│             JenniferGenerator              │
//	│  (orchestration: parallel rendering)       │
//	└─────────────────────┬──────────────────────┘
//	                      │ uses
//	                      ▼
//	┌────────────────────────────────────────────┐
//	│             DialectGenerator               │
//	│  (ServiceGenerator + GroupGenerator)       │
//	└─────────────────────┬──────────────────────┘
//	                      │ implemented by
//	                      ▼
//	               ┌─────────────┐
//	               │ gen/sql     │
//	               └─────────────┘
//
// Database differences are not expressed by separate generators: they
// are read from the dialect.Dialect returned by GeneratorHelper.SQL.
type DialectGenerator interface {
	// Name returns the generator name.
	Name() string
	ServiceGenerator
	GroupGenerator
}

// GeneratorHelper provides helper methods for dialect implementations.
// JenniferGenerator implements this interface, allowing generator packages
// to use helper methods without importing the full generator.
type GeneratorHelper interface {
	// NewFile creates a new Jennifer file with the standard header comment.
	NewFile(pkg string) *jen.File

	// AST returns the compiled configuration.
	AST() *ast.AST

	// Groups returns the named route groups in grouping order.
	Groups() []*Group

	// Config returns the generation config.
	Config() *Config

	// SQL returns the database dialect, or nil when no database is set.
	SQL() dialect.Dialect

	// PkgPath returns the import path of a package of the generated service.
	PkgPath(pkg string) string
}

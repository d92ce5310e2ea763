// Package gen renders the Go service described by an essence AST.
//
// # Architecture
//
//	AST (compiler/ast)
//	        ↓
//	   NameGroups (route groups with identifiers and file names)
//	        ↓
//	   DialectGenerator (gen/sql, reading dialect.Dialect)
//	        ↓
//	   Artifacts (rendered in parallel) → Writer
//
// # Interface Hierarchy
//
//	DialectGenerator
//	├── Name() string
//	├── ServiceGenerator (GenApp, GenDB, GenAuth, GenAuthRoutes, GenIndex)
//	└── GroupGenerator (GenGroup, once per route group)
//
// A generator method returns nil when the AST does not call for its file.
//
// # Error Handling
//
//   - ConfigError: invalid options or config file values
//   - GenerationError: an artifact failed to render or write
//
// Example error handling:
//
//	artifacts, err := g.Artifacts(ctx)
//	if gen.IsGenerationError(err) {
//	    var ge *gen.GenerationError
//	    errors.As(err, &ge)
//	    log.Printf("artifact %s failed during %s", ge.Artifact, ge.Phase)
//	}
//
// # Configuration
//
// Generation is configured with functional options or an essence.yaml
// file read by LoadConfig:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithModule("example.com/shop"),
//	    gen.WithBcryptCost(12),
//	)
package gen

package gen

import (
	"bytes"
	"context"
	"path"
	"sort"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/essence/compiler/ast"
	"github.com/syssam/essence/dialect"
)

// Artifact is one generated file. Path is slash-separated and relative
// to the output root.
type Artifact struct {
	Path    string
	Content []byte
}

// JenniferGenerator generates the service code using Jennifer.
// Rendering reads the AST only, so artifacts are rendered in parallel.
type JenniferGenerator struct {
	ast    *ast.AST
	cfg    *Config
	groups []*Group
	sql    dialect.Dialect

	// Generator for the service files.
	dialect DialectGenerator
}

// NewJenniferGenerator creates a new Jennifer-based generator for a.
// A nil cfg means the defaults. You must call WithDialect() to set a
// generator before calling Artifacts(), and WithSQL() when a has a
// database.
//
// Example:
//
//	import "github.com/syssam/essence/compiler/gen/sql"
//
//	g := gen.NewJenniferGenerator(a, cfg).WithSQL(d)
//	g.WithDialect(sql.NewDialect(g))
//	artifacts, err := g.Artifacts(ctx)
func NewJenniferGenerator(a *ast.AST, cfg *Config) *JenniferGenerator {
	if cfg == nil {
		cfg = defaults()
	}
	return &JenniferGenerator{
		ast:    a,
		cfg:    cfg,
		groups: NameGroups(ast.GroupRoutes(a.Routes)),
	}
}

// WithWorkers sets the number of parallel workers.
func (g *JenniferGenerator) WithWorkers(n int) *JenniferGenerator {
	if n > 0 {
		g.cfg.Workers = n
	}
	return g
}

// WithSQL sets the database dialect the generated code targets.
func (g *JenniferGenerator) WithSQL(d dialect.Dialect) *JenniferGenerator {
	g.sql = d
	return g
}

// WithDialect sets the generator rendering the service files.
func (g *JenniferGenerator) WithDialect(d DialectGenerator) *JenniferGenerator {
	if d != nil {
		g.dialect = d
	}
	return g
}

// renderTask is a single file rendering task.
type renderTask struct {
	path string
	gen  func() *jen.File
}

func (g *JenniferGenerator) tasks() []renderTask {
	d := g.dialect
	tasks := []renderTask{
		{path: "app.go", gen: d.GenApp},
		{path: "db/db.go", gen: d.GenDB},
		{path: "auth/auth.go", gen: d.GenAuth},
		{path: "routes/auth.go", gen: d.GenAuthRoutes},
		{path: "routes/index.go", gen: d.GenIndex},
	}
	for _, grp := range g.groups {
		tasks = append(tasks, renderTask{
			path: path.Join("routes", grp.File),
			gen:  func() *jen.File { return d.GenGroup(grp) },
		})
	}
	return tasks
}

// Artifacts renders every artifact in parallel and returns them sorted
// by path. Files the dialect generator declines (nil) are skipped.
// Returns an error if no generator has been set via WithDialect().
func (g *JenniferGenerator) Artifacts(ctx context.Context) ([]Artifact, error) {
	if g.dialect == nil {
		return nil, NewConfigError("Dialect", nil, "no dialect set: call WithDialect() before Artifacts()")
	}
	if g.ast.HasDB() && g.sql == nil {
		return nil, NewConfigError("SQL", g.ast.DB.Dialect, "database set but no dialect: call WithSQL() before Artifacts()")
	}

	tasks := g.tasks()
	out := make([]*Artifact, len(tasks))

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(max(g.cfg.Workers, 1))
	for i, t := range tasks {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f := t.gen()
			if f == nil {
				return nil
			}
			var buf bytes.Buffer
			if err := f.Render(&buf); err != nil {
				return NewGenerationError(t.path, "render", "", err)
			}
			out[i] = &Artifact{Path: t.path, Content: buf.Bytes()}
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}

	artifacts := make([]Artifact, 0, len(out)+1)
	for _, a := range out {
		if a != nil {
			artifacts = append(artifacts, *a)
		}
	}
	mod, err := g.goMod()
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, Artifact{Path: "go.mod", Content: mod})
	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].Path < artifacts[j].Path
	})
	return artifacts, nil
}

// =============================================================================
// GeneratorHelper interface implementation
// =============================================================================

// NewFile creates a new Jennifer file with the standard header comment.
func (g *JenniferGenerator) NewFile(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	if g.cfg.Header != "" {
		f.HeaderComment(g.cfg.Header)
	}
	return f
}

// AST returns the compiled configuration.
func (g *JenniferGenerator) AST() *ast.AST {
	return g.ast
}

// Groups returns the named route groups in grouping order.
func (g *JenniferGenerator) Groups() []*Group {
	return g.groups
}

// Config returns the generation config.
func (g *JenniferGenerator) Config() *Config {
	return g.cfg
}

// SQL returns the database dialect, or nil when no database is set.
func (g *JenniferGenerator) SQL() dialect.Dialect {
	if !g.ast.HasDB() {
		return nil
	}
	return g.sql
}

// PkgPath returns the import path of a package of the generated service.
func (g *JenniferGenerator) PkgPath(pkg string) string {
	return g.cfg.PkgPath(pkg)
}

// Package compiler runs the essence pipeline end to end: directives are
// folded into an AST, routes are grouped and the SQL dialect generator
// renders the service artifacts.
package compiler

import (
	"context"
	"fmt"

	"github.com/syssam/essence/compiler/ast"
	"github.com/syssam/essence/compiler/gen"
	gensql "github.com/syssam/essence/compiler/gen/sql"
	"github.com/syssam/essence/compiler/load"
	"github.com/syssam/essence/compiler/parse"
)

// Result is the outcome of a successful compile.
type Result struct {
	AST       *ast.AST
	Groups    []*gen.Group
	Warnings  []parse.Warning
	Artifacts []gen.Artifact
	Config    *gen.Config
}

// Compile compiles src. A fatal directive error aborts the compile and no
// artifacts are produced.
func Compile(ctx context.Context, src string, opts ...gen.Option) (*Result, error) {
	res, err := parse.Parse(src)
	if err != nil {
		return nil, err
	}
	return generate(ctx, res, opts...)
}

// CompileFile reads and compiles the source file at path.
func CompileFile(ctx context.Context, path string, opts ...gen.Option) (*Result, error) {
	res, err := load.File(path)
	if err != nil {
		return nil, err
	}
	return generate(ctx, res, opts...)
}

func generate(ctx context.Context, res *parse.Result, opts ...gen.Option) (*Result, error) {
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	g, err := gensql.NewGenerator(res.AST, cfg)
	if err != nil {
		return nil, err
	}
	artifacts, err := g.Artifacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("compiler: %w", err)
	}
	return &Result{
		AST:       res.AST,
		Groups:    g.Groups(),
		Warnings:  res.Warnings,
		Artifacts: artifacts,
		Config:    cfg,
	}, nil
}

// Write materializes the artifacts below outDir.
func (r *Result) Write(ctx context.Context, outDir string) (*gen.WriterMetrics, error) {
	w := gen.NewWriter(outDir, r.Config)
	if err := w.Write(ctx, r.Artifacts); err != nil {
		return nil, err
	}
	return w.Metrics(), nil
}

// Artifact returns the artifact with the given path, or nil.
func (r *Result) Artifact(path string) *gen.Artifact {
	for i := range r.Artifacts {
		if r.Artifacts[i].Path == path {
			return &r.Artifacts[i]
		}
	}
	return nil
}

package main

import (
	"time"

	"github.com/syssam/essence/compiler"
	"github.com/syssam/essence/compiler/gen"
	"github.com/syssam/essence/scaffold"
)

// GenerateCmd compiles a source file and writes the service.
type GenerateCmd struct {
	Input  string `arg:"" type:"existingfile" help:"Essence source file or serialized AST (.yaml, .yml, .json)."`
	Output string `arg:"" type:"path" help:"Output directory."`

	Module       string `help:"Go module path of the generated service."`
	NoViews      bool   `help:"Do not create the views directory."`
	SkipFrontend bool   `help:"Do not scaffold the frontend client."`
}

// Run implements the generate command.
func (c *GenerateCmd) Run(a *app) error {
	res, err := c.compile(a)
	if err != nil {
		return err
	}
	if c.SkipFrontend {
		return nil
	}
	plan := scaffold.NewPlan(res.AST.Frontend, res.AST.ListenPort())
	if plan == nil {
		return nil
	}
	// The backend is already written; a scaffold failure is only reported.
	if err := scaffold.New(scaffold.WithRunner(a.runner), scaffold.WithLogger(a.logger)).Run(a.ctx, c.Output, plan); err != nil {
		a.logger.Error("frontend not scaffolded", "error", err)
	}
	return nil
}

// compile compiles and writes the backend artifacts.
func (c *GenerateCmd) compile(a *app) (*compiler.Result, error) {
	var overrides []gen.Option
	if c.Module != "" {
		overrides = append(overrides, gen.WithModule(c.Module))
	}
	if c.NoViews {
		overrides = append(overrides, gen.WithoutViews())
	}
	opts, err := a.options(overrides...)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := compiler.CompileFile(a.ctx, c.Input, opts...)
	if err != nil {
		return nil, err
	}
	a.warn(res.Warnings)
	m, err := res.Write(a.ctx, c.Output)
	if err != nil {
		return nil, err
	}
	a.logger.Info("service generated",
		"output", c.Output,
		"files", m.FilesWritten,
		"bytes", m.TotalBytes,
		"duration", time.Since(start),
	)
	for _, art := range res.Artifacts {
		a.logger.Debug("wrote", "path", art.Path, "bytes", len(art.Content))
	}
	return res, nil
}

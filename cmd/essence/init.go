package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/syssam/essence/compiler/gen"
)

// InitCmd writes a generator config file holding the defaults.
type InitCmd struct {
	Path    string `arg:"" optional:"" default:"essence.yaml" type:"path" help:"Config file to write."`
	Module  string `help:"Go module path of the generated service."`
	Workers int    `help:"Number of parallel workers." default:"0"`
	Force   bool   `help:"Overwrite an existing file."`
}

// Run implements the init command.
func (c *InitCmd) Run(a *app) error {
	if _, err := os.Stat(c.Path); err == nil && !c.Force {
		return fmt.Errorf("init: %s exists, pass --force to overwrite", c.Path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("init: %w", err)
	}
	var opts []gen.Option
	if c.Module != "" {
		opts = append(opts, gen.WithModule(c.Module))
	}
	if c.Workers > 0 {
		opts = append(opts, gen.WithWorkers(c.Workers))
	}
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}
	if err := gen.SaveConfig(c.Path, cfg); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	a.logger.Info("config written", "path", c.Path)
	return nil
}

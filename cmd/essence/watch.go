package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce coalesces the burst of events editors emit on save.
const debounce = 100 * time.Millisecond

// WatchCmd recompiles on every change of the source file.
type WatchCmd struct {
	Input  string `arg:"" type:"existingfile" help:"Essence source file or serialized AST (.yaml, .yml, .json)."`
	Output string `arg:"" type:"path" help:"Output directory."`

	Module  string `help:"Go module path of the generated service."`
	NoViews bool   `help:"Do not create the views directory."`
}

// Run implements the watch command. It compiles once, then on every
// change until the context is canceled. Compile errors are logged and
// watching continues.
func (c *WatchCmd) Run(a *app) error {
	g := &GenerateCmd{Input: c.Input, Output: c.Output, Module: c.Module, NoViews: c.NoViews}
	rebuild := func() {
		if _, err := g.compile(a); err != nil {
			a.logger.Error("compile failed", "input", c.Input, "error", err)
		}
	}
	rebuild()
	a.logger.Info("watching", "input", c.Input)
	return watch(a.ctx, c.Input, rebuild)
}

// watch calls onChange after writes to path settle. The parent directory
// is watched so that editors replacing the file are seen too.
func watch(ctx context.Context, path string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
	}
}

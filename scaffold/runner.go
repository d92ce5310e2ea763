package scaffold

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Runner executes an external command in dir.
type Runner interface {
	Run(ctx context.Context, dir string, cmd Command) error
}

// ExecRunner runs commands with os/exec. Nil writers default to the
// process stdout and stderr.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, dir string, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, dir string, cmd Command) error

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, dir string, cmd Command) error {
	return f(ctx, dir, cmd)
}

// Command essence compiles essence source files into gin services.
//
//	essence shop.essence ./shop
//	essence watch shop.essence ./shop
//	essence inspect shop.essence --format json
//	essence migrate shop.essence --dsn 'root:secret@tcp(localhost:3306)/shop'
//	essence init essence.yaml --module example.com/shop
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/syssam/essence/compiler/gen"
	"github.com/syssam/essence/compiler/parse"
	"github.com/syssam/essence/dialect"
	dsql "github.com/syssam/essence/dialect/sql"
	"github.com/syssam/essence/scaffold"
)

// CLI is the command tree.
type CLI struct {
	Verbose bool   `help:"Enable debug logging." short:"v"`
	Config  string `help:"Generator config file (YAML)." type:"path" placeholder:"FILE"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Compile a source file and write the service."`
	Watch    WatchCmd    `cmd:"" help:"Recompile whenever the source file changes."`
	Inspect  InspectCmd  `cmd:"" help:"Print the AST of a source file."`
	Migrate  MigrateCmd  `cmd:"" help:"Apply the migrations of a source file to a database."`
	Init     InitCmd     `cmd:"" help:"Write a generator config file with the defaults."`
}

// app carries the dependencies shared by commands.
type app struct {
	ctx        context.Context
	stdout     io.Writer
	logger     *slog.Logger
	configPath string
	open       func(d dialect.Dialect, dsn string) (*dsql.Driver, error)
	runner     scaffold.Runner
}

// usageError marks command line errors.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "essence:", err)
		var ue *usageError
		if errors.As(err, &ue) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// execute parses args and runs the selected command.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...func(*app)) error {
	cli := &CLI{}
	a := &app{
		ctx:    ctx,
		stdout: stdout,
		open:   dsql.Open,
	}
	parser, err := kong.New(cli,
		kong.Name("essence"),
		kong.Description("Compile the essence directive language into a gin service."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
		kong.Bind(a),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return &usageError{err: err}
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	a.configPath = cli.Config
	for _, opt := range opts {
		opt(a)
	}
	return kctx.Run()
}

// options returns the generator options from the config file followed by
// the command line overrides.
func (a *app) options(overrides ...gen.Option) ([]gen.Option, error) {
	var opts []gen.Option
	if a.configPath != "" {
		cfg, err := gen.LoadConfig(a.configPath)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("loaded config", "path", a.configPath)
		opts = append(opts, gen.WithConfig(cfg))
	}
	return append(opts, overrides...), nil
}

// warn logs lines that had no effect.
func (a *app) warn(warnings []parse.Warning) {
	for _, w := range warnings {
		a.logger.Warn("line ignored",
			"line", w.Line.Num,
			"kind", w.Kind.String(),
			"text", w.Line.Text,
		)
	}
}

package scaffold

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("scaffold").Delims("[[", "]]").ParseFS(templateFS, "templates/*.tmpl"),
)

// Source files written below client/src, keyed by template name.
var sourceFiles = []struct{ template, file string }{
	{"axiosInstance.js.tmpl", "axiosInstance.js"},
	{"Login.js.tmpl", "Login.js"},
	{"Register.js.tmpl", "Register.js"},
}

const (
	logoImport   = "import logo from './logo.svg';"
	routerImport = `import { BrowserRouter as Router, Routes, Route } from 'react-router-dom';
import Login from './Login';
import Register from './Register';`
)

var appHeader = regexp.MustCompile(`(?s)<header className="App-header">.*?</header>`)

// ErrScaffold is matched by every StepError.
var ErrScaffold = errors.New("scaffold: frontend setup failed")

// StepError reports the provisioning step that failed.
type StepError struct {
	Step string
	Err  error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("scaffold: %s: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error { return e.Err }

// Is reports whether the target matches ErrScaffold.
func (e *StepError) Is(target error) bool { return target == ErrScaffold }

// Scaffolder executes plans.
type Scaffolder struct {
	runner Runner
	logger *slog.Logger
}

// Option configures a Scaffolder.
type Option func(*Scaffolder)

// WithRunner sets the command runner. The default is ExecRunner.
func WithRunner(r Runner) Option {
	return func(s *Scaffolder) {
		if r != nil {
			s.runner = r
		}
	}
}

// WithLogger sets the progress logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Scaffolder) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Scaffolder.
func New(opts ...Option) *Scaffolder {
	s := &Scaffolder{runner: ExecRunner{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run provisions the client project below projectDir. A nil plan is a
// no-op. The first failing step aborts the run and is returned.
func (s *Scaffolder) Run(ctx context.Context, projectDir string, p *Plan) error {
	if p == nil {
		return nil
	}
	dir := filepath.Join(projectDir, ClientDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return s.fail(ctx, "create client directory", err)
	}
	s.logger.InfoContext(ctx, "setting up react frontend", "dir", dir)
	for _, c := range p.Commands {
		s.logger.InfoContext(ctx, "running", "cmd", c.String())
		if err := s.runner.Run(ctx, dir, c); err != nil {
			return s.fail(ctx, c.String(), err)
		}
	}
	if err := PatchProxy(filepath.Join(dir, "package.json"), p.BackendURL); err != nil {
		return s.fail(ctx, "patch package.json", err)
	}
	src := filepath.Join(dir, "src")
	if err := WriteSources(src, p.BackendURL); err != nil {
		return s.fail(ctx, "write sources", err)
	}
	if err := RewireApp(filepath.Join(src, "App.js")); err != nil {
		return s.fail(ctx, "rewire App.js", err)
	}
	s.logger.InfoContext(ctx, "react frontend ready",
		"proxy", p.BackendURL,
		"start", fmt.Sprintf("cd %s && npm start", dir),
	)
	return nil
}

func (s *Scaffolder) fail(ctx context.Context, step string, err error) error {
	s.logger.ErrorContext(ctx, "frontend setup failed", "step", step, "error", err)
	return &StepError{Step: step, Err: err}
}

// PatchProxy sets the dev-server proxy of the package.json at path.
// Top-level keys are rewritten in sorted order.
func PatchProxy(path, backendURL string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	pkg := make(map[string]any)
	if err := json.Unmarshal(buf, &pkg); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	pkg["proxy"] = backendURL
	out, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(out, '\n'), 0o644)
}

// WriteSources renders the client source templates into dir.
func WriteSources(dir, backendURL string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data := struct{ BackendURL string }{BackendURL: backendURL}
	for _, f := range sourceFiles {
		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, f.template, data); err != nil {
			return fmt.Errorf("execute %s: %w", f.template, err)
		}
		if err := os.WriteFile(filepath.Join(dir, f.file), buf.Bytes(), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// RewireApp replaces the logo import and the header of the generated
// App.js with the login and register routes.
func RewireApp(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var router bytes.Buffer
	if err := templates.ExecuteTemplate(&router, "AppRouter.js.tmpl", nil); err != nil {
		return err
	}
	app := strings.Replace(string(buf), logoImport, routerImport, 1)
	app = appHeader.ReplaceAllLiteralString(app, strings.TrimRight(router.String(), "\n"))
	return os.WriteFile(path, []byte(app), 0o644)
}

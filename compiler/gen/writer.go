package gen

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Directories created below the output root besides the artifact ones.
const (
	PublicDir = "public"
	ViewsDir  = "views"
)

// Writer materializes artifacts below an output directory with parallel
// writes.
type Writer struct {
	outDir  string
	workers int
	noViews bool

	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks materialization.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// NewWriter creates a writer for outDir. A nil cfg means the defaults.
func NewWriter(outDir string, cfg *Config) *Writer {
	if cfg == nil {
		cfg = defaults()
	}
	return &Writer{
		outDir:  outDir,
		workers: cfg.Workers,
		noViews: cfg.NoViews,
		metrics: &WriterMetrics{},
	}
}

// Metrics returns the write metrics.
func (w *Writer) Metrics() *WriterMetrics {
	return w.metrics
}

// Write creates the output layout and writes every artifact, replacing
// existing files.
func (w *Writer) Write(ctx context.Context, artifacts []Artifact) error {
	dirs := []string{w.outDir, filepath.Join(w.outDir, "routes"), filepath.Join(w.outDir, PublicDir)}
	if !w.noViews {
		dirs = append(dirs, filepath.Join(w.outDir, ViewsDir))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return NewGenerationError(dir, "write", "create directory", err)
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(w.workers, 1))
	for _, a := range artifacts {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(a)
			}
		})
	}
	return eg.Wait()
}

// writeFile writes a single artifact.
func (w *Writer) writeFile(a Artifact) error {
	path := filepath.Join(w.outDir, filepath.FromSlash(a.Path))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return NewGenerationError(a.Path, "write", "create directory", err)
	}
	if err := os.WriteFile(path, a.Content, 0o644); err != nil {
		return NewGenerationError(a.Path, "write", "", err)
	}

	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(a.Content))
	w.mu.Unlock()
	return nil
}

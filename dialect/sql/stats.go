package sql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// DefaultSlowThreshold is the duration above which a statement is slow.
const DefaultSlowThreshold = 100 * time.Millisecond

// QueryStats holds statement execution statistics.
type QueryStats struct {
	TotalQueries  atomic.Int64
	TotalExecs    atomic.Int64
	TotalDuration atomic.Int64 // nanoseconds
	SlowQueries   atomic.Int64
	Errors        atomic.Int64
}

// Stats returns a snapshot of the current statistics.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// StatsSnapshot is a point-in-time snapshot of QueryStats.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// AvgDuration returns the average statement duration.
func (s StatsSnapshot) AvgDuration() time.Duration {
	total := s.TotalQueries + s.TotalExecs
	if total == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(total)
}

// String returns a one-line summary.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"queries=%d execs=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.AvgDuration(),
		s.SlowQueries, s.Errors,
	)
}

// SlowQueryHook is called for every statement slower than the threshold.
type SlowQueryHook func(ctx context.Context, query string, duration time.Duration)

// StatsOption configures Instrument.
type StatsOption func(*statsExecQuerier)

// WithSlowThreshold sets the slow statement threshold.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *statsExecQuerier) {
		s.threshold = d
	}
}

// WithSlowQueryHook sets the slow statement callback.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *statsExecQuerier) {
		s.hook = hook
	}
}

// WithSlowQueryLog logs slow statements at warn level to l, or to
// slog.Default() when l is nil.
func WithSlowQueryLog(l *slog.Logger) StatsOption {
	if l == nil {
		l = slog.Default()
	}
	return WithSlowQueryHook(func(ctx context.Context, query string, duration time.Duration) {
		l.WarnContext(ctx, "slow statement", "duration", duration, "query", query)
	})
}

// Instrument returns a driver sharing the connection of drv that records
// statistics for every statement. Closing stays with drv.
//
//	inst, stats := sql.Instrument(drv, sql.WithSlowQueryLog(logger))
//	err := sql.NewMigrator(inst).Migrate(ctx, migrations)
//	logger.Debug("statements", "stats", stats.Stats())
func Instrument(drv *Driver, opts ...StatsOption) (*Driver, *QueryStats) {
	s := &statsExecQuerier{
		ExecQuerier: drv.ExecQuerier,
		stats:       &QueryStats{},
		threshold:   DefaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return NewDriver(drv.Dialect(), s), s.stats
}

// statsExecQuerier records statistics around an ExecQuerier.
type statsExecQuerier struct {
	ExecQuerier
	stats     *QueryStats
	threshold time.Duration
	hook      SlowQueryHook
}

func (s *statsExecQuerier) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := s.ExecQuerier.ExecContext(ctx, query, args...)
	s.record(ctx, query, start, err, false)
	return res, err
}

func (s *statsExecQuerier) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := s.ExecQuerier.QueryContext(ctx, query, args...)
	s.record(ctx, query, start, err, true)
	return rows, err
}

func (s *statsExecQuerier) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := s.ExecQuerier.QueryRowContext(ctx, query, args...)
	s.record(ctx, query, start, row.Err(), true)
	return row
}

func (s *statsExecQuerier) record(ctx context.Context, query string, start time.Time, err error, isQuery bool) {
	duration := time.Since(start)
	if isQuery {
		s.stats.TotalQueries.Add(1)
	} else {
		s.stats.TotalExecs.Add(1)
	}
	s.stats.TotalDuration.Add(int64(duration))
	if err != nil {
		s.stats.Errors.Add(1)
	}
	if duration > s.threshold {
		s.stats.SlowQueries.Add(1)
		if s.hook != nil {
			s.hook(ctx, query, duration)
		}
	}
}

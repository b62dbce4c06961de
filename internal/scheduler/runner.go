package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/domain"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/repo"
	"github.com/joaoloboguerraneto/endpoint-monitor/internal/scan"
)

// Display renders a completed batch. The runner does not care about the
// output format.
type Display interface {
	Render(results []domain.CheckResult) error
}

// Runner drives repeated scans at a fixed interval, measured between
// successive scan starts, so a slow scan delays the next start by at most
// its own overrun. The loop stops only on context cancellation or on a
// broken store; a batch full of DOWN results is a normal outcome.
type Runner struct {
	Logger    *zap.Logger
	Scanner   *scan.Scanner
	Store     repo.HistoryStore
	Endpoints []domain.Endpoint
	Interval  time.Duration
	Display   Display // optional
}

func NewRunner(
	logger *zap.Logger,
	scanner *scan.Scanner,
	store repo.HistoryStore,
	endpoints []domain.Endpoint,
	interval time.Duration,
	display Display,
) *Runner {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Runner{
		Logger:    logger,
		Scanner:   scanner,
		Store:     store,
		Endpoints: endpoints,
		Interval:  interval,
		Display:   display,
	}
}

// Run does an immediate pass, then one pass per tick, until ctx is
// cancelled. Cancellation is observed at the tick boundary: an in-flight
// pass finishes and its batch is persisted before Run returns. A store
// append failure stops the loop and is returned, so the monitor never runs
// silently with a broken history.
func (r *Runner) Run(ctx context.Context) error {
	r.Logger.Info("monitor_started",
		zap.Int("endpoints", len(r.Endpoints)),
		zap.Duration("interval", r.Interval),
	)

	if err := r.runOnce(ctx); err != nil {
		return err
	}

	t := time.NewTicker(r.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("monitor_stopped")
			return nil
		case <-t.C:
			if err := r.runOnce(ctx); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) error {
	if len(r.Endpoints) == 0 {
		r.Logger.Warn("scan_skipped_no_endpoints")
		return nil
	}

	start := time.Now()
	batch := r.Scanner.Scan(ctx, r.Endpoints)

	// Persist detached from the loop context: a cancellation that arrived
	// mid-scan must not turn into a refused append and a lost batch.
	if err := r.Store.Append(context.WithoutCancel(ctx), batch); err != nil {
		r.Logger.Error("history_append_failed", zap.Error(err))
		return fmt.Errorf("append batch: %w", err)
	}

	up := 0
	for _, res := range batch {
		if res.Status == domain.StatusUp {
			up++
		}
	}
	r.Logger.Info("scan_completed",
		zap.Int("checked", len(batch)),
		zap.Int("up", up),
		zap.Duration("took", time.Since(start)),
	)

	if r.Display != nil {
		if err := r.Display.Render(batch); err != nil {
			// display is best-effort; history already has the batch
			r.Logger.Warn("render_failed", zap.Error(err))
		}
	}
	return nil
}

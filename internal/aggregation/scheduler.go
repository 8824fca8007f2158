package aggregation

import (
	"context"
	"log/slog"
	"time"
)

// batchRunner is the part of Rollup the scheduler drives.
type batchRunner interface {
	RunBatch(ctx context.Context) (int, error)
}

// Scheduler runs the rollup on a periodic interval.
// It is stateless: each tick independently fetches intervals since the last checkpoint.
type Scheduler struct {
	interval  time.Duration
	runner    batchRunner
	batchSize int
}

// NewScheduler creates a cron scheduler for the daily totals rollup.
func NewScheduler(interval time.Duration, rollup *Rollup) *Scheduler {
	return &Scheduler{
		interval:  interval,
		runner:    rollup,
		batchSize: rollup.opts.BatchSize,
	}
}

// Start runs until ctx is cancelled, then drains once more before returning.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Scheduler] Starting daily totals rollup",
		"interval", s.interval,
		"batch_size", s.batchSize,
	)

	// Catch up with any backlog first
	s.drainBacklog(ctx)

	for {
		select {
		case <-ticker.C:
			s.drainBacklog(ctx)
		case <-ctx.Done():
			slog.Info("[Scheduler] Stopping (context cancelled)")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			slog.Info("[Scheduler] Running final drain before shutdown...")
			s.drainBacklog(shutdownCtx)
			slog.Info("[Scheduler] Final drain complete")

			return nil
		}
	}
}

// drainBacklog runs batches until one comes back short, so bursts do not wait a full tick per batch.
func (s *Scheduler) drainBacklog(ctx context.Context) {
	batchCount := 0
	maxConsecutiveBatches := 100

	for batchCount < maxConsecutiveBatches {
		select {
		case <-ctx.Done():
			slog.Info("[Scheduler] Drain interrupted by context cancellation",
				"batches_processed", batchCount,
			)
			return
		default:
		}

		processed, err := s.runner.RunBatch(ctx)
		if err != nil {
			slog.Error("[Scheduler] Rollup batch failed",
				"error", err,
				"batch_number", batchCount+1,
			)
			return
		}

		batchCount++

		if processed < s.batchSize {
			if batchCount > 1 {
				slog.Info("[Scheduler] Backlog drained", "total_batches", batchCount)
			}
			return
		}

		slog.Info("[Scheduler] Backlog detected, continuing to drain",
			"batches_so_far", batchCount,
		)
	}

	slog.Warn("[Scheduler] Max consecutive batches reached, pausing drain",
		"max_batches", maxConsecutiveBatches,
		"note", "Will resume on next tick",
	)
}

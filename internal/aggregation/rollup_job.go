package aggregation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aevon-lab/timesheet/internal/core/partition"
	"github.com/aevon-lab/timesheet/internal/core/storage"
	"github.com/aevon-lab/timesheet/internal/core/worktime"
	"github.com/aevon-lab/timesheet/internal/metrics"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize   = 5000
	defaultWorkerCount = 10
	defaultSettleDelay = 30 * time.Second
)

// RollupParameter controls throughput of a rollup run.
type RollupParameter struct {
	BatchSize   int
	WorkerCount int

	// SettleDelay is how old an interval's RecordedAt must be before the cursor may pass it.
	// It covers inserts that take their ingest_seq before a higher one but commit after it.
	// Zero disables the lag.
	SettleDelay time.Duration
}

// DefaultRollupOptions returns safe defaults for cron-based processing.
func DefaultRollupOptions() RollupParameter {
	return RollupParameter{
		BatchSize:   defaultBatchSize,
		WorkerCount: defaultWorkerCount,
		SettleDelay: defaultSettleDelay,
	}
}

func (o RollupParameter) normalized() RollupParameter {
	n := o
	if n.BatchSize <= 0 {
		n.BatchSize = defaultBatchSize
	}
	if n.WorkerCount <= 0 {
		n.WorkerCount = defaultWorkerCount
	}
	if n.SettleDelay < 0 {
		n.SettleDelay = 0
	}
	return n
}

// Rollup recomputes daily totals for every (subject, month) touched by newly ingested intervals.
// Months are recomputed wholesale from storage, so replaying a batch gives the same rows.
type Rollup struct {
	intervals storage.IntervalStore
	totals    TotalsStore
	basis     worktime.Basis
	opts      RollupParameter
	metrics   metrics.Recorder
	nowFn     func() time.Time
}

// NewRollup wires a rollup. A nil recorder disables metrics.
func NewRollup(
	intervals storage.IntervalStore,
	totals TotalsStore,
	basis worktime.Basis,
	opts RollupParameter,
	recorder metrics.Recorder,
) *Rollup {
	return &Rollup{
		intervals: intervals,
		totals:    totals,
		basis:     basis,
		opts:      opts.normalized(),
		metrics:   metrics.OrDiscard(recorder),
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}

// subjectMonth identifies one unit of recomputation.
type subjectMonth struct {
	SubjectRef string
	Window     worktime.MonthWindow
}

// RunBatch processes one batch after the checkpoint and returns how many intervals it consumed.
func (r *Rollup) RunBatch(ctx context.Context) (int, error) {
	started := time.Now()

	cursor, err := r.totals.ReadCheckpoint(ctx)
	if err != nil {
		return 0, fmt.Errorf("read checkpoint: %w", err)
	}

	settledBefore := r.nowFn().Add(-r.opts.SettleDelay)
	records, err := r.intervals.RetrieveIntervalsAfterCursor(ctx, cursor, settledBefore, r.opts.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("query intervals: %w", err)
	}

	if len(records) == 0 {
		slog.Debug("[Rollup] No new intervals to process")
		return 0, nil
	}

	months := affectedMonths(records, r.basis)
	totals, err := r.recomputeConcurrently(ctx, months)
	if err != nil {
		return 0, err
	}

	newCursor := records[len(records)-1].IngestSeq
	if err := r.totals.Flush(ctx, totals, newCursor); err != nil {
		return 0, fmt.Errorf("flush totals: %w", err)
	}

	r.metrics.RecordRollupBatch(time.Since(started), len(records), len(months))
	slog.Info("[Rollup] Batch complete",
		"intervals_processed", len(records),
		"months_recomputed", len(months),
		"cursor_advanced", fmt.Sprintf("%d -> %d", cursor, newCursor),
	)

	return len(records), nil
}

// affectedMonths lists every local month each record touches, sorted by subject then month.
func affectedMonths(records []storage.IntervalRecord, b worktime.Basis) []subjectMonth {
	seen := make(map[subjectMonth]struct{})
	for _, rec := range records {
		iv := rec.Interval
		if iv.End.Before(iv.Start) {
			slog.Warn("[Rollup] Skip interval with negative duration",
				"interval_id", iv.ID,
				"subject_ref", iv.SubjectRef)
			continue
		}

		// The last instant worked; End itself is exclusive.
		last := iv.End
		if last.After(iv.Start) {
			last = last.Add(-time.Nanosecond)
		}
		final := b.MonthOf(last)
		for w := b.MonthOf(iv.Start); !monthAfter(w, final); w = w.Next() {
			seen[subjectMonth{SubjectRef: iv.SubjectRef, Window: w}] = struct{}{}
		}
	}

	months := make([]subjectMonth, 0, len(seen))
	for sm := range seen {
		months = append(months, sm)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].SubjectRef != months[j].SubjectRef {
			return months[i].SubjectRef < months[j].SubjectRef
		}
		return monthAfter(months[j].Window, months[i].Window)
	})
	return months
}

func monthAfter(a, b worktime.MonthWindow) bool {
	if a.Year != b.Year {
		return a.Year > b.Year
	}
	return a.Month > b.Month
}

func (r *Rollup) recomputeConcurrently(ctx context.Context, months []subjectMonth) ([]MonthTotals, error) {
	results := make([]MonthTotals, len(months))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.WorkerCount)
	for i, sm := range months {
		g.Go(func() error {
			totals, err := r.recomputeMonth(gctx, sm)
			if err != nil {
				return err
			}
			results[i] = totals
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Rollup) recomputeMonth(ctx context.Context, sm subjectMonth) (MonthTotals, error) {
	start, end := r.basis.MonthBounds(sm.Window)
	records, err := r.intervals.ListIntervals(ctx, sm.SubjectRef, start, end)
	if err != nil {
		return MonthTotals{}, fmt.Errorf("list intervals for %s %s: %w", sm.SubjectRef, sm.Window, err)
	}

	intervals := make([]worktime.WorkInterval, 0, len(records))
	for _, rec := range records {
		intervals = append(intervals, rec.Interval)
	}

	view := worktime.BuildMonthView(intervals, sm.Window, r.basis)
	if len(view.Diagnostics) > 0 {
		r.metrics.RecordDiagnostics("rollup", view.Diagnostics)
		for _, diag := range view.Diagnostics {
			slog.Warn("[Rollup] Interval skipped",
				"subject_ref", sm.SubjectRef,
				"month", sm.Window.String(),
				"interval_id", diag.IntervalID,
				"kind", diag.Kind(),
				"error", diag.Err)
		}
	}

	// Diagnostics of the raw path repeat the ones reported above.
	monthTotal, _ := worktime.MonthTotal(intervals, sm.Window, r.basis)
	if monthTotal != view.Total {
		slog.Error("[Rollup] Month total disagrees with its days",
			"subject_ref", sm.SubjectRef,
			"month", sm.Window.String(),
			"month_total", monthTotal.String(),
			"days_total", view.Total.String())
	}

	now := r.nowFn()
	partitionID := partition.For(sm.SubjectRef)
	totals := MonthTotals{SubjectRef: sm.SubjectRef, Window: sm.Window, Total: monthTotal}
	for _, day := range view.Days {
		if len(day.Segments) == 0 {
			continue
		}
		totals.Days = append(totals.Days, DayTotal{
			PartitionID:  partitionID,
			SubjectRef:   sm.SubjectRef,
			DayKey:       day.DayKey,
			Minutes:      day.Total.TotalMinutes(),
			SegmentCount: len(day.Segments),
			UpdatedAt:    now,
		})
	}
	return totals, nil
}

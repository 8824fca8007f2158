package aggregation

import (
	"context"
	"time"

	"github.com/aevon-lab/timesheet/internal/core/worktime"
	"github.com/shopspring/decimal"
)

// DayTotal is the materialized total of one subject on one local day.
type DayTotal struct {
	PartitionID  int
	SubjectRef   string
	DayKey       string
	Minutes      int
	SegmentCount int
	UpdatedAt    time.Time
}

// Duration converts the stored minutes back to an engine Duration.
func (d DayTotal) Duration() worktime.Duration {
	return worktime.DurationFromMinutes(d.Minutes)
}

// Hours is the decimal-hours rendering stored next to the minutes.
func (d DayTotal) Hours() decimal.Decimal {
	return d.Duration().DecimalHours()
}

// MonthTotals replaces every stored day of one subject in one local month.
// Days without work are absent from Days.
type MonthTotals struct {
	SubjectRef string
	Window     worktime.MonthWindow
	Days       []DayTotal

	// Total is the month summed from the raw intervals clipped to Window. It always equals
	// the sum of Days; the rollup logs an error when it does not.
	Total worktime.Duration
}

// TotalsStore persists rollup output.
//
// Contract: Flush writes the month replacements and the checkpoint in one transaction.
// Checkpoint N means every interval up to ingest_seq N is reflected in the totals.
type TotalsStore interface {
	// Flush replaces the given months and advances the checkpoint to cursor atomically.
	// A cursor at or below the durable one is a no-op.
	Flush(ctx context.Context, months []MonthTotals, cursor int64) error

	// ReadCheckpoint returns the durable cursor, 0 when nothing was rolled up yet.
	ReadCheckpoint(ctx context.Context) (int64, error)

	// QueryRange returns the subject's stored days in [fromDay, toDay], ordered by day.
	QueryRange(ctx context.Context, subjectRef, fromDay, toDay string) ([]DayTotal, error)
}

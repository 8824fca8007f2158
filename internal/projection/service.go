package projection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aevon-lab/timesheet/internal/aggregation"
	v1 "github.com/aevon-lab/timesheet/internal/api/v1"
	"github.com/aevon-lab/timesheet/internal/core/storage"
	"github.com/aevon-lab/timesheet/internal/core/worktime"
	"github.com/aevon-lab/timesheet/internal/metrics"
	"golang.org/x/sync/singleflight"
)

const (
	// maxTotalsRangeDays bounds a totals query.
	maxTotalsRangeDays = 366

	// viewComputeTimeout bounds a shared view computation once it is detached from callers.
	viewComputeTimeout = 30 * time.Second
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid timesheet query")

// Service implements the projection/query layer.
// Day and month views are recomputed from stored intervals on every request; the totals
// endpoint reads what the rollup materialized.
type Service struct {
	intervals storage.IntervalStore
	totals    aggregation.TotalsStore
	basis     worktime.Basis
	metrics   metrics.Recorder
	nowFn     func() time.Time

	// views coalesces identical in-flight view computations.
	views singleflight.Group
}

// NewService creates a new projection service. A nil recorder disables metrics.
func NewService(
	intervals storage.IntervalStore,
	totals aggregation.TotalsStore,
	basis worktime.Basis,
	recorder metrics.Recorder,
) *Service {
	return &Service{
		intervals: intervals,
		totals:    totals,
		basis:     basis,
		metrics:   metrics.OrDiscard(recorder),
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// MonthView builds the subject's timesheet for one local month ("YYYY-MM").
// An empty month selects the current local month.
func (s *Service) MonthView(ctx context.Context, subjectRef, month string) (*v1.MonthView, error) {
	if strings.TrimSpace(subjectRef) == "" {
		return nil, invalidQueryf("subject_ref is required")
	}

	w := s.basis.MonthOf(s.nowFn())
	if month != "" {
		parsed, err := worktime.ParseMonthWindow(month)
		if err != nil {
			return nil, invalidQueryf("%v", err)
		}
		w = parsed
	}

	key := "month|" + subjectRef + "|" + w.String()
	result, err := s.sharedView(ctx, key, func(ctx context.Context) (interface{}, error) {
		from, to := s.basis.MonthBounds(w)
		intervals, err := s.loadIntervals(ctx, subjectRef, from, to)
		if err != nil {
			return nil, err
		}

		view := worktime.BuildMonthView(intervals, w, s.basis)
		s.reportDiagnostics("month", subjectRef, view.Diagnostics)

		out := v1.NewMonthView(subjectRef, view, s.basis)
		return &out, nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordViewRequest("month")
	return result.(*v1.MonthView), nil
}

// DayView builds the subject's timesheet for one local day ("YYYY-MM-DD").
func (s *Service) DayView(ctx context.Context, subjectRef, dayKey string) (*DayViewResponse, error) {
	if strings.TrimSpace(subjectRef) == "" {
		return nil, invalidQueryf("subject_ref is required")
	}
	from, err := s.basis.DayStart(dayKey)
	if err != nil {
		return nil, invalidQueryf("%v", err)
	}

	key := "day|" + subjectRef + "|" + dayKey
	result, err := s.sharedView(ctx, key, func(ctx context.Context) (interface{}, error) {
		intervals, err := s.loadIntervals(ctx, subjectRef, from, s.basis.NextDayStart(from))
		if err != nil {
			return nil, err
		}

		day, diags, err := worktime.BuildDayView(intervals, dayKey, s.basis)
		if err != nil {
			return nil, invalidQueryf("%v", err)
		}
		s.reportDiagnostics("day", subjectRef, diags)

		return &DayViewResponse{
			SubjectRef:  subjectRef,
			Timezone:    s.basis.Name(),
			Day:         v1.NewDayView(day, s.basis),
			Diagnostics: v1.NewDiagnosticViews(diags),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordViewRequest("day")
	return result.(*DayViewResponse), nil
}

// sharedView runs compute once per key for all concurrent callers. The computation runs on a
// context detached from any single caller, so one client going away does not fail the others;
// each caller still stops waiting when its own ctx is done.
func (s *Service) sharedView(
	ctx context.Context,
	key string,
	compute func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	ch := s.views.DoChan(key, func() (interface{}, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), viewComputeTimeout)
		defer cancel()
		return compute(shared)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

// QueryTotals reads materialized daily totals and groups them by granularity.
func (s *Service) QueryTotals(ctx context.Context, req TotalsQueryRequest) (*TotalsQueryResponse, error) {
	req, err := s.normalizeAndValidate(req)
	if err != nil {
		return nil, err
	}

	days, err := s.totals.QueryRange(ctx, req.SubjectRef, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("query daily totals: %w", err)
	}
	checkpoint, err := s.totals.ReadCheckpoint(ctx)
	if err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}

	var total worktime.Duration
	for _, d := range days {
		total = total.Add(d.Duration())
	}

	s.metrics.RecordViewRequest("totals")
	return &TotalsQueryResponse{
		SubjectRef:      req.SubjectRef,
		Timezone:        s.basis.Name(),
		From:            req.From,
		To:              req.To,
		Granularity:     req.Granularity,
		Total:           v1.NewDurationView(total),
		Values:          rollupTotals(days, req.Granularity, req.From, req.To),
		RolledUpThrough: checkpoint,
	}, nil
}

func (s *Service) normalizeAndValidate(req TotalsQueryRequest) (TotalsQueryRequest, error) {
	if req.Granularity == "" {
		req.Granularity = GranularityDay
	}

	if strings.TrimSpace(req.SubjectRef) == "" {
		return req, invalidQueryf("subject_ref is required")
	}
	if req.From == "" || req.To == "" {
		return req, invalidQueryf("from and to are required")
	}
	from, err := time.Parse(worktime.DayKeyLayout, req.From)
	if err != nil {
		return req, invalidQueryf("invalid from day %q", req.From)
	}
	to, err := time.Parse(worktime.DayKeyLayout, req.To)
	if err != nil {
		return req, invalidQueryf("invalid to day %q", req.To)
	}
	if to.Before(from) {
		return req, invalidQueryf("to must not be before from")
	}
	if to.Sub(from) >= maxTotalsRangeDays*24*time.Hour {
		return req, invalidQueryf("range must not exceed %d days", maxTotalsRangeDays)
	}

	switch req.Granularity {
	case GranularityDay, GranularityMonth, GranularityTotal:
	default:
		return req, invalidQueryf("invalid granularity: %s (must be day, month, or total)", req.Granularity)
	}

	return req, nil
}

// loadIntervals fetches the subject's intervals overlapping [from, to).
func (s *Service) loadIntervals(ctx context.Context, subjectRef string, from, to time.Time) ([]worktime.WorkInterval, error) {
	records, err := s.intervals.ListIntervals(ctx, subjectRef, from, to)
	if err != nil {
		return nil, fmt.Errorf("list intervals: %w", err)
	}

	intervals := make([]worktime.WorkInterval, 0, len(records))
	for _, rec := range records {
		intervals = append(intervals, rec.Interval)
	}
	return intervals, nil
}

func (s *Service) reportDiagnostics(view, subjectRef string, diags worktime.Diagnostics) {
	if len(diags) == 0 {
		return
	}
	for _, d := range diags {
		slog.Warn("Interval skipped while building view",
			"view", view,
			"subject_ref", subjectRef,
			"interval_id", d.IntervalID,
			"kind", d.Kind(),
			"error", d.Err)
	}
	s.metrics.RecordDiagnostics(view, diags)
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}

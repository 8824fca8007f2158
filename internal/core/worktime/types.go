package worktime

import (
	"fmt"
	"strings"
	"time"
)

// WorkInterval is one recorded work session, stored as UTC instants.
// Invariant: Start <= End. The engine never mutates a caller's interval.
type WorkInterval struct {
	ID          string
	SubjectRef  string
	LocationRef string
	Start       time.Time
	End         time.Time

	// anchor is the start of the interval this one was clipped from. Minute counts are
	// rounded relative to it so clipping never moves a rounding edge. Zero means Start.
	anchor time.Time
}

// Bounds returns [Start, End).
func (w WorkInterval) Bounds() (time.Time, time.Time) {
	return w.Start, w.End
}

// IntervalID identifies the source interval in diagnostics.
func (w WorkInterval) IntervalID() string {
	return w.ID
}

// Elapsed is the true elapsed time End - Start.
func (w WorkInterval) Elapsed() time.Duration {
	return w.End.Sub(w.Start)
}

func (w WorkInterval) origin() time.Time {
	if w.anchor.IsZero() {
		return w.Start
	}
	return w.anchor
}

func (w WorkInterval) withBounds(start, end time.Time) WorkInterval {
	clipped := w
	clipped.anchor = w.origin()
	clipped.Start = start
	clipped.End = end
	return clipped
}

// RawInterval is an interval as fetched, before its instants are parsed.
type RawInterval struct {
	ID           string `json:"id" yaml:"id"`
	SubjectRef   string `json:"subject_ref" yaml:"subject_ref"`
	LocationRef  string `json:"location_ref" yaml:"location_ref"`
	StartInstant string `json:"start_instant" yaml:"start_instant"`
	EndInstant   string `json:"end_instant" yaml:"end_instant"`
}

// Segment is the part of a WorkInterval that falls on one local calendar day.
// [Start, End) never crosses a local midnight.
type Segment struct {
	WorkInterval
	DayKey          string
	DurationMinutes int
}

// Minutes returns the precomputed duration.
func (s Segment) Minutes() int {
	return s.DurationMinutes
}

func (s Segment) withBounds(start, end time.Time) Segment {
	clipped := s
	clipped.WorkInterval = s.WorkInterval.withBounds(start, end)
	clipped.DurationMinutes = elapsedMinutes(clipped.origin(), start, end)
	return clipped
}

// MonthWindow selects one local calendar month.
type MonthWindow struct {
	Year  int
	Month time.Month
}

// NewMonthWindow validates year and month.
func NewMonthWindow(year int, month time.Month) (MonthWindow, error) {
	if year < 1 || year > 9999 {
		return MonthWindow{}, invalidTimeInputf("year %d out of range", year)
	}
	if month < time.January || month > time.December {
		return MonthWindow{}, invalidTimeInputf("month %d out of range", month)
	}
	return MonthWindow{Year: year, Month: month}, nil
}

// ParseMonthWindow parses "YYYY-MM".
func ParseMonthWindow(value string) (MonthWindow, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(value))
	if err != nil {
		return MonthWindow{}, invalidTimeInputf("month %q: %v", value, err)
	}
	return MonthWindow{Year: t.Year(), Month: t.Month()}, nil
}

func (w MonthWindow) String() string {
	return fmt.Sprintf("%04d-%02d", w.Year, int(w.Month))
}

// Contains reports whether dayKey lies in the month.
func (w MonthWindow) Contains(dayKey string) bool {
	return strings.HasPrefix(dayKey, w.String()+"-")
}

// Next returns the following month.
func (w MonthWindow) Next() MonthWindow {
	t := time.Date(w.Year, w.Month+1, 1, 0, 0, 0, 0, time.UTC)
	return MonthWindow{Year: t.Year(), Month: t.Month()}
}

// DayKeys enumerates every local day of the month in order.
func (w MonthWindow) DayKeys() []string {
	first := time.Date(w.Year, w.Month, 1, 0, 0, 0, 0, time.UTC)
	var keys []string
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		keys = append(keys, d.Format(DayKeyLayout))
	}
	return keys
}

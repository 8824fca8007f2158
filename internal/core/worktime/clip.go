package worktime

import "time"

// Clippable is satisfied by WorkInterval and Segment.
type Clippable[T any] interface {
	Bounds() (time.Time, time.Time)
	IntervalID() string
	withBounds(start, end time.Time) T
}

// ClipToMonth keeps the items overlapping the local month w and truncates them at the month
// edges. Items are never extended; an item outside the month is dropped. Running it on
// segments feeds day displays, running it on raw intervals feeds month totals, and both give the
// same minutes for the days they share.
func ClipToMonth[T Clippable[T]](items []T, w MonthWindow, b Basis) ([]T, Diagnostics) {
	start, end := b.MonthBounds(w)
	return clipToRange(items, start, end)
}

// ClipToDay is ClipToMonth for a single local day.
func ClipToDay[T Clippable[T]](items []T, dayKey string, b Basis) ([]T, Diagnostics, error) {
	start, err := b.DayStart(dayKey)
	if err != nil {
		return nil, nil, err
	}
	clipped, diags := clipToRange(items, start, b.NextDayStart(start))
	return clipped, diags, nil
}

func clipToRange[T Clippable[T]](items []T, windowStart, windowEnd time.Time) ([]T, Diagnostics) {
	var (
		clipped []T
		diags   Diagnostics
	)
	for _, item := range items {
		start, end := item.Bounds()
		if end.Before(start) {
			diags = append(diags, Diagnostic{
				IntervalID: item.IntervalID(),
				Err:        negativeDuration(item.IntervalID(), start, end),
			})
			continue
		}
		if !overlaps(start, end, windowStart, windowEnd) {
			continue
		}

		newStart, newEnd := start, end
		if newStart.Before(windowStart) {
			newStart = windowStart
		}
		if newEnd.After(windowEnd) {
			newEnd = windowEnd
		}
		if newStart.Equal(start) && newEnd.Equal(end) {
			clipped = append(clipped, item)
			continue
		}
		clipped = append(clipped, item.withBounds(newStart, newEnd))
	}
	return clipped, diags
}

// overlaps treats a zero-length item as the single instant it sits on.
func overlaps(start, end, windowStart, windowEnd time.Time) bool {
	if start.Equal(end) {
		return !start.Before(windowStart) && start.Before(windowEnd)
	}
	return start.Before(windowEnd) && end.After(windowStart)
}

package worktime

import "time"

// SegmentByDay splits every interval at local midnights. Output order is input order, then
// split order. Intervals that end before they start are skipped and reported.
func SegmentByDay(intervals []WorkInterval, b Basis) ([]Segment, Diagnostics) {
	var (
		segments []Segment
		diags    Diagnostics
	)
	for _, iv := range intervals {
		pieces, err := SegmentInterval(iv, b)
		if err != nil {
			diags = append(diags, Diagnostic{IntervalID: iv.ID, Err: err})
			continue
		}
		segments = append(segments, pieces...)
	}
	return segments, diags
}

// SegmentInterval covers [Start, End) of one interval with day-confined segments, without gaps
// or overlaps. A zero-length interval yields no segments, and an interval ending exactly at
// local midnight yields no empty trailing segment.
func SegmentInterval(iv WorkInterval, b Basis) ([]Segment, error) {
	start, end := iv.Start.UTC(), iv.End.UTC()
	if end.Before(start) {
		return nil, negativeDuration(iv.ID, start, end)
	}

	anchor := iv.origin().UTC()
	var segments []Segment
	for cursor := start; cursor.Before(end); {
		boundary := b.NextDayStart(cursor)
		if boundary.After(end) || !boundary.After(cursor) {
			boundary = end
		}

		segments = append(segments, Segment{
			WorkInterval: WorkInterval{
				ID:          iv.ID,
				SubjectRef:  iv.SubjectRef,
				LocationRef: iv.LocationRef,
				Start:       cursor,
				End:         boundary,
				anchor:      anchor,
			},
			DayKey:          b.DayKey(cursor),
			DurationMinutes: elapsedMinutes(anchor, cursor, boundary),
		})
		cursor = boundary
	}
	return segments, nil
}

// elapsedMinutes rounds both edges against the same anchor, so the minutes of consecutive
// pieces of one interval always add up to round((end-start)/1m) of the whole.
func elapsedMinutes(anchor, start, end time.Time) int {
	return roundMinutes(end.Sub(anchor)) - roundMinutes(start.Sub(anchor))
}

func roundMinutes(d time.Duration) int {
	return int(d.Round(time.Minute) / time.Minute)
}

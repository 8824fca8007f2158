package worktime

// DayView is one local day of a timesheet.
type DayView struct {
	DayKey   string
	Segments []Segment
	Total    Duration
}

// MonthView is a full month: every day of the month in order, empty days included.
type MonthView struct {
	Window      MonthWindow
	Days        []DayView
	Total       Duration
	ByLocation  map[string]Duration
	Diagnostics Diagnostics
}

// ParseIntervals converts fetched records into intervals. Records with an unparsable instant
// are dropped and reported; the rest continue. Order is preserved.
func ParseIntervals(raw []RawInterval, b Basis) ([]WorkInterval, Diagnostics) {
	var (
		intervals = make([]WorkInterval, 0, len(raw))
		diags     Diagnostics
	)
	for _, r := range raw {
		start, err := b.ParseInstant(r.StartInstant)
		if err != nil {
			diags = append(diags, Diagnostic{IntervalID: r.ID, Err: err})
			continue
		}
		end, err := b.ParseInstant(r.EndInstant)
		if err != nil {
			diags = append(diags, Diagnostic{IntervalID: r.ID, Err: err})
			continue
		}
		intervals = append(intervals, WorkInterval{
			ID:          r.ID,
			SubjectRef:  r.SubjectRef,
			LocationRef: r.LocationRef,
			Start:       start,
			End:         end,
		})
	}
	return intervals, diags
}

// BuildMonthView segments the intervals, clips the segments to w and buckets them by day.
func BuildMonthView(intervals []WorkInterval, w MonthWindow, b Basis) MonthView {
	segments, diags := SegmentByDay(intervals, b)
	clipped, clipDiags := ClipToMonth(segments, w, b)
	diags = append(diags, clipDiags...)

	buckets := BucketByDay(clipped).InMonth(w)

	view := MonthView{
		Window:     w,
		ByLocation: make(map[string]Duration),
	}
	for _, key := range w.DayKeys() {
		day, dayDiags := newDayView(key, buckets[key])
		diags = append(diags, dayDiags...)
		view.Days = append(view.Days, day)
		view.Total = view.Total.Add(day.Total)
	}
	for _, seg := range buckets.Segments() {
		view.ByLocation[seg.LocationRef] = view.ByLocation[seg.LocationRef].Add(DurationFromMinutes(seg.Minutes()))
	}
	view.Diagnostics = diags
	return view
}

// BuildDayView clips the intervals to one local day and segments what remains.
func BuildDayView(intervals []WorkInterval, dayKey string, b Basis) (DayView, Diagnostics, error) {
	clipped, diags, err := ClipToDay(intervals, dayKey, b)
	if err != nil {
		return DayView{}, nil, err
	}
	segments, segDiags := SegmentByDay(clipped, b)
	diags = append(diags, segDiags...)

	start, _ := b.DayStart(dayKey)
	day, dayDiags := newDayView(b.DayKey(start), segments)
	return day, append(diags, dayDiags...), nil
}

// MonthTotal clips the raw intervals to w and sums them without building day views.
func MonthTotal(intervals []WorkInterval, w MonthWindow, b Basis) (Duration, Diagnostics) {
	clipped, diags := ClipToMonth(intervals, w, b)
	total, aggDiags := AggregateDuration(clipped)
	return total, append(diags, aggDiags...)
}

func newDayView(dayKey string, segments []Segment) (DayView, Diagnostics) {
	total, diags := AggregateDuration(segments)
	return DayView{
		DayKey:   dayKey,
		Segments: append([]Segment{}, segments...),
		Total:    total,
	}, diags
}

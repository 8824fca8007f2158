package v1

import (
	"sort"
	"time"

	"github.com/aevon-lab/timesheet/internal/core/worktime"
)

// DurationView carries a duration in its display form and as numbers.
type DurationView struct {
	Text    string `json:"text"`
	Minutes int    `json:"minutes"`
	Hours   string `json:"hours"` // decimal, two places
}

type SegmentView struct {
	IntervalID  string       `json:"interval_id"`
	LocationRef string       `json:"location_ref,omitempty"`
	DayKey      string       `json:"day_key"`
	Start       string       `json:"start"` // local wall clock with offset
	End         string       `json:"end"`
	Duration    DurationView `json:"duration"`
}

type DayView struct {
	DayKey   string        `json:"day_key"`
	Total    DurationView  `json:"total"`
	Segments []SegmentView `json:"segments"`
}

type LocationTotalView struct {
	LocationRef string       `json:"location_ref"`
	Total       DurationView `json:"total"`
}

// DiagnosticView reports one interval that was skipped while the view was built.
type DiagnosticView struct {
	IntervalID string `json:"interval_id"`
	Kind       string `json:"kind"`
	Error      string `json:"error"`
}

type MonthView struct {
	SubjectRef  string              `json:"subject_ref"`
	Month       string              `json:"month"`
	Timezone    string              `json:"timezone"`
	Total       DurationView        `json:"total"`
	ByLocation  []LocationTotalView `json:"by_location"`
	Days        []DayView           `json:"days"`
	Diagnostics []DiagnosticView    `json:"diagnostics"`
}

func NewDurationView(d worktime.Duration) DurationView {
	return DurationView{
		Text:    worktime.FormatDuration(d),
		Minutes: d.TotalMinutes(),
		Hours:   d.DecimalHours().StringFixed(2),
	}
}

func NewSegmentView(s worktime.Segment, b worktime.Basis) SegmentView {
	return SegmentView{
		IntervalID:  s.ID,
		LocationRef: s.LocationRef,
		DayKey:      s.DayKey,
		Start:       b.Local(s.Start).Format(time.RFC3339),
		End:         b.Local(s.End).Format(time.RFC3339),
		Duration:    NewDurationView(worktime.DurationFromMinutes(s.Minutes())),
	}
}

func NewDayView(d worktime.DayView, b worktime.Basis) DayView {
	segments := make([]SegmentView, 0, len(d.Segments))
	for _, s := range d.Segments {
		segments = append(segments, NewSegmentView(s, b))
	}
	return DayView{
		DayKey:   d.DayKey,
		Total:    NewDurationView(d.Total),
		Segments: segments,
	}
}

func NewDiagnosticViews(diags worktime.Diagnostics) []DiagnosticView {
	views := make([]DiagnosticView, 0, len(diags))
	for _, d := range diags {
		views = append(views, DiagnosticView{
			IntervalID: d.IntervalID,
			Kind:       d.Kind(),
			Error:      d.Err.Error(),
		})
	}
	return views
}

// NewMonthView renders a month view. Locations are listed by reference; an empty reference
// collects the intervals recorded without one.
func NewMonthView(subjectRef string, m worktime.MonthView, b worktime.Basis) MonthView {
	days := make([]DayView, 0, len(m.Days))
	for _, d := range m.Days {
		days = append(days, NewDayView(d, b))
	}

	locations := make([]string, 0, len(m.ByLocation))
	for ref := range m.ByLocation {
		locations = append(locations, ref)
	}
	sort.Strings(locations)
	byLocation := make([]LocationTotalView, 0, len(locations))
	for _, ref := range locations {
		byLocation = append(byLocation, LocationTotalView{
			LocationRef: ref,
			Total:       NewDurationView(m.ByLocation[ref]),
		})
	}

	return MonthView{
		SubjectRef:  subjectRef,
		Month:       m.Window.String(),
		Timezone:    b.Name(),
		Total:       NewDurationView(m.Total),
		ByLocation:  byLocation,
		Days:        days,
		Diagnostics: NewDiagnosticViews(m.Diagnostics),
	}
}

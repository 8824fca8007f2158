package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	v1 "github.com/aevon-lab/timesheet/internal/api/v1"
	"github.com/aevon-lab/timesheet/internal/core/worktime"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// MonthReport is a month view plus everything skipped on the way.
type MonthReport struct {
	Subject     string
	Basis       worktime.Basis
	View        worktime.MonthView
	Diagnostics worktime.Diagnostics
}

// DayReport is a day view plus everything skipped on the way.
type DayReport struct {
	Subject     string
	Basis       worktime.Basis
	View        worktime.DayView
	Diagnostics worktime.Diagnostics
}

// BuildMonth parses the raw intervals and builds the month view. Parse diagnostics come first.
func BuildMonth(raw []worktime.RawInterval, subject string, w worktime.MonthWindow, b worktime.Basis) MonthReport {
	intervals, diags := worktime.ParseIntervals(FilterSubject(raw, subject), b)
	view := worktime.BuildMonthView(intervals, w, b)
	return MonthReport{
		Subject:     subject,
		Basis:       b,
		View:        view,
		Diagnostics: append(diags, view.Diagnostics...),
	}
}

// BuildDay parses the raw intervals and builds one day view. Only a bad day key is an error.
func BuildDay(raw []worktime.RawInterval, subject, dayKey string, b worktime.Basis) (DayReport, error) {
	intervals, diags := worktime.ParseIntervals(FilterSubject(raw, subject), b)
	view, dayDiags, err := worktime.BuildDayView(intervals, dayKey, b)
	if err != nil {
		return DayReport{}, err
	}
	return DayReport{
		Subject:     subject,
		Basis:       b,
		View:        view,
		Diagnostics: append(diags, dayDiags...),
	}, nil
}

// RenderMonth writes the month in the given format. Text lists working days only.
func RenderMonth(w io.Writer, r MonthReport, format string) error {
	if format == FormatJSON {
		view := v1.NewMonthView(r.Subject, r.View, r.Basis)
		view.Diagnostics = v1.NewDiagnosticViews(r.Diagnostics)
		return writeJSON(w, view)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Timesheet %s (%s)\n", r.View.Window, r.Basis.Name())
	if r.Subject != "" {
		fmt.Fprintf(tw, "Subject\t%s\n", r.Subject)
	}
	for _, day := range r.View.Days {
		if len(day.Segments) == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d segment(s)\n", day.DayKey, day.Total, len(day.Segments))
	}
	fmt.Fprintf(tw, "Total\t%s\t%s h\n", r.View.Total, r.View.Total.DecimalHours().StringFixed(2))
	for _, loc := range v1.NewMonthView(r.Subject, r.View, r.Basis).ByLocation {
		name := loc.LocationRef
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", name, loc.Total.Text)
	}
	return tw.Flush()
}

// RenderDay writes one day in the given format.
func RenderDay(w io.Writer, r DayReport, format string) error {
	if format == FormatJSON {
		return writeJSON(w, struct {
			Subject     string              `json:"subject_ref,omitempty"`
			Timezone    string              `json:"timezone"`
			Day         v1.DayView          `json:"day"`
			Diagnostics []v1.DiagnosticView `json:"diagnostics"`
		}{
			Subject:     r.Subject,
			Timezone:    r.Basis.Name(),
			Day:         v1.NewDayView(r.View, r.Basis),
			Diagnostics: v1.NewDiagnosticViews(r.Diagnostics),
		})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Timesheet %s (%s)\n", r.View.DayKey, r.Basis.Name())
	for _, seg := range v1.NewDayView(r.View, r.Basis).Segments {
		fmt.Fprintf(tw, "%s\t%s - %s\t%s\n", seg.IntervalID, seg.Start, seg.End, seg.Duration.Text)
	}
	fmt.Fprintf(tw, "Total\t%s\n", r.View.Total)
	return tw.Flush()
}

// RenderDiagnostics writes one line per skipped interval.
func RenderDiagnostics(w io.Writer, diags worktime.Diagnostics) {
	for _, d := range diags {
		fmt.Fprintf(w, "skipped interval %q (%s): %v\n", d.IntervalID, d.Kind(), d.Err)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

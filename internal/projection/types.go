package projection

import (
	v1 "github.com/aevon-lab/timesheet/internal/api/v1"
)

// Totals granularities.
const (
	GranularityDay   = "day"
	GranularityMonth = "month"
	GranularityTotal = "total"
)

// DayViewResponse is one local day of a subject's timesheet.
type DayViewResponse struct {
	SubjectRef  string              `json:"subject_ref"`
	Timezone    string              `json:"timezone"`
	Day         v1.DayView          `json:"day"`
	Diagnostics []v1.DiagnosticView `json:"diagnostics"`
}

// TotalsQueryRequest selects materialized daily totals. From and To are inclusive day keys.
type TotalsQueryRequest struct {
	SubjectRef  string
	From        string
	To          string
	Granularity string // default: "day"
}

// TotalsValue is one period of a totals response.
type TotalsValue struct {
	Period       string          `json:"period"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	Total        v1.DurationView `json:"total"`
	SegmentCount int             `json:"segment_count"`
}

// TotalsQueryResponse represents the response for a totals query.
type TotalsQueryResponse struct {
	SubjectRef  string          `json:"subject_ref"`
	Timezone    string          `json:"timezone"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Granularity string          `json:"granularity"`
	Total       v1.DurationView `json:"total"`
	Values      []TotalsValue   `json:"values"`

	// RolledUpThrough is the rollup checkpoint: intervals ingested after it are not yet counted.
	RolledUpThrough int64 `json:"rolled_up_through"`
}

package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/aevon-lab/timesheet/internal/core/storage"
	"github.com/aevon-lab/timesheet/internal/core/worktime"
)

// WorkInterval is the wire form of one recorded work session.
// Instants travel as strings so the engine's parser decides what is accepted.
type WorkInterval struct {
	// ID is unique per SubjectRef. When empty the ingestion service assigns one.
	ID string `json:"id"`

	// SubjectRef identifies the person the time belongs to. Required.
	SubjectRef string `json:"subject_ref"`

	// LocationRef is an opaque workplace reference. Optional.
	LocationRef string `json:"location_ref,omitempty"`

	StartInstant string `json:"start_instant"`
	EndInstant   string `json:"end_instant"`

	// RecordedAt is set by the server on ingestion and ignored on input.
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

// Validate checks the required fields. It does not parse the instants.
func (w *WorkInterval) Validate() error {
	if strings.TrimSpace(w.SubjectRef) == "" {
		return fmt.Errorf("subject_ref is required")
	}
	if strings.TrimSpace(w.StartInstant) == "" {
		return fmt.Errorf("start_instant is required")
	}
	if strings.TrimSpace(w.EndInstant) == "" {
		return fmt.Errorf("end_instant is required")
	}
	return nil
}

// ToRaw hands the interval to the engine unparsed.
func (w WorkInterval) ToRaw() worktime.RawInterval {
	return worktime.RawInterval{
		ID:           w.ID,
		SubjectRef:   w.SubjectRef,
		LocationRef:  w.LocationRef,
		StartInstant: w.StartInstant,
		EndInstant:   w.EndInstant,
	}
}

// ToDomain parses both instants on b. The error wraps worktime.ErrInvalidTimeInput for an
// unparsable instant and worktime.ErrNegativeDuration when the end precedes the start.
func (w WorkInterval) ToDomain(b worktime.Basis) (worktime.WorkInterval, error) {
	intervals, diags := worktime.ParseIntervals([]worktime.RawInterval{w.ToRaw()}, b)
	if len(diags) > 0 {
		return worktime.WorkInterval{}, diags[0].Err
	}
	iv := intervals[0]
	if iv.End.Before(iv.Start) {
		return worktime.WorkInterval{}, fmt.Errorf("%w: end_instant %s is before start_instant %s",
			worktime.ErrNegativeDuration, w.EndInstant, w.StartInstant)
	}
	return iv, nil
}

// FromDomain renders a stored interval with UTC RFC 3339 instants.
func FromDomain(rec storage.IntervalRecord) WorkInterval {
	out := WorkInterval{
		ID:           rec.Interval.ID,
		SubjectRef:   rec.Interval.SubjectRef,
		LocationRef:  rec.Interval.LocationRef,
		StartInstant: rec.Interval.Start.UTC().Format(time.RFC3339),
		EndInstant:   rec.Interval.End.UTC().Format(time.RFC3339),
	}
	if !rec.RecordedAt.IsZero() {
		recorded := rec.RecordedAt.UTC()
		out.RecordedAt = &recorded
	}
	return out
}

package worktime

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidTimeInput marks an unparsable instant, day key or an unknown timezone.
	ErrInvalidTimeInput = errors.New("invalid time input")

	// ErrNegativeDuration marks an interval whose end lies before its start.
	ErrNegativeDuration = errors.New("negative duration")
)

// Diagnostic kinds, used as log fields and metric labels.
const (
	KindInvalidTimeInput = "invalid_time_input"
	KindNegativeDuration = "negative_duration"
	KindUnknown          = "unknown"
)

// Diagnostic records one item that was skipped while the rest of the batch was processed.
type Diagnostic struct {
	IntervalID string
	Err        error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("interval %q: %v", d.IntervalID, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Kind classifies the diagnostic by the sentinel it wraps.
func (d Diagnostic) Kind() string {
	switch {
	case errors.Is(d.Err, ErrInvalidTimeInput):
		return KindInvalidTimeInput
	case errors.Is(d.Err, ErrNegativeDuration):
		return KindNegativeDuration
	default:
		return KindUnknown
	}
}

// Diagnostics is the skipped-item list returned next to every partial result.
type Diagnostics []Diagnostic

// CountByKind groups diagnostics by Kind.
func (d Diagnostics) CountByKind() map[string]int {
	counts := make(map[string]int, len(d))
	for _, diag := range d {
		counts[diag.Kind()]++
	}
	return counts
}

func invalidTimeInputf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidTimeInput, fmt.Sprintf(format, args...))
}

func negativeDuration(id string, start, end time.Time) error {
	return fmt.Errorf("%w: interval %q ends at %s before it starts at %s",
		ErrNegativeDuration, id, end.Format(time.RFC3339), start.Format(time.RFC3339))
}

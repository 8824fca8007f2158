package storage

import (
	"context"
	"errors"
	"time"

	"github.com/aevon-lab/timesheet/internal/core/worktime"
)

// ErrDuplicate is returned when an interval with the same (subject_ref, id) already exists.
var ErrDuplicate = errors.New("interval already exists")

// IntervalRecord is a stored work interval plus its ingestion bookkeeping.
type IntervalRecord struct {
	Interval worktime.WorkInterval

	// RecordedAt is when the service accepted the interval (server clock).
	RecordedAt time.Time

	// IngestSeq is assigned by the database (BIGSERIAL) and gives the rollup a strict total order.
	IngestSeq int64
}

// IntervalStore defines how work intervals are stored and fetched.
type IntervalStore interface {
	// SaveInterval persists the record and populates IngestSeq.
	// Returns ErrDuplicate if the (subject_ref, id) pair is taken.
	SaveInterval(ctx context.Context, record *IntervalRecord) error

	// ListIntervals returns the subject's intervals overlapping [from, to), ordered by start.
	ListIntervals(ctx context.Context, subjectRef string, from, to time.Time) ([]IntervalRecord, error)

	// RetrieveIntervalsAfterCursor fetches records with ingest_seq > cursor in strict order.
	// cursor=0 means "from the beginning". The result stops before the first record with
	// RecordedAt >= settledBefore: a lower ingest_seq can still be committing while that record
	// is young, and the cursor must never pass it.
	RetrieveIntervalsAfterCursor(ctx context.Context, cursor int64, settledBefore time.Time, limit int) ([]IntervalRecord, error)
}

package postgres

import (
	"fmt"

	"github.com/aevon-lab/timesheet/internal/core/storage"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanIntervalRow scans one work_intervals row. Instants come back in UTC.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanIntervalRow(row scanner) (storage.IntervalRecord, error) {
	var rec storage.IntervalRecord
	iv := &rec.Interval

	err := row.Scan(
		&iv.ID,
		&iv.SubjectRef,
		&iv.LocationRef,
		&iv.Start,
		&iv.End,
		&rec.RecordedAt,
		&rec.IngestSeq,
	)
	if err != nil {
		return storage.IntervalRecord{}, fmt.Errorf("failed to scan interval row: %w", err)
	}

	iv.Start = iv.Start.UTC()
	iv.End = iv.End.UTC()
	rec.RecordedAt = rec.RecordedAt.UTC()
	return rec, nil
}

type rowIterator interface {
	scanner
	Next() bool
	Err() error
}

func collectIntervalRows(rows rowIterator) ([]storage.IntervalRecord, error) {
	var records []storage.IntervalRecord
	for rows.Next() {
		rec, err := scanIntervalRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating intervals: %w", err)
	}
	return records, nil
}

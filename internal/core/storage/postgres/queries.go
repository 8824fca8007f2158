package postgres

// SQL queries for work interval storage

const (
	// querySaveInterval inserts an interval keyed by (subject_ref, id).
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for duplicates.
	querySaveInterval = `
		INSERT INTO work_intervals (
			id, subject_ref, location_ref, start_at, end_at, recorded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (subject_ref, id) DO NOTHING
		RETURNING ingest_seq
	`

	// queryListIntervals fetches one subject's intervals touching [$2, $3).
	// Intervals ending exactly at $2 are included; the engine clips them away.
	queryListIntervals = `
		SELECT
			id, subject_ref, location_ref, start_at, end_at, recorded_at, ingest_seq
		FROM work_intervals
		WHERE subject_ref = $1
		  AND end_at >= $2
		  AND start_at < $3
		ORDER BY start_at ASC, ingest_seq ASC
	`

	// queryRetrieveIntervalsAfterCursor feeds the rollup in strict ingest order.
	// ingest_seq is assigned at insert, not at commit, so a young row may have a lower
	// neighbour still in flight. The batch stops before the first row recorded at or after $2.
	queryRetrieveIntervalsAfterCursor = `
		SELECT
			id, subject_ref, location_ref, start_at, end_at, recorded_at, ingest_seq
		FROM work_intervals
		WHERE ingest_seq > $1
		  AND ingest_seq < COALESCE((
			SELECT MIN(ingest_seq)
			FROM work_intervals
			WHERE ingest_seq > $1
			  AND recorded_at >= $2
		  ), 9223372036854775807)
		ORDER BY ingest_seq ASC
		LIMIT $3
	`
)

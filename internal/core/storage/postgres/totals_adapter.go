package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/timesheet/internal/aggregation"
	"github.com/aevon-lab/timesheet/internal/core/partition"
	"github.com/shopspring/decimal"
)

const (
	dailyTotalsRollup = "daily_totals"

	querySelectCheckpointForUpdate = `
		SELECT checkpoint_cursor
		FROM rollup_checkpoints
		WHERE rollup_name = $1
		FOR UPDATE
	`

	queryInitCheckpointRow = `
		INSERT INTO rollup_checkpoints (rollup_name, checkpoint_cursor, updated_at)
		VALUES ($1, 0, $2)
		ON CONFLICT (rollup_name) DO NOTHING
	`

	queryDeleteMonthTotals = `
		DELETE FROM daily_totals
		WHERE partition_id = $1
		  AND subject_ref = $2
		  AND day_key >= $3
		  AND day_key < $4
	`

	queryInsertDailyTotal = `
		INSERT INTO daily_totals (
			partition_id, subject_ref, day_key, minutes, hours, segment_count, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	queryUpdateCheckpoint = `
		UPDATE rollup_checkpoints
		SET checkpoint_cursor = $1, updated_at = $2
		WHERE rollup_name = $3
	`

	queryReadCheckpoint = `SELECT checkpoint_cursor FROM rollup_checkpoints WHERE rollup_name = $1`

	queryRangeDailyTotals = `
		SELECT day_key, minutes, hours, segment_count, updated_at
		FROM daily_totals
		WHERE partition_id = $1
		  AND subject_ref = $2
		  AND day_key >= $3
		  AND day_key <= $4
		ORDER BY day_key ASC
	`
)

// TotalsAdapter implements aggregation.TotalsStore using PostgreSQL.
// Month replacement and checkpoint write share one transaction, which keeps crash recovery safe.
type TotalsAdapter struct {
	db *sql.DB
}

// NewTotalsAdapter creates a TotalsAdapter sharing the given connection.
func NewTotalsAdapter(db *sql.DB) *TotalsAdapter {
	return &TotalsAdapter{db: db}
}

// Flush replaces each month's rows and writes the checkpoint cursor in one transaction.
func (a *TotalsAdapter) Flush(ctx context.Context, months []aggregation.MonthTotals, cursor int64) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("totals flush: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// Lock the checkpoint row first so an out-of-order flush cannot overwrite newer state.
	var durableCursor int64
	err = tx.QueryRowContext(ctx, querySelectCheckpointForUpdate, dailyTotalsRollup).Scan(&durableCursor)
	if err == sql.ErrNoRows {
		_, err = tx.ExecContext(ctx, queryInitCheckpointRow, dailyTotalsRollup, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("totals flush: init checkpoint row: %w", err)
		}

		err = tx.QueryRowContext(ctx, querySelectCheckpointForUpdate, dailyTotalsRollup).Scan(&durableCursor)
		if err != nil {
			return fmt.Errorf("totals flush: read initialized checkpoint for update: %w", err)
		}
	}
	if err != nil {
		return fmt.Errorf("totals flush: read checkpoint for update: %w", err)
	}

	if cursor <= durableCursor {
		slog.Warn("[TotalsAdapter] Skipping stale/no-op flush",
			"cursor", cursor,
			"durable_cursor", durableCursor,
			"months", len(months))
		return nil
	}

	insertStmt, err := tx.PrepareContext(ctx, queryInsertDailyTotal)
	if err != nil {
		return fmt.Errorf("totals flush: prepare insert: %w", err)
	}
	defer insertStmt.Close()

	var dayCount int
	for _, month := range months {
		partitionID := partition.For(month.SubjectRef)
		firstDay := month.Window.String() + "-01"
		nextMonth := month.Window.Next().String() + "-01"

		if _, err := tx.ExecContext(ctx, queryDeleteMonthTotals,
			partitionID, month.SubjectRef, firstDay, nextMonth,
		); err != nil {
			return fmt.Errorf("totals flush: clear %s %s: %w", month.SubjectRef, month.Window, err)
		}

		for _, day := range month.Days {
			if !month.Window.Contains(day.DayKey) {
				return fmt.Errorf("totals flush: day %s outside month %s", day.DayKey, month.Window)
			}
			if _, err := insertStmt.ExecContext(ctx,
				partitionID,
				month.SubjectRef,
				day.DayKey,
				day.Minutes,
				day.Hours(),
				day.SegmentCount,
				day.UpdatedAt,
			); err != nil {
				return fmt.Errorf("totals flush: insert %s %s: %w", month.SubjectRef, day.DayKey, err)
			}
			dayCount++
		}
	}

	result, err := tx.ExecContext(ctx, queryUpdateCheckpoint, cursor, time.Now().UTC(), dailyTotalsRollup)
	if err != nil {
		return fmt.Errorf("totals flush: write checkpoint: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("totals flush: check checkpoint write: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("totals flush: checkpoint row missing (rollup=%s)", dailyTotalsRollup)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("totals flush: commit: %w", err)
	}

	slog.Info("[TotalsAdapter] Flushed",
		"months", len(months),
		"days", dayCount,
		"cursor", cursor,
	)
	return nil
}

// ReadCheckpoint returns the durable cursor, 0 if the rollup never ran.
func (a *TotalsAdapter) ReadCheckpoint(ctx context.Context) (int64, error) {
	var cursor int64
	err := a.db.QueryRowContext(ctx, queryReadCheckpoint, dailyTotalsRollup).Scan(&cursor)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read rollup checkpoint: %w", err)
	}
	return cursor, nil
}

// QueryRange returns the subject's stored days in [fromDay, toDay], ordered by day.
func (a *TotalsAdapter) QueryRange(ctx context.Context, subjectRef, fromDay, toDay string) ([]aggregation.DayTotal, error) {
	partitionID := partition.For(subjectRef)

	rows, err := a.db.QueryContext(ctx, queryRangeDailyTotals, partitionID, subjectRef, fromDay, toDay)
	if err != nil {
		return nil, fmt.Errorf("query daily_totals: %w", err)
	}
	defer rows.Close()

	var results []aggregation.DayTotal
	for rows.Next() {
		day := aggregation.DayTotal{PartitionID: partitionID, SubjectRef: subjectRef}
		var hoursStr string

		if err := rows.Scan(
			&day.DayKey,
			&day.Minutes,
			&hoursStr,
			&day.SegmentCount,
			&day.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		// hours is derived from minutes; a mismatch means the row was written by hand.
		hours, err := decimal.NewFromString(hoursStr)
		if err != nil {
			return nil, fmt.Errorf("parse hours %q: %w", hoursStr, err)
		}
		if !hours.Equal(day.Hours()) {
			slog.Warn("[TotalsAdapter] Stored hours disagree with minutes",
				"subject_ref", subjectRef,
				"day_key", day.DayKey,
				"hours", hours.String(),
				"minutes", day.Minutes)
		}

		results = append(results, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return results, nil
}

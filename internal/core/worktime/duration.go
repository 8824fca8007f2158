package worktime

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Measurable is anything occupying [start, end). Items that also have a
// Minutes() int method (segments) are summed from it instead.
type Measurable interface {
	Bounds() (time.Time, time.Time)
}

type minuteCounter interface {
	Minutes() int
}

type anchored interface {
	origin() time.Time
}

type identified interface {
	IntervalID() string
}

// Duration is a whole-minute total split into hours and minutes (0..59).
type Duration struct {
	Hours   int
	Minutes int
}

// DurationFromMinutes splits a non-negative minute count.
func DurationFromMinutes(total int) Duration {
	return Duration{Hours: total / 60, Minutes: total % 60}
}

// TotalMinutes is the inverse of DurationFromMinutes.
func (d Duration) TotalMinutes() int {
	return d.Hours*60 + d.Minutes
}

// Add sums two durations.
func (d Duration) Add(other Duration) Duration {
	return DurationFromMinutes(d.TotalMinutes() + other.TotalMinutes())
}

// DecimalHours renders the duration as hours with two decimal places, e.g. 7h05 -> 7.08.
func (d Duration) DecimalHours() decimal.Decimal {
	return decimal.NewFromInt(int64(d.TotalMinutes())).
		DivRound(decimal.NewFromInt(60), 2)
}

func (d Duration) String() string {
	return FormatDuration(d)
}

// FormatDuration renders the canonical "{h} h, {m} min" form without zero padding.
func FormatDuration(d Duration) string {
	return fmt.Sprintf("%d h, %d min", d.Hours, d.Minutes)
}

// AggregateDuration sums items in integer minutes. Items with a negative duration are left out
// of the total and reported; nothing is clamped.
func AggregateDuration[T Measurable](items []T) (Duration, Diagnostics) {
	var (
		total int
		diags Diagnostics
	)
	for _, item := range items {
		minutes, err := itemMinutes(item)
		if err != nil {
			diags = append(diags, Diagnostic{IntervalID: idOf(item), Err: err})
			continue
		}
		total += minutes
	}
	return DurationFromMinutes(total), diags
}

func itemMinutes(item Measurable) (int, error) {
	start, end := item.Bounds()
	if counter, ok := item.(minuteCounter); ok {
		minutes := counter.Minutes()
		if minutes < 0 {
			return 0, negativeDuration(idOf(item), start, end)
		}
		return minutes, nil
	}

	if end.Before(start) {
		return 0, negativeDuration(idOf(item), start, end)
	}
	anchor := start
	if a, ok := item.(anchored); ok {
		anchor = a.origin()
	}
	return elapsedMinutes(anchor, start, end), nil
}

func idOf(item interface{}) string {
	if id, ok := item.(identified); ok {
		return id.IntervalID()
	}
	return ""
}

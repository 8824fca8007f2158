// Package worktime splits work intervals at local calendar-day boundaries, clips them to
// calendar months, buckets the pieces by day and sums their durations.
//
// Everything here is a pure function of its arguments. The timezone travels as a Basis value;
// there is no package-level location.
package worktime

import (
	"strings"
	"time"
)

// DayKeyLayout is the canonical local-day key format.
const DayKeyLayout = "2006-01-02"

// instantLayouts are tried in order by ParseInstant. Zone-less forms are read as UTC,
// which is how intervals are stored.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// Basis converts between UTC instants and local wall-clock days in one timezone.
// The zero value behaves as UTC.
type Basis struct {
	loc *time.Location
}

// NewBasis loads an IANA timezone. "Local" and the empty string are rejected so results never
// depend on the host machine.
func NewBasis(timezone string) (Basis, error) {
	name := strings.TrimSpace(timezone)
	if name == "" || name == "Local" {
		return Basis{}, invalidTimeInputf("timezone %q is not an IANA identifier", timezone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Basis{}, invalidTimeInputf("unknown timezone %q: %v", timezone, err)
	}
	return Basis{loc: loc}, nil
}

// Location returns the configured location.
func (b Basis) Location() *time.Location {
	if b.loc == nil {
		return time.UTC
	}
	return b.loc
}

// Name returns the timezone identifier.
func (b Basis) Name() string {
	return b.Location().String()
}

// ParseInstant parses a stored timestamp and normalizes it to UTC.
func (b Basis) ParseInstant(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, invalidTimeInputf("empty timestamp")
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, invalidTimeInputf("unparsable timestamp %q", value)
}

// Local returns t on the local wall clock.
func (b Basis) Local(t time.Time) time.Time {
	return t.In(b.Location())
}

// DayKey returns the local calendar date of t as YYYY-MM-DD.
func (b Basis) DayKey(t time.Time) string {
	return b.Local(t).Format(DayKeyLayout)
}

// StartOfDay returns the UTC instant of local midnight on t's local date.
func (b Basis) StartOfDay(t time.Time) time.Time {
	year, month, day := b.Local(t).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, b.Location()).UTC()
}

// EndOfDay returns the UTC instant of local 23:59:59.999 on t's local date (inclusive end).
func (b Basis) EndOfDay(t time.Time) time.Time {
	return b.NextDayStart(t).Add(-time.Millisecond)
}

// NextDayStart returns the exclusive end of t's local day: the next local midnight.
// Built with time.Date so 23h and 25h DST days come out right.
func (b Basis) NextDayStart(t time.Time) time.Time {
	year, month, day := b.Local(t).Date()
	return time.Date(year, month, day+1, 0, 0, 0, 0, b.Location()).UTC()
}

// DayStart parses a day key and returns the UTC instant of its local midnight.
func (b Basis) DayStart(dayKey string) (time.Time, error) {
	day, err := time.ParseInLocation(DayKeyLayout, strings.TrimSpace(dayKey), b.Location())
	if err != nil {
		return time.Time{}, invalidTimeInputf("day key %q: %v", dayKey, err)
	}
	return day.UTC(), nil
}

// MonthBounds returns [startOfMonth, endOfMonthExclusive) of w as UTC instants.
func (b Basis) MonthBounds(w MonthWindow) (time.Time, time.Time) {
	start := time.Date(w.Year, w.Month, 1, 0, 0, 0, 0, b.Location())
	end := time.Date(w.Year, w.Month+1, 1, 0, 0, 0, 0, b.Location())
	return start.UTC(), end.UTC()
}

// MonthOf returns the local calendar month containing t.
func (b Basis) MonthOf(t time.Time) MonthWindow {
	local := b.Local(t)
	return MonthWindow{Year: local.Year(), Month: local.Month()}
}

package projection

import (
	"time"

	"github.com/aevon-lab/timesheet/internal/aggregation"
	v1 "github.com/aevon-lab/timesheet/internal/api/v1"
	"github.com/aevon-lab/timesheet/internal/core/worktime"
)

// periodTotal accumulates the stored days of one period.
type periodTotal struct {
	period   string
	from, to string
	minutes  int
	segments int
}

func (p periodTotal) value() TotalsValue {
	return TotalsValue{
		Period:       p.period,
		From:         p.from,
		To:           p.to,
		Total:        v1.NewDurationView(worktime.DurationFromMinutes(p.minutes)),
		SegmentCount: p.segments,
	}
}

// rollupTotals groups stored days into periods of the given granularity. Every period in
// [from, to] is present; days without a stored total count as zero.
func rollupTotals(days []aggregation.DayTotal, granularity, from, to string) []TotalsValue {
	byDay := make(map[string]aggregation.DayTotal, len(days))
	for _, d := range days {
		byDay[d.DayKey] = d
	}

	var (
		results []TotalsValue
		current *periodTotal
	)
	for _, key := range dayKeysBetween(from, to) {
		period := periodOf(key, granularity, from, to)
		if current == nil || current.period != period {
			if current != nil {
				results = append(results, current.value())
			}
			current = &periodTotal{period: period, from: key}
		}
		current.to = key
		if d, ok := byDay[key]; ok {
			current.minutes += d.Minutes
			current.segments += d.SegmentCount
		}
	}
	if current != nil {
		results = append(results, current.value())
	}

	return results
}

func periodOf(dayKey, granularity, from, to string) string {
	switch granularity {
	case GranularityMonth:
		return dayKey[:7]
	case GranularityTotal:
		return from + "/" + to
	default:
		return dayKey
	}
}

// dayKeysBetween enumerates calendar day keys in [from, to]. Both must be valid day keys.
func dayKeysBetween(from, to string) []string {
	first, err := time.Parse(worktime.DayKeyLayout, from)
	if err != nil {
		return nil
	}
	last, err := time.Parse(worktime.DayKeyLayout, to)
	if err != nil {
		return nil
	}

	var keys []string
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		keys = append(keys, d.Format(worktime.DayKeyLayout))
	}
	return keys
}

package worktime

import "sort"

// DayBuckets maps a day key to its segments in input order. Days without segments are absent.
type DayBuckets map[string][]Segment

// BucketByDay groups segments by DayKey into a fresh map. No splitting or clipping happens here.
func BucketByDay(segments []Segment) DayBuckets {
	return foldSegments(make(DayBuckets), segments)
}

func foldSegments(acc DayBuckets, segments []Segment) DayBuckets {
	for _, seg := range segments {
		acc[seg.DayKey] = append(acc[seg.DayKey], seg)
	}
	return acc
}

// Keys returns the day keys in calendar order.
func (d DayBuckets) Keys() []string {
	keys := make([]string, 0, len(d))
	for key := range d {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// InMonth returns a new map holding only the days of w.
func (d DayBuckets) InMonth(w MonthWindow) DayBuckets {
	filtered := make(DayBuckets)
	for key, segments := range d {
		if w.Contains(key) {
			filtered[key] = append([]Segment(nil), segments...)
		}
	}
	return filtered
}

// Segments flattens the buckets in calendar order.
func (d DayBuckets) Segments() []Segment {
	var all []Segment
	for _, key := range d.Keys() {
		all = append(all, d[key]...)
	}
	return all
}

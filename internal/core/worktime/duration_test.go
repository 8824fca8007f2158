package worktime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "0 h, 0 min", FormatDuration(Duration{}))
	require.Equal(t, "7 h, 5 min", FormatDuration(DurationFromMinutes(425)))
	require.Equal(t, "25 h, 0 min", DurationFromMinutes(1500).String())
}

func TestDuration_Arithmetic(t *testing.T) {
	d := DurationFromMinutes(125)
	require.Equal(t, Duration{Hours: 2, Minutes: 5}, d)
	require.Equal(t, 125, d.TotalMinutes())
	require.Equal(t, Duration{Hours: 3, Minutes: 0}, d.Add(DurationFromMinutes(55)))
}

func TestDuration_DecimalHours(t *testing.T) {
	require.Equal(t, "7.08", DurationFromMinutes(425).DecimalHours().StringFixed(2))
	require.Equal(t, "0.00", Duration{}.DecimalHours().StringFixed(2))
	require.Equal(t, "8.50", DurationFromMinutes(510).DecimalHours().StringFixed(2))
}

func TestAggregateDuration(t *testing.T) {
	tests := []struct {
		name      string
		items     []WorkInterval
		want      string
		wantDiags int
	}{
		{name: "empty", want: "0 h, 0 min"},
		{
			name: "sums minutes",
			items: []WorkInterval{
				{ID: "a", Start: utc(2024, 3, 1, 8, 0), End: utc(2024, 3, 1, 12, 0)},
				{ID: "b", Start: utc(2024, 3, 1, 13, 0), End: utc(2024, 3, 1, 16, 35)},
			},
			want: "7 h, 35 min",
		},
		{
			name: "negative excluded",
			items: []WorkInterval{
				{ID: "a", Start: utc(2024, 3, 1, 8, 0), End: utc(2024, 3, 1, 9, 0)},
				{ID: "bad", Start: utc(2024, 3, 1, 12, 0), End: utc(2024, 3, 1, 11, 0)},
			},
			want:      "1 h, 0 min",
			wantDiags: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := AggregateDuration(tt.items)
			require.Equal(t, tt.want, FormatDuration(got))
			require.Len(t, diags, tt.wantDiags)
		})
	}
}

func TestAggregateDuration_UsesSegmentMinutes(t *testing.T) {
	seg := Segment{
		WorkInterval:    WorkInterval{ID: "s", Start: utc(2024, 3, 1, 8, 0), End: utc(2024, 3, 1, 9, 0)},
		DurationMinutes: 42,
	}
	got, diags := AggregateDuration([]Segment{seg})
	require.Empty(t, diags)
	require.Equal(t, 42, got.TotalMinutes())

	seg.DurationMinutes = -1
	got, diags = AggregateDuration([]Segment{seg})
	require.Equal(t, 0, got.TotalMinutes())
	require.Len(t, diags, 1)
	require.ErrorIs(t, diags[0], ErrNegativeDuration)
}

func TestAggregateDuration_Additive(t *testing.T) {
	b := mustBasis(t, "Europe/Stockholm")
	segments, _ := SegmentByDay(sampleIntervals(), b)

	for split := 0; split <= len(segments); split++ {
		left, _ := AggregateDuration(segments[:split])
		right, _ := AggregateDuration(segments[split:])
		whole, _ := AggregateDuration(segments)
		require.Equal(t, whole, left.Add(right))
	}
}

func TestAggregateDuration_SubMinuteIntervals(t *testing.T) {
	items := []WorkInterval{{
		ID:    "tiny",
		Start: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 1, 8, 0, 29, 0, time.UTC),
	}}
	got, diags := AggregateDuration(items)
	require.Empty(t, diags)
	require.Equal(t, "0 h, 0 min", got.String())
}

package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	v1 "github.com/aevon-lab/timesheet/internal/api/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeIntervals(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "intervals.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDocument), 0o644))
	return path
}

func runReport(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestMonthCmd_Text(t *testing.T) {
	path := writeIntervals(t)

	out, errOut, err := runReport(t, "month", "--file", path, "--month", "2024-02", "--subject", "alice")
	require.NoError(t, err)

	assert.Contains(t, out, "Timesheet 2024-02 (Europe/Stockholm)")
	assert.Contains(t, out, "2024-02-14")
	assert.Contains(t, out, "2024-02-15")
	assert.NotContains(t, out, "2024-02-20")
	assert.Contains(t, out, "3 h, 0 min")
	assert.Contains(t, out, "3.00 h")
	assert.Contains(t, out, "site-a")

	assert.Contains(t, errOut, `skipped interval "bad" (invalid_time_input)`)
}

func TestMonthCmd_JSON(t *testing.T) {
	path := writeIntervals(t)

	out, _, err := runReport(t, "month", "--file", path, "--month", "2024-02", "--format", "json")
	require.NoError(t, err)

	var view v1.MonthView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "2024-02", view.Month)
	assert.Len(t, view.Days, 29)
	assert.Equal(t, "11 h, 0 min", view.Total.Text) // alice 3h + bob 8h
	require.Len(t, view.Diagnostics, 1)
	assert.Equal(t, "bad", view.Diagnostics[0].IntervalID)
}

func TestMonthCmd_OtherTimezone(t *testing.T) {
	path := writeIntervals(t)

	// In UTC the night interval is 22:00-01:00: 2h on the 14th, 1h on the 15th.
	out, _, err := runReport(t, "month", "--file", path, "--month", "2024-02", "--subject", "alice",
		"--timezone", "UTC", "--format", "json")
	require.NoError(t, err)

	var view v1.MonthView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "UTC", view.Timezone)
	assert.Equal(t, 120, view.Days[13].Total.Minutes)
	assert.Equal(t, 60, view.Days[14].Total.Minutes)
}

func TestDayCmd(t *testing.T) {
	path := writeIntervals(t)

	out, _, err := runReport(t, "day", "--file", path, "--day", "2024-02-15", "--subject", "alice")
	require.NoError(t, err)

	assert.Contains(t, out, "Timesheet 2024-02-15 (Europe/Stockholm)")
	assert.Contains(t, out, "2024-02-15T00:00:00+01:00 - 2024-02-15T02:00:00+01:00")
	assert.Contains(t, out, "2 h, 0 min")
}

func TestCmd_Errors(t *testing.T) {
	path := writeIntervals(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing file flag",
			args:    []string{"month", "--month", "2024-02"},
			wantErr: `required flag(s) "file" not set`,
		},
		{
			name:    "missing day flag",
			args:    []string{"day", "--file", path},
			wantErr: `required flag(s) "day" not set`,
		},
		{
			name:    "unknown timezone",
			args:    []string{"month", "--file", path, "--timezone", "Mars/Base"},
			wantErr: "unknown timezone",
		},
		{
			name:    "bad month",
			args:    []string{"month", "--file", path, "--month", "2024-13"},
			wantErr: "invalid time input",
		},
		{
			name:    "bad day",
			args:    []string{"day", "--file", path, "--day", "2024-02-30"},
			wantErr: "invalid time input",
		},
		{
			name:    "bad format",
			args:    []string{"month", "--file", path, "--format", "csv"},
			wantErr: "unknown format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runReport(t, tc.args...)
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aevon-lab/timesheet/internal/core/worktime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	return string(body)
}

func TestCollector_RecordDiagnosticsByKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordDiagnostics("month_view", worktime.Diagnostics{
		{IntervalID: "a", Err: worktime.ErrNegativeDuration},
		{IntervalID: "b", Err: worktime.ErrNegativeDuration},
		{IntervalID: "c", Err: worktime.ErrInvalidTimeInput},
	})

	body := scrape(t, reg)
	require.Contains(t, body, `timesheet_engine_diagnostics_total{kind="negative_duration",source="month_view"} 2`)
	require.Contains(t, body, `timesheet_engine_diagnostics_total{kind="invalid_time_input",source="month_view"} 1`)
}

func TestCollector_RecordIngestAndRollup(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordIngest(OutcomeAccepted)
	c.RecordIngest(OutcomeAccepted)
	c.RecordIngest(OutcomeDuplicate)
	c.RecordRollupBatch(150*time.Millisecond, 12, 3)

	body := scrape(t, reg)
	require.Contains(t, body, `timesheet_intervals_ingested_total{outcome="accepted"} 2`)
	require.Contains(t, body, `timesheet_intervals_ingested_total{outcome="duplicate"} 1`)
	require.Contains(t, body, "timesheet_rollup_intervals_total 12")
	require.Contains(t, body, "timesheet_rollup_months_total 3")
	require.Contains(t, body, "timesheet_rollup_batch_seconds_count 1")
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordViewRequest("month")

	require.Contains(t, scrape(t, reg), `timesheet_view_requests_total{view="month"} 1`)
}

func TestOrDiscard(t *testing.T) {
	require.Equal(t, Discard{}, OrDiscard(nil))

	c := NewCollector(prometheus.NewRegistry())
	require.Same(t, c, OrDiscard(c))
}

package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	v1 "github.com/aevon-lab/timesheet/internal/api/v1"
	httperr "github.com/aevon-lab/timesheet/internal/core/errors"
	"github.com/aevon-lab/timesheet/internal/core/storage"
	"github.com/aevon-lab/timesheet/internal/core/worktime"
	"github.com/aevon-lab/timesheet/internal/metrics"
	storagemocks "github.com/aevon-lab/timesheet/internal/mocks/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// outcomeRecorder keeps the ingest outcomes reported by the service.
type outcomeRecorder struct {
	metrics.Discard
	mu       sync.Mutex
	outcomes []string
}

func (r *outcomeRecorder) RecordIngest(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func newTestService(t *testing.T, store storage.IntervalStore, recorder metrics.Recorder) (*Service, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	basis, err := worktime.NewBasis("Europe/Stockholm")
	require.NoError(t, err)

	svc := NewService(store, basis, recorder, 1)
	svc.nowFn = func() time.Time { return time.Date(2024, 5, 7, 9, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return "generated-id" }

	r := gin.New()
	svc.RegisterRoutes(r)
	return svc, r
}

func postInterval(r http.Handler, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/intervals", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func validInterval() v1.WorkInterval {
	return v1.WorkInterval{
		ID:           "iv-001",
		SubjectRef:   "user-1",
		LocationRef:  "site-a",
		StartInstant: "2024-05-06T08:00:00+02:00",
		EndInstant:   "2024-05-06T16:30:00+02:00",
	}
}

func TestIngestHandler_Success(t *testing.T) {
	mockStore := storagemocks.NewIntervalStore(t)
	mockStore.EXPECT().
		SaveInterval(mock.Anything, mock.MatchedBy(func(rec *storage.IntervalRecord) bool {
			return rec.Interval.ID == "iv-001" &&
				rec.Interval.Start.Equal(time.Date(2024, 5, 6, 6, 0, 0, 0, time.UTC)) &&
				rec.Interval.End.Equal(time.Date(2024, 5, 6, 14, 30, 0, 0, time.UTC))
		})).
		Run(func(_ context.Context, rec *storage.IntervalRecord) { rec.IngestSeq = 7 }).
		Return(nil).
		Once()

	recorder := &outcomeRecorder{}
	_, r := newTestService(t, mockStore, recorder)

	body, _ := json.Marshal(validInterval())
	resp := postInterval(r, body)

	require.Equal(t, http.StatusCreated, resp.Code)
	var out v1.WorkInterval
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	require.Equal(t, "iv-001", out.ID)
	require.Equal(t, "2024-05-06T06:00:00Z", out.StartInstant)
	require.Equal(t, "2024-05-06T14:30:00Z", out.EndInstant)
	require.NotNil(t, out.RecordedAt)
	require.Equal(t, []string{metrics.OutcomeAccepted}, recorder.outcomes)
}

func TestIngestHandler_AssignsMissingID(t *testing.T) {
	mockStore := storagemocks.NewIntervalStore(t)
	mockStore.EXPECT().
		SaveInterval(mock.Anything, mock.MatchedBy(func(rec *storage.IntervalRecord) bool {
			return rec.Interval.ID == "generated-id"
		})).
		Return(nil).
		Once()

	_, r := newTestService(t, mockStore, nil)

	wire := validInterval()
	wire.ID = ""
	body, _ := json.Marshal(wire)
	resp := postInterval(r, body)

	require.Equal(t, http.StatusCreated, resp.Code)
	var out v1.WorkInterval
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	require.Equal(t, "generated-id", out.ID)
}

func TestIngestHandler_InvalidJSON(t *testing.T) {
	mockStore := storagemocks.NewIntervalStore(t)
	recorder := &outcomeRecorder{}
	_, r := newTestService(t, mockStore, recorder)

	resp := postInterval(r, []byte("not json"))

	require.Equal(t, http.StatusBadRequest, resp.Code)
	var errResp httperr.ErrorResponse
	json.Unmarshal(resp.Body.Bytes(), &errResp)
	require.Equal(t, httperr.HttpInvalidJsonError, errResp.ErrorType)
	require.Equal(t, []string{metrics.OutcomeRejected}, recorder.outcomes)
}

func TestIngestHandler_ValidationFailure(t *testing.T) {
	mockStore := storagemocks.NewIntervalStore(t)
	_, r := newTestService(t, mockStore, nil)

	wire := validInterval()
	wire.SubjectRef = ""
	body, _ := json.Marshal(wire)
	resp := postInterval(r, body)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	var errResp httperr.ErrorResponse
	json.Unmarshal(resp.Body.Bytes(), &errResp)
	require.Equal(t, httperr.HttpInvalidIntervalError, errResp.ErrorType)
	require.Equal(t, "subject_ref is required", errResp.Message)
}

func TestIngestHandler_TimeInputErrors(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		errorType string
	}{
		{
			name:      "unparsable start",
			start:     "monday morning",
			end:       "2024-05-06T16:00:00Z",
			errorType: httperr.HttpInvalidTimeInputError,
		},
		{
			name:      "unparsable end",
			start:     "2024-05-06T08:00:00Z",
			end:       "2024-13-45T99:00:00Z",
			errorType: httperr.HttpInvalidTimeInputError,
		},
		{
			name:      "end before start",
			start:     "2024-05-06T16:00:00Z",
			end:       "2024-05-06T08:00:00Z",
			errorType: httperr.HttpNegativeDurationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := storagemocks.NewIntervalStore(t)
			_, r := newTestService(t, mockStore, nil)

			wire := validInterval()
			wire.StartInstant = tt.start
			wire.EndInstant = tt.end
			body, _ := json.Marshal(wire)
			resp := postInterval(r, body)

			require.Equal(t, http.StatusBadRequest, resp.Code)
			var errResp httperr.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
			require.Equal(t, tt.errorType, errResp.ErrorType)
		})
	}
}

func TestIngestHandler_DuplicateInterval(t *testing.T) {
	mockStore := storagemocks.NewIntervalStore(t)
	mockStore.EXPECT().
		SaveInterval(mock.Anything, mock.Anything).
		Return(storage.ErrDuplicate).
		Once()

	recorder := &outcomeRecorder{}
	_, r := newTestService(t, mockStore, recorder)

	body, _ := json.Marshal(validInterval())
	resp := postInterval(r, body)

	require.Equal(t, http.StatusConflict, resp.Code)
	var errResp httperr.ErrorResponse
	json.Unmarshal(resp.Body.Bytes(), &errResp)
	require.Equal(t, httperr.HttpDuplicateIntervalError, errResp.ErrorType)
	require.Equal(t, []string{metrics.OutcomeDuplicate}, recorder.outcomes)
}

func TestIngestHandler_StorageError(t *testing.T) {
	mockStore := storagemocks.NewIntervalStore(t)
	mockStore.EXPECT().
		SaveInterval(mock.Anything, mock.Anything).
		Return(errors.New("database connection failed")).
		Once()

	recorder := &outcomeRecorder{}
	_, r := newTestService(t, mockStore, recorder)

	body, _ := json.Marshal(validInterval())
	resp := postInterval(r, body)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	var errResp httperr.ErrorResponse
	json.Unmarshal(resp.Body.Bytes(), &errResp)
	require.Equal(t, httperr.HttpInternalError, errResp.ErrorType)
	require.Equal(t, []string{metrics.OutcomeFailed}, recorder.outcomes)
}

func TestIngestHandler_BodySizeLimit(t *testing.T) {
	mockStore := storagemocks.NewIntervalStore(t)
	svc, r := newTestService(t, mockStore, nil)
	svc.maxBodySizeBytes = 10 // Very small limit

	body, _ := json.Marshal(validInterval())
	resp := postInterval(r, body)

	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
	var errResp httperr.ErrorResponse
	json.Unmarshal(resp.Body.Bytes(), &errResp)
	require.Equal(t, httperr.HttpRequestTooLargeError, errResp.ErrorType)
	require.Contains(t, errResp.Message, "maximum allowed size")
}

func TestListIntervalsHandler_Success(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mockStore := storagemocks.NewIntervalStore(t)
	mockStore.EXPECT().
		ListIntervals(mock.Anything, "user-1", from, to).
		Return([]storage.IntervalRecord{
			{
				Interval: worktime.WorkInterval{
					ID:         "iv-1",
					SubjectRef: "user-1",
					Start:      time.Date(2024, 5, 6, 6, 0, 0, 0, time.UTC),
					End:        time.Date(2024, 5, 6, 14, 0, 0, 0, time.UTC),
				},
				RecordedAt: time.Date(2024, 5, 6, 15, 0, 0, 0, time.UTC),
				IngestSeq:  1,
			},
		}, nil).
		Once()

	_, r := newTestService(t, mockStore, nil)

	req := httptest.NewRequest(
		http.MethodGet,
		"/v1/intervals/user-1?from="+from.Format(time.RFC3339)+"&to="+to.Format(time.RFC3339),
		nil,
	)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var intervals []v1.WorkInterval
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &intervals))
	require.Len(t, intervals, 1)
	require.Equal(t, "iv-1", intervals[0].ID)
	require.Equal(t, "2024-05-06T06:00:00Z", intervals[0].StartInstant)
}

func TestListIntervalsHandler_BoundForms(t *testing.T) {
	// 2024-05-01T00:00:00+02:00 and 2024-06-01T00:00:00+02:00 as UTC.
	from := time.Date(2024, 4, 30, 22, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		query string
		from  time.Time
	}{
		{
			name:  "encoded offset",
			query: "?from=2024-05-01T00:00:00%2B02:00&to=2024-06-01T00:00:00%2B02:00",
			from:  from,
		},
		{
			name:  "unencoded offset",
			query: "?from=2024-05-01T00:00:00+02:00&to=2024-06-01T00:00:00+02:00",
			from:  from,
		},
		{
			name:  "fractional seconds",
			query: "?from=2024-04-30T22:00:00.250Z&to=2024-06-01T00:00:00%2B02:00",
			from:  from.Add(250 * time.Millisecond),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := storagemocks.NewIntervalStore(t)
			mockStore.EXPECT().
				ListIntervals(mock.Anything, "user-1", tt.from, to).
				Return(nil, nil).
				Once()
			_, r := newTestService(t, mockStore, nil)

			req := httptest.NewRequest(http.MethodGet, "/v1/intervals/user-1"+tt.query, nil)
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
			require.JSONEq(t, "[]", resp.Body.String())
		})
	}
}

func TestListIntervalsHandler_InvalidQuery(t *testing.T) {
	start := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		query string
	}{
		{name: "missing bounds", query: ""},
		{name: "to before from", query: "?from=" + start.Format(time.RFC3339) + "&to=" + start.Add(-time.Minute).Format(time.RFC3339)},
		{name: "range too wide", query: "?from=" + start.Format(time.RFC3339) + "&to=" + start.AddDate(2, 0, 0).Format(time.RFC3339)},
		{name: "malformed bound", query: "?from=yesterday&to=" + start.Format(time.RFC3339)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := storagemocks.NewIntervalStore(t)
			_, r := newTestService(t, mockStore, nil)

			req := httptest.NewRequest(http.MethodGet, "/v1/intervals/user-1"+tt.query, nil)
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			require.Equal(t, http.StatusBadRequest, resp.Code)
			var errResp httperr.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
			require.Equal(t, httperr.HttpInvalidQueryError, errResp.ErrorType)
		})
	}
}

func TestListIntervalsHandler_StoreError(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	mockStore := storagemocks.NewIntervalStore(t)
	mockStore.EXPECT().
		ListIntervals(mock.Anything, "user-1", from, to).
		Return(nil, errors.New("db failure")).
		Once()

	_, r := newTestService(t, mockStore, nil)

	req := httptest.NewRequest(
		http.MethodGet,
		"/v1/intervals/user-1?from="+from.Format(time.RFC3339)+"&to="+to.Format(time.RFC3339),
		nil,
	)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
}

package ingestion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	v1 "github.com/aevon-lab/timesheet/internal/api/v1"
	httperr "github.com/aevon-lab/timesheet/internal/core/errors"
	"github.com/aevon-lab/timesheet/internal/core/storage"
	"github.com/aevon-lab/timesheet/internal/core/worktime"
	"github.com/aevon-lab/timesheet/internal/metrics"
	"github.com/gin-gonic/gin"
)

const (
	msgReadBodyFailed    = "Failed to read request body"
	msgInvalidJSON       = "Invalid JSON body"
	msgPersistFailed     = "Failed to persist interval"
	msgDuplicateInterval = "Interval already exists"
	msgListFailed        = "Failed to list intervals"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// IngestHandler handles POST /v1/intervals.
func (s *Service) IngestHandler(c *gin.Context) {
	wire, payloadSize, ierr := s.parseInterval(c)
	if ierr != nil {
		s.reject(c, ierr)
		return
	}

	record, ierr := s.validateInterval(wire)
	if ierr != nil {
		s.reject(c, ierr)
		return
	}

	slog.Info("Received Interval",
		"interval_id", record.Interval.ID,
		"subject_ref", record.Interval.SubjectRef,
		"location_ref", record.Interval.LocationRef,
		"elapsed", record.Interval.Elapsed().String(),
		"payload_size", payloadSize)

	if ierr := s.persistInterval(c.Request.Context(), record); ierr != nil {
		s.reject(c, ierr)
		return
	}

	s.metrics.RecordIngest(metrics.OutcomeAccepted)
	// Stored. The rollup picks it up on its next cycle; views see it immediately.
	c.JSON(http.StatusCreated, v1.FromDomain(*record))
}

// parseInterval reads the raw request body and binds it into the wire type.
// Returns the parsed interval and the raw payload size (used for structured logging upstream).
func (s *Service) parseInterval(c *gin.Context) (*v1.WorkInterval, int, *ingestionError) {
	// Bounded body; oversize requests get 413
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpRequestTooLargeError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var wire v1.WorkInterval
	if err := c.ShouldBindJSON(&wire); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	return &wire, len(bodyBytes), nil
}

// validateInterval checks required fields, then parses the instants on the service's basis.
// A missing id is replaced with a fresh UUID.
func (s *Service) validateInterval(wire *v1.WorkInterval) (*storage.IntervalRecord, *ingestionError) {
	if err := wire.Validate(); err != nil {
		slog.Warn("Interval validation failed", "error", err, "interval_id", wire.ID)
		return nil, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidIntervalError,
			message:    err.Error(),
		}
	}

	iv, err := wire.ToDomain(s.basis)
	if err != nil {
		slog.Warn("Interval rejected", "error", err, "interval_id", wire.ID, "subject_ref", wire.SubjectRef)
		errorType := httperr.HttpInvalidTimeInputError
		if errors.Is(err, worktime.ErrNegativeDuration) {
			errorType = httperr.HttpNegativeDurationError
		}
		return nil, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  errorType,
			message:    err.Error(),
			details: map[string]interface{}{
				"start_instant": wire.StartInstant,
				"end_instant":   wire.EndInstant,
			},
		}
	}

	if strings.TrimSpace(iv.ID) == "" {
		iv.ID = s.newID()
	}

	return &storage.IntervalRecord{
		Interval:   iv,
		RecordedAt: s.nowFn(),
	}, nil
}

// persistInterval saves the record to the backing store.
func (s *Service) persistInterval(ctx context.Context, record *storage.IntervalRecord) *ingestionError {
	if err := s.store.SaveInterval(ctx, record); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			slog.Info("Duplicate interval rejected", "interval_id", record.Interval.ID, "subject_ref", record.Interval.SubjectRef)
			return &ingestionError{
				statusCode: http.StatusConflict,
				errorType:  httperr.HttpDuplicateIntervalError,
				message:    msgDuplicateInterval,
			}
		}

		slog.Error("Failed to persist interval", "error", err, "interval_id", record.Interval.ID)
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		}
	}

	return nil
}

// ListIntervalsHandler handles GET /v1/intervals/:subject_ref?from=&to=
// Bounds are instants in any form POST accepts (RFC 3339, fractional seconds allowed).
// Intervals overlapping [from, to) are returned ordered by start.
func (s *Service) ListIntervalsHandler(c *gin.Context) {
	subjectRef := c.Param("subject_ref")

	var query struct {
		From string `form:"from" binding:"required"`
		To   string `form:"to" binding:"required"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidQueryError,
			message:    "Invalid query parameters",
			details:    err.Error(),
		})
		return
	}

	from, err := s.parseQueryInstant(query.From)
	if err != nil {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidQueryError,
			message:    "Invalid from bound",
			details:    err.Error(),
		})
		return
	}
	to, err := s.parseQueryInstant(query.To)
	if err != nil {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidQueryError,
			message:    "Invalid to bound",
			details:    err.Error(),
		})
		return
	}

	if !to.After(from) {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidQueryError,
			message:    "to must be after from",
		})
		return
	}
	if to.Sub(from) > maxListRangeDays*24*time.Hour {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidQueryError,
			message:    "range must not exceed one year",
		})
		return
	}

	records, err := s.store.ListIntervals(c.Request.Context(), subjectRef, from, to)
	if err != nil {
		slog.Error("Failed to list intervals", "error", err, "subject_ref", subjectRef)
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgListFailed,
		})
		return
	}

	out := make([]v1.WorkInterval, 0, len(records))
	for _, rec := range records {
		out = append(out, v1.FromDomain(rec))
	}
	c.JSON(http.StatusOK, out)
}

// parseQueryInstant parses a query-string bound through the engine's Basis.
// An unencoded "+hh:mm" offset arrives as " hh:mm"; the space is read back as "+".
func (s *Service) parseQueryInstant(value string) (time.Time, error) {
	if idx := strings.LastIndexByte(value, ' '); idx > 0 && strings.Contains(value[:idx], "T") {
		value = value[:idx] + "+" + value[idx+1:]
	}
	return s.basis.ParseInstant(value)
}

// reject records the outcome of a failed ingest and writes the error.
func (s *Service) reject(c *gin.Context, err *ingestionError) {
	switch {
	case err.statusCode == http.StatusConflict:
		s.metrics.RecordIngest(metrics.OutcomeDuplicate)
	case err.statusCode >= http.StatusInternalServerError:
		s.metrics.RecordIngest(metrics.OutcomeFailed)
	default:
		s.metrics.RecordIngest(metrics.OutcomeRejected)
	}
	writeError(c, err)
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}

package ingestion

import (
	"time"

	"github.com/aevon-lab/timesheet/internal/core/storage"
	"github.com/aevon-lab/timesheet/internal/core/worktime"
	"github.com/aevon-lab/timesheet/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxListRangeDays bounds how far apart from and to may be on the list endpoint.
const maxListRangeDays = 366

type Service struct {
	store            storage.IntervalStore
	basis            worktime.Basis
	metrics          metrics.Recorder
	maxBodySizeBytes int
	nowFn            func() time.Time
	newID            func() string
}

// NewService wires the ingestion endpoints. A nil recorder disables metrics.
func NewService(repo storage.IntervalStore, basis worktime.Basis, recorder metrics.Recorder, maxBodySizeMB int) *Service {
	if repo == nil {
		panic("ingestion: store must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            repo,
		basis:            basis,
		metrics:          metrics.OrDiscard(recorder),
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		nowFn:            func() time.Time { return time.Now().UTC() },
		newID:            uuid.NewString,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/intervals", s.IngestHandler)
	r.GET("/v1/intervals/:subject_ref", s.ListIntervalsHandler)
}

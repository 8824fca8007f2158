package projection

import (
	"errors"
	"net/http"

	httperr "github.com/aevon-lab/timesheet/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/v1/timesheet/:subject_ref")
	g.GET("/month", s.HandleMonthView)
	g.GET("/day/:day_key", s.HandleDayView)
	g.GET("/totals", s.HandleQueryTotals)
}

// HandleMonthView handles GET /v1/timesheet/:subject_ref/month?month=YYYY-MM
func (s *Service) HandleMonthView(c *gin.Context) {
	resp, err := s.MonthView(c.Request.Context(), c.Param("subject_ref"), c.Query("month"))
	if err != nil {
		writeQueryError(c, err, "Failed to build month view")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleDayView handles GET /v1/timesheet/:subject_ref/day/:day_key
func (s *Service) HandleDayView(c *gin.Context) {
	resp, err := s.DayView(c.Request.Context(), c.Param("subject_ref"), c.Param("day_key"))
	if err != nil {
		writeQueryError(c, err, "Failed to build day view")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleQueryTotals handles GET /v1/timesheet/:subject_ref/totals
// Query parameters: from, to (inclusive YYYY-MM-DD), granularity
func (s *Service) HandleQueryTotals(c *gin.Context) {
	var query struct {
		From        string `form:"from" binding:"required"`
		To          string `form:"to" binding:"required"`
		Granularity string `form:"granularity"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.QueryTotals(c.Request.Context(), TotalsQueryRequest{
		SubjectRef:  c.Param("subject_ref"),
		From:        query.From,
		To:          query.To,
		Granularity: query.Granularity,
	})
	if err != nil {
		writeQueryError(c, err, "Failed to query totals")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func writeQueryError(c *gin.Context, err error, internalMsg string) {
	if errors.Is(err, ErrInvalidQuery) {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid timesheet query",
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   internalMsg,
		Details:   err.Error(),
	})
}

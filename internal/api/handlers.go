package api

import (
	"errors"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/goatkit/zammad-export/internal/apierrors"
	"github.com/goatkit/zammad-export/internal/export"
)

// handleGetTicketData triggers a range export:
// GET /get_ticket_data?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD.
// Input is validated before any network activity; validation failures are
// client errors, everything downstream is a processing error.
func (rt *Router) handleGetTicketData(c *gin.Context) {
	start := c.Query("start_date")
	end := c.Query("end_date")
	if start == "" || end == "" {
		apierrors.ErrorWithMessage(c, apierrors.CodeInvalidRequest,
			"start_date and end_date query parameters are required")
		return
	}

	dr, err := export.ParseRange(start, end)
	if err != nil {
		rt.logger.Printf("validation error: %v", err)
		switch {
		case errors.Is(err, export.ErrDateOrder):
			apierrors.ErrorWithMessage(c, apierrors.CodeInvalidDateRange, err.Error())
		default:
			apierrors.ErrorWithMessage(c, apierrors.CodeInvalidDateFormat, err.Error())
		}
		return
	}

	runID := uuid.NewString()
	rt.logger.Printf("[%s] range request %s", runID, dr)

	total, err := rt.runner.Run(c.Request.Context(), dr)
	if err != nil {
		rt.logger.Printf("[%s] range request failed: %v", runID, err)
		var sinkErr *export.SinkError
		if errors.As(err, &sinkErr) {
			apierrors.Error(c, apierrors.CodeWriteFailed)
			return
		}
		apierrors.Error(c, apierrors.CodeFetchFailed)
		return
	}

	appendedTo := rt.exportPath
	if abs, absErr := filepath.Abs(appendedTo); absErr == nil {
		appendedTo = abs
	}

	rt.logger.Printf("[%s] range request done: %d tickets", runID, total)
	sendSuccess(c, gin.H{
		"status":                  "success",
		"total_tickets_processed": total,
		"date_range":              dr.String(),
		"appended_to":             appendedTo,
	})
}

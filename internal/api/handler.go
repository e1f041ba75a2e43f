// Package api serves the public jobs API consumed by the heatmap frontend.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/jobheat/internal/models"
	"github.com/gin-gonic/gin"
)

// LoadErrorMessage is the only detail a client sees when the store read fails.
const LoadErrorMessage = "Failed to load jobs"

// JobReader is the read side of the job query service.
type JobReader interface {
	ListJobs(ctx context.Context) ([]models.TransportJob, error)
	Dashboard(ctx context.Context) (models.Dashboard, error)
}

// JobHandler serves the /api routes.
type JobHandler struct {
	log  *slog.Logger
	jobs JobReader
}

// NewJobHandler creates the handler with its dependencies.
func NewJobHandler(log *slog.Logger, jobs JobReader) *JobHandler {
	return &JobHandler{log: log, jobs: jobs}
}

// ListJobs is the GET /api/jobs endpoint.
func (h *JobHandler) ListJobs(c *gin.Context) {
	ctx := c.Request.Context()

	jobs, err := h.jobs.ListJobs(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to load jobs", "request_id", requestID(c), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": LoadErrorMessage})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// Dashboard is the GET /api/dashboard endpoint.
func (h *JobHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	dash, err := h.jobs.Dashboard(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to build dashboard", "request_id", requestID(c), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": LoadErrorMessage})
		return
	}

	c.JSON(http.StatusOK, dash)
}

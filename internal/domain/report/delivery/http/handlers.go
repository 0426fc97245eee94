// Package http exposes a read and moderation API over the report store for
// non-chat tooling
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yourusername/anticovid-bot/internal/domain/report/deps"
	"github.com/yourusername/anticovid-bot/internal/domain/report/entities"
	domainerrors "github.com/yourusername/anticovid-bot/internal/domain/report/errors"
	"github.com/yourusername/anticovid-bot/internal/domain/report/query"
)

// Handlers contains the admin HTTP API handlers
type Handlers struct {
	store  deps.Store
	logger zerolog.Logger
}

// NewHandlers creates admin API handlers over the store
func NewHandlers(store deps.Store, logger zerolog.Logger) *Handlers {
	return &Handlers{
		store:  store,
		logger: logger,
	}
}

// ListReports handles GET /api/reports?status=unseen
func (h *Handlers) ListReports(c *gin.Context) {
	rawStatus := c.Query("status")

	var ids []int64
	var err error
	if rawStatus == "" {
		ids, err = h.store.ListReportIDs(c.Request.Context())
	} else {
		status, ok := entities.ParseReportStatus(rawStatus)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		ids, err = query.ListByStatus(c.Request.Context(), h.store, status)
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list reports")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reports"})
		return
	}

	reports := make([]*entities.Report, 0, len(ids))
	for _, id := range ids {
		report, err := h.store.GetReport(c.Request.Context(), id)
		if errors.Is(err, domainerrors.ErrReportNotFound) {
			continue
		}
		if err != nil {
			h.logger.Error().Int64("report_id", id).Err(err).Msg("Failed to load report")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reports"})
			return
		}
		reports = append(reports, report)
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// GetReport handles GET /api/reports/:id
func (h *Handlers) GetReport(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	report, err := h.store.GetReport(c.Request.Context(), id)
	if errors.Is(err, domainerrors.ErrReportNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	if err != nil {
		h.logger.Error().Int64("report_id", id).Err(err).Msg("Failed to load report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// UpdateStatus handles PATCH /api/reports/:id/status
func (h *Handlers) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, ok := entities.ParseReportStatus(input.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	err = h.store.SetStatus(c.Request.Context(), id, status)
	if errors.Is(err, domainerrors.ErrReportNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	if err != nil {
		h.logger.Error().Int64("report_id", id).Err(err).Msg("Failed to update report status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update report status"})
		return
	}

	h.logger.Info().Int64("report_id", id).Str("status", status.String()).Msg("Report status updated via API")
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status.String()})
}

// ListSubscribers handles GET /api/subscribers
func (h *Handlers) ListSubscribers(c *gin.Context) {
	subscribers, err := h.store.ListSubscribers(c.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list subscribers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list subscribers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscribers": subscribers, "count": len(subscribers)})
}

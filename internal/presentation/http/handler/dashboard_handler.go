package handler

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/injapanfood/pos-api/internal/application/service"
	"github.com/injapanfood/pos-api/internal/domain/event"
	"github.com/injapanfood/pos-api/internal/presentation/http/dto/response"
	"github.com/injapanfood/pos-api/pkg/apperror"
	"github.com/rs/zerolog/log"
)

const defaultHeartbeat = 15 * time.Second

// DashboardHandler handles the admin dashboard and its live stream
type DashboardHandler struct {
	reportService *service.ReportService
	feed          event.Feed
	heartbeat     time.Duration
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(reportService *service.ReportService, feed event.Feed) *DashboardHandler {
	return &DashboardHandler{
		reportService: reportService,
		feed:          feed,
		heartbeat:     defaultHeartbeat,
	}
}

// Get returns the dashboard. Store outages are reported in the payload status, not as errors.
func (h *DashboardHandler) Get(c *gin.Context) {
	response.OK(c, "Dashboard retrieved successfully", h.reportService.Dashboard(c.Request.Context()))
}

// Live streams the dashboard as server-sent events. A "dashboard" event is sent on
// connect and after every completed transaction, preceded by the "transaction" event itself.
func (h *DashboardHandler) Live(c *gin.Context) {
	ctx := c.Request.Context()

	events, unsubscribe, err := h.feed.Subscribe(ctx)
	if err != nil {
		log.Error().Err(err).Msg("live dashboard subscribe failed")
		response.Error(c, apperror.NewAppError(503, "Live updates are unavailable"))
		return
	}
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("dashboard", h.reportService.Dashboard(ctx))
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case evt, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("transaction", evt)
			c.SSEvent("dashboard", h.reportService.Dashboard(ctx))
			return true
		case t := <-ticker.C:
			c.SSEvent("ping", t.UTC().Format(time.RFC3339))
			return true
		}
	})
}

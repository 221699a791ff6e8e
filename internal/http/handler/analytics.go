package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/roster/internal/http/dto"
	"basegraph.app/roster/internal/http/middleware"
	"basegraph.app/roster/internal/service"
)

type AnalyticsHandler struct {
	analytics service.AnalyticsService
}

func NewAnalyticsHandler(analytics service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Track records a client event. Anonymous callers are allowed.
func (h *AnalyticsHandler) Track(c *gin.Context) {
	var req dto.TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrInvalidAnalyticsEvent)
		return
	}

	ev := service.TrackEvent{
		Name:       req.Event,
		Properties: req.Properties,
	}
	if identity, ok := middleware.GetIdentity(c.Request.Context()); ok {
		ev.UserID = &identity.UserID
	}
	if ua := c.Request.UserAgent(); ua != "" {
		ev.UserAgent = &ua
	}
	if ip := c.ClientIP(); ip != "" {
		ev.IPAddress = &ip
	}

	if err := h.analytics.Track(c.Request.Context(), ev); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}

package handlers

import (
	"net/http"

	"campaignkeeper/cache"
	"campaignkeeper/services"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns instance-wide counters, cached for a few minutes.
func (h *Handler) GetDashboardStats(c *gin.Context) {
	var cached services.DashboardStats
	if err := cache.GetDashboardStats(&cached); err == nil && cached.TotalUsers > 0 {
		c.JSON(http.StatusOK, cached)
		return
	}

	stats, err := h.Stats.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	_ = cache.SetDashboardStats(stats)

	c.JSON(http.StatusOK, stats)
}

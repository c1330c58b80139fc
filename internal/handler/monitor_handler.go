package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YashRana52/INSTRAGRAM/internal/hub"
)

// MonitorHandler exposes hub statistics.
type MonitorHandler struct {
	monitor *hub.MonitorService
}

func NewMonitorHandler(monitor *hub.MonitorService) *MonitorHandler {
	return &MonitorHandler{monitor: monitor}
}

func (h *MonitorHandler) GetHubStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.monitor.GetStats())
}

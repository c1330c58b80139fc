package approuters

import (
	"github.com/gin-gonic/gin"

	"github.com/YashRana52/INSTRAGRAM/internal/configuration"
	"github.com/YashRana52/INSTRAGRAM/internal/handler"
	"github.com/YashRana52/INSTRAGRAM/internal/hub"
)

// MonitorRouters sets up monitoring API routes
func MonitorRouters(router *gin.Engine, container *configuration.Container) {
	monitorService := hub.NewMonitorService(container.Hub)
	monitorHandler := handler.NewMonitorHandler(monitorService)

	monitorGroup := router.Group("/api/v1/monitor")
	{
		monitorGroup.GET("/stats", monitorHandler.GetHubStats)
	}
}

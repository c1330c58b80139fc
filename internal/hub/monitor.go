package hub

import (
	"github.com/YashRana52/INSTRAGRAM/internal/model"
)

// MonitorService provides methods to gather hub statistics.
type MonitorService struct {
	hub *Hub
}

// NewMonitorService creates a new monitor service.
func NewMonitorService(hub *Hub) *MonitorService {
	return &MonitorService{hub: hub}
}

// GetStats gathers and returns hub statistics.
func (ms *MonitorService) GetStats() model.MonitorResponse {
	connected := ms.hub.ConnectedClients()
	online := ms.hub.Registry().OnlineUsers()

	status := "healthy"
	if connected == 0 {
		status = "idle"
	}

	return model.MonitorResponse{
		Status: status,
		Connections: model.ConnectionStats{
			TotalConnected: connected,
			TotalBound:     len(online),
			TotalAnonymous: connected - len(online),
		},
		OnlineUsers: online,
	}
}

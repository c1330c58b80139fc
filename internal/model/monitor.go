package model

// -----------------------------------------------------------------
// Monitor API Response Models
// -----------------------------------------------------------------

// MonitorResponse is the main response for the monitor API.
type MonitorResponse struct {
	Status      string          `json:"status"` // "healthy" or "idle"
	Connections ConnectionStats `json:"connections"`
	OnlineUsers []string        `json:"onlineUsers"` // bound user IDs
}

// ConnectionStats holds connection-related statistics.
type ConnectionStats struct {
	TotalConnected int `json:"totalConnected"` // all live websocket sessions
	TotalBound     int `json:"totalBound"`     // sessions bound to a user
	TotalAnonymous int `json:"totalAnonymous"` // sessions that never presented a userId
}

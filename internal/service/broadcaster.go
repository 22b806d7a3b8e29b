package service

import "bimillog/internal/toast"

// Broadcaster pushes events to a browser session's websocket connections
// (declared here so services do not import the transport layer).
type Broadcaster interface {
	toast.Broadcaster
	DisconnectSession(sessionID string)
}

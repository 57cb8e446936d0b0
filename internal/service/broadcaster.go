package service

// Event types pushed to dashboard sockets
const (
	EventResultSaved     = "result_saved"
	EventSessionProgress = "session_progress"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToUser(userID string, msgType string, payload interface{})
}

type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastToUser(string, string, interface{}) {}

package event

import "encoding/json"

// Event names pushed to connected clients. The client distinguishes
// message traffic from generic notifications purely for UI treatment;
// delivery semantics are identical (best-effort, at most once).
const (
	EventOnlineUsers  = "getOnlineUsers"
	EventNotification = "notification"
	EventNewMessage   = "newMessage"
)

type WsEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// New builds a WsEvent with the payload marshalled to JSON.
func New(name string, payload any) (WsEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return WsEvent{}, err
	}
	return WsEvent{Event: name, Payload: raw}, nil
}

package model

// Notification kinds.
const (
	NotificationMessage = "message"
	NotificationLike    = "like"
	NotificationDislike = "dislike"
	NotificationFollow  = "follow"
)

// Notification actions.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

// ActorDetails is the minimal actor profile embedded in a notification so
// the client can render it without another round trip.
type ActorDetails struct {
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

// Notification is the envelope pushed to a single client over the
// websocket. It is never persisted; it lives for the duration of one push
// and the receiving UI decides whether to keep it.
type Notification struct {
	Kind         string        `json:"type"`
	Action       string        `json:"action"`
	ActorID      string        `json:"userId"`
	ActorDetails *ActorDetails `json:"userDetails,omitempty"`
	PostID       string        `json:"postId,omitempty"`
	Message      string        `json:"message"`
	Timestamp    int64         `json:"timestamp"`
}

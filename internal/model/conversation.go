package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation groups the direct messages exchanged between two users.
// Participants are stored as a sorted pair of user IDs, so exactly one
// conversation document exists per unordered pair. It is created lazily
// on the first message.
type Conversation struct {
	ID            primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Participants  []string             `json:"participants" bson:"participants"`
	Messages      []primitive.ObjectID `json:"messages" bson:"messages"`
	CreatedAt     time.Time            `json:"createdAt" bson:"created_at"`
	LastMessageAt time.Time            `json:"lastMessageAt" bson:"last_message_at"`
}

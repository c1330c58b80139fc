package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user document in MongoDB. Credentials are owned by the
// upstream auth service and never stored here.
type User struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Username       string               `json:"username" bson:"username"`
	Email          string               `json:"email" bson:"email"`
	ProfilePicture string               `json:"profilePicture" bson:"profile_picture"`
	Bio            string               `json:"bio" bson:"bio"`
	Followers      []string             `json:"followers" bson:"followers"`
	Following      []string             `json:"following" bson:"following"`
	Posts          []primitive.ObjectID `json:"posts" bson:"posts"`
	Bookmarks      []primitive.ObjectID `json:"bookmarks" bson:"bookmarks"`
	CreatedAt      time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt      *time.Time           `json:"updatedAt" bson:"updated_at"`
}

// IsFollowing reports whether the user already follows targetID.
func (u *User) IsFollowing(targetID string) bool {
	for _, id := range u.Following {
		if id == targetID {
			return true
		}
	}
	return false
}

// HasBookmarked reports whether postID is in the user's bookmarks.
func (u *User) HasBookmarked(postID primitive.ObjectID) bool {
	for _, id := range u.Bookmarks {
		if id == postID {
			return true
		}
	}
	return false
}

package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a feed post in MongoDB. The image is uploaded and hosted
// by an external pipeline; only its URL is stored.
type Post struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Caption   string               `json:"caption" bson:"caption"`
	ImageURL  string               `json:"image" bson:"image_url"`
	AuthorID  string               `json:"authorId" bson:"author_id"`
	Likes     []string             `json:"likes" bson:"likes"`
	Comments  []primitive.ObjectID `json:"comments" bson:"comments"`
	CreatedAt time.Time            `json:"createdAt" bson:"created_at"`
}

// Comment represents a comment on a post.
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Text      string             `json:"text" bson:"text"`
	AuthorID  string             `json:"authorId" bson:"author_id"`
	PostID    primitive.ObjectID `json:"postId" bson:"post_id"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// AuthorSummary is the slice of the author document embedded in feed
// responses so the client can render without extra lookups.
type AuthorSummary struct {
	ID             primitive.ObjectID `json:"id"`
	Username       string             `json:"username"`
	ProfilePicture string             `json:"profilePicture"`
}

// CommentView is a comment with its author resolved.
type CommentView struct {
	Comment
	Author *AuthorSummary `json:"author,omitempty"`
}

// PostView is a post with the author and full comments resolved. It is
// assembled per request and never persisted.
type PostView struct {
	Post
	Author   *AuthorSummary `json:"author,omitempty"`
	Comments []CommentView  `json:"comments"`
}

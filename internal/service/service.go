package service

import (
	"errors"

	"github.com/YashRana52/INSTRAGRAM/internal/model"
)

// Notifier is the real-time dispatch surface the services push through.
// All methods are best-effort: an offline target is the normal case and
// never surfaces as an error. The hub implements this interface.
type Notifier interface {
	IsOnline(userID string) bool
	NotifyUser(userID string, n model.Notification)
	DeliverMessage(userID string, msg model.Message)
}

var (
	ErrEmptyMessage  = errors.New("message cannot be empty")
	ErrEmptyComment  = errors.New("comment text is required")
	ErrImageRequired = errors.New("image is required")
	ErrPostNotFound  = errors.New("post not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrSelfFollow    = errors.New("you cannot follow yourself")
	ErrNotPostAuthor = errors.New("you are not allowed to delete this post")
)

package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/YashRana52/INSTRAGRAM/internal/db"
	"github.com/YashRana52/INSTRAGRAM/internal/model"
)

type UserRepository interface {
	GetUser(ctx context.Context, userID string) (*model.User, error)
	GetUsersExcept(ctx context.Context, userID string) ([]model.User, error)
	GetUsersByIDs(ctx context.Context, userIDs []string) ([]model.User, error)
	UpdateProfile(ctx context.Context, userID, bio, profilePicture string) error
	AppendPost(ctx context.Context, userID string, postID primitive.ObjectID) error
	RemovePostRef(ctx context.Context, userID string, postID primitive.ObjectID) error
	AddBookmark(ctx context.Context, userID string, postID primitive.ObjectID) error
	RemoveBookmark(ctx context.Context, userID string, postID primitive.ObjectID) error
	Follow(ctx context.Context, actorID, targetID string) error
	Unfollow(ctx context.Context, actorID, targetID string) error
}

type userRepository struct {
	users  *db.Repository[model.User]
	logger *zap.Logger
}

func NewUserRepository(users *db.Repository[model.User], logger *zap.Logger) UserRepository {
	return &userRepository{
		users:  users,
		logger: logger,
	}
}

// GetUser returns the user document, or nil when it does not exist.
func (r *userRepository) GetUser(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetUsersExcept(ctx context.Context, userID string) ([]model.User, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.Empty()
	if oid, err := primitive.ObjectIDFromHex(userID); err == nil {
		filter = db.NewFilter().Ne("_id", oid).Build()
	}

	users, err := r.users.FindAll(ctx, filter)
	if err != nil {
		r.logger.Error("failed to query users", zap.Error(err))
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

// GetUsersByIDs returns the users for the given IDs in one query.
// Malformed IDs are skipped rather than failing the batch.
func (r *userRepository) GetUsersByIDs(ctx context.Context, userIDs []string) ([]model.User, error) {
	oids := make([]primitive.ObjectID, 0, len(userIDs))
	for _, id := range userIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}

	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().In("_id", oids).Build()
	users, err := r.users.FindAll(ctx, filter)
	if err != nil {
		r.logger.Error("failed to query users by ids", zap.Error(err))
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

// UpdateProfile sets the editable profile fields. Empty values leave the
// stored field untouched, matching a partial edit form.
func (r *userRepository) UpdateProfile(ctx context.Context, userID, bio, profilePicture string) error {
	if userID == "" {
		return ErrInvalidUserID
	}

	set := bson.M{}
	if bio != "" {
		set["bio"] = bio
	}
	if profilePicture != "" {
		set["profile_picture"] = profilePicture
	}
	if len(set) == 0 {
		return nil
	}
	set["updated_at"] = time.Now().UTC()

	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	filter := db.NewFilter().ObjectID("_id", userID).Build()
	if _, err := r.users.Update(ctx, filter, set); err != nil {
		r.logger.Error("failed to update profile",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return fmt.Errorf("update profile failed: %w", err)
	}
	return nil
}

func (r *userRepository) AppendPost(ctx context.Context, userID string, postID primitive.ObjectID) error {
	return r.updateArray(ctx, userID, "posts", postID, "$push")
}

func (r *userRepository) RemovePostRef(ctx context.Context, userID string, postID primitive.ObjectID) error {
	return r.updateArray(ctx, userID, "posts", postID, "$pull")
}

func (r *userRepository) AddBookmark(ctx context.Context, userID string, postID primitive.ObjectID) error {
	return r.updateArray(ctx, userID, "bookmarks", postID, "$addToSet")
}

func (r *userRepository) RemoveBookmark(ctx context.Context, userID string, postID primitive.ObjectID) error {
	return r.updateArray(ctx, userID, "bookmarks", postID, "$pull")
}

// Follow records the relation on both documents: targetID gains a
// follower, actorID gains a following entry.
func (r *userRepository) Follow(ctx context.Context, actorID, targetID string) error {
	if err := r.updateArray(ctx, targetID, "followers", actorID, "$addToSet"); err != nil {
		return err
	}
	return r.updateArray(ctx, actorID, "following", targetID, "$addToSet")
}

func (r *userRepository) Unfollow(ctx context.Context, actorID, targetID string) error {
	if err := r.updateArray(ctx, targetID, "followers", actorID, "$pull"); err != nil {
		return err
	}
	return r.updateArray(ctx, actorID, "following", targetID, "$pull")
}

func (r *userRepository) updateArray(ctx context.Context, userID, field string, value interface{}, op string) error {
	if userID == "" {
		return ErrInvalidUserID
	}

	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	filter := db.NewFilter().ObjectID("_id", userID).Build()

	var err error
	switch op {
	case "$push":
		_, err = r.users.Push(ctx, filter, field, value)
	case "$addToSet":
		_, err = r.users.AddToSet(ctx, filter, field, value)
	case "$pull":
		_, err = r.users.Pull(ctx, filter, field, value)
	default:
		return fmt.Errorf("unsupported array operator %q", op)
	}
	if err != nil {
		r.logger.Error("failed to update user array field",
			zap.String("user_id", userID),
			zap.String("field", field),
			zap.String("op", op),
			zap.Error(err),
		)
		return fmt.Errorf("update user %s failed: %w", field, err)
	}
	return nil
}

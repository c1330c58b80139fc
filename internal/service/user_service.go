package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/YashRana52/INSTRAGRAM/internal/model"
	"github.com/YashRana52/INSTRAGRAM/internal/repo"
)

// FollowState reports the outcome of a follow toggle.
type FollowState string

const (
	StateFollowed   FollowState = "followed"
	StateUnfollowed FollowState = "unfollowed"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	GetSuggestedUsers(ctx context.Context, userID string) ([]model.User, error)
	EditProfile(ctx context.Context, userID, bio, pictureURL string) (*model.User, error)
	FollowOrUnfollow(ctx context.Context, actorID, targetID string) (FollowState, error)
}

type userService struct {
	users    repo.UserRepository
	notifier Notifier
	logger   *zap.Logger
}

func NewUserService(users repo.UserRepository, notifier Notifier, logger *zap.Logger) UserService {
	return &userService{
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) GetSuggestedUsers(ctx context.Context, userID string) ([]model.User, error) {
	return s.users.GetUsersExcept(ctx, userID)
}

// EditProfile updates the user's bio and profile-picture URL. Empty
// fields are left unchanged; the picture itself is uploaded and hosted
// upstream, only its URL lands here.
func (s *userService) EditProfile(ctx context.Context, userID, bio, pictureURL string) (*model.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("edit profile: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.users.UpdateProfile(ctx, userID, bio, pictureURL); err != nil {
		return nil, fmt.Errorf("edit profile: %w", err)
	}

	updated, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("edit profile: %w", err)
	}
	return updated, nil
}

// FollowOrUnfollow toggles the follow relation between actor and target.
// Following dispatches a notification to the target; unfollowing is
// silent.
func (s *userService) FollowOrUnfollow(ctx context.Context, actorID, targetID string) (FollowState, error) {
	if actorID == targetID {
		return "", ErrSelfFollow
	}

	actor, err := s.users.GetUser(ctx, actorID)
	if err != nil {
		return "", fmt.Errorf("follow or unfollow: %w", err)
	}
	if actor == nil {
		return "", ErrUserNotFound
	}

	target, err := s.users.GetUser(ctx, targetID)
	if err != nil {
		return "", fmt.Errorf("follow or unfollow: %w", err)
	}
	if target == nil {
		return "", ErrUserNotFound
	}

	if actor.IsFollowing(targetID) {
		if err := s.users.Unfollow(ctx, actorID, targetID); err != nil {
			return "", fmt.Errorf("follow or unfollow: %w", err)
		}
		return StateUnfollowed, nil
	}

	if err := s.users.Follow(ctx, actorID, targetID); err != nil {
		return "", fmt.Errorf("follow or unfollow: %w", err)
	}

	s.notifier.NotifyUser(targetID, model.Notification{
		Kind:    model.NotificationFollow,
		Action:  model.ActionAdd,
		ActorID: actorID,
		ActorDetails: &model.ActorDetails{
			Username:       actor.Username,
			ProfilePicture: actor.ProfilePicture,
		},
		Message:   fmt.Sprintf("%s started following you", actor.Username),
		Timestamp: time.Now().Unix(),
	})

	s.logger.Info("follow recorded",
		zap.String("actor_id", actorID),
		zap.String("target_id", targetID),
	)

	return StateFollowed, nil
}

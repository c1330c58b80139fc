package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/YashRana52/INSTRAGRAM/internal/model"
	"github.com/YashRana52/INSTRAGRAM/internal/service"
)

func TestFollowOrUnfollow_SelfFollowRejected(t *testing.T) {
	svc := service.NewUserService(newFakeUserRepo(), newFakeNotifier(), zap.NewNop())

	_, err := svc.FollowOrUnfollow(context.Background(), "u1", "u1")
	require.ErrorIs(t, err, service.ErrSelfFollow)
}

func TestFollowOrUnfollow_FollowNotifiesTarget(t *testing.T) {
	ctx := context.Background()
	actor := newTestUser("yash")
	target := newTestUser("riya")

	notifier := newFakeNotifier(target.ID.Hex())
	svc := service.NewUserService(newFakeUserRepo(actor, target), notifier, zap.NewNop())

	state, err := svc.FollowOrUnfollow(ctx, actor.ID.Hex(), target.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, service.StateFollowed, state)

	assert.Contains(t, target.Followers, actor.ID.Hex())
	assert.Contains(t, actor.Following, target.ID.Hex())

	require.Len(t, notifier.notifications, 1)
	n := notifier.notifications[0]
	assert.Equal(t, target.ID.Hex(), n.UserID)
	assert.Equal(t, model.NotificationFollow, n.Notification.Kind)
	assert.Equal(t, "yash started following you", n.Notification.Message)
}

func TestFollowOrUnfollow_ToggleRestoresState(t *testing.T) {
	ctx := context.Background()
	actor := newTestUser("yash")
	target := newTestUser("riya")

	notifier := newFakeNotifier(target.ID.Hex())
	svc := service.NewUserService(newFakeUserRepo(actor, target), notifier, zap.NewNop())

	_, err := svc.FollowOrUnfollow(ctx, actor.ID.Hex(), target.ID.Hex())
	require.NoError(t, err)

	state, err := svc.FollowOrUnfollow(ctx, actor.ID.Hex(), target.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, service.StateUnfollowed, state)

	assert.Empty(t, target.Followers)
	assert.Empty(t, actor.Following)

	// only the follow produced a notification, unfollow is silent
	assert.Len(t, notifier.notifications, 1)
}

func TestFollowOrUnfollow_UnknownTarget(t *testing.T) {
	actor := newTestUser("yash")
	svc := service.NewUserService(newFakeUserRepo(actor), newFakeNotifier(), zap.NewNop())

	_, err := svc.FollowOrUnfollow(context.Background(), actor.ID.Hex(), "64f000000000000000000000")
	require.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestGetProfile(t *testing.T) {
	user := newTestUser("yash")
	svc := service.NewUserService(newFakeUserRepo(user), newFakeNotifier(), zap.NewNop())

	got, err := svc.GetProfile(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "yash", got.Username)

	_, err = svc.GetProfile(context.Background(), "64f000000000000000000000")
	require.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestEditProfile_UpdatesBioAndPicture(t *testing.T) {
	user := newTestUser("yash")
	svc := service.NewUserService(newFakeUserRepo(user), newFakeNotifier(), zap.NewNop())

	updated, err := svc.EditProfile(context.Background(), user.ID.Hex(), "building things", "https://cdn.example.com/new.jpg")
	require.NoError(t, err)
	assert.Equal(t, "building things", updated.Bio)
	assert.Equal(t, "https://cdn.example.com/new.jpg", updated.ProfilePicture)
}

func TestEditProfile_EmptyFieldsLeaveProfileUnchanged(t *testing.T) {
	user := newTestUser("yash")
	user.Bio = "original bio"
	originalPicture := user.ProfilePicture
	svc := service.NewUserService(newFakeUserRepo(user), newFakeNotifier(), zap.NewNop())

	updated, err := svc.EditProfile(context.Background(), user.ID.Hex(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "original bio", updated.Bio)
	assert.Equal(t, originalPicture, updated.ProfilePicture)
}

func TestEditProfile_UnknownUser(t *testing.T) {
	svc := service.NewUserService(newFakeUserRepo(), newFakeNotifier(), zap.NewNop())

	_, err := svc.EditProfile(context.Background(), "64f000000000000000000000", "bio", "")
	require.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestGetSuggestedUsers_ExcludesRequester(t *testing.T) {
	a := newTestUser("a")
	b := newTestUser("b")
	c := newTestUser("c")
	svc := service.NewUserService(newFakeUserRepo(a, b, c), newFakeNotifier(), zap.NewNop())

	users, err := svc.GetSuggestedUsers(context.Background(), a.ID.Hex())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, a.ID, u.ID)
	}
}

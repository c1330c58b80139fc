package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/YashRana52/INSTRAGRAM/internal/service"
)

func TestSendMessage_EmptyBodyRejected(t *testing.T) {
	ctx := context.Background()
	messages := newFakeMessageRepo()
	notifier := newFakeNotifier()
	svc := service.NewMessageService(messages, newFakeUserRepo(), notifier, zap.NewNop())

	_, err := svc.SendMessage(ctx, "u1", "u2", "   ")
	require.ErrorIs(t, err, service.ErrEmptyMessage)

	assert.Empty(t, messages.messages, "nothing must be persisted")
	assert.Empty(t, messages.conversations)
	assert.Empty(t, notifier.messages)
	assert.Empty(t, notifier.notifications)
}

func TestSendMessage_OfflineReceiverPersistsWithoutDelivery(t *testing.T) {
	ctx := context.Background()
	sender := newTestUser("yash")
	messages := newFakeMessageRepo()
	notifier := newFakeNotifier() // nobody online
	svc := service.NewMessageService(messages, newFakeUserRepo(sender), notifier, zap.NewNop())

	msg, err := svc.SendMessage(ctx, sender.ID.Hex(), "receiver-1", "hello")
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.False(t, msg.ID.IsZero())

	require.Len(t, messages.messages, 1)
	assert.Equal(t, "hello", messages.messages[0].Body)

	conv, err := messages.GetConversation(ctx, sender.ID.Hex(), "receiver-1")
	require.NoError(t, err)
	require.NotNil(t, conv)
	assert.Len(t, conv.Messages, 1)

	assert.Empty(t, notifier.messages, "offline receiver must get zero socket emissions")
	assert.Empty(t, notifier.notifications)
}

func TestSendMessage_OnlineReceiverGetsMessageAndNotification(t *testing.T) {
	ctx := context.Background()
	sender := newTestUser("yash")
	messages := newFakeMessageRepo()
	notifier := newFakeNotifier("receiver-1")
	svc := service.NewMessageService(messages, newFakeUserRepo(sender), notifier, zap.NewNop())

	msg, err := svc.SendMessage(ctx, sender.ID.Hex(), "receiver-1", "hello")
	require.NoError(t, err)

	require.Len(t, notifier.messages, 1, "exactly one newMessage emission")
	delivered := notifier.messages[0]
	assert.Equal(t, "receiver-1", delivered.UserID)
	assert.Equal(t, sender.ID.Hex(), delivered.Message.SenderID)
	assert.Equal(t, "receiver-1", delivered.Message.ReceiverID)
	assert.Equal(t, "hello", delivered.Message.Body)
	assert.Equal(t, msg.ID, delivered.Message.ID)

	require.Len(t, notifier.notifications, 1, "exactly one notification emission")
	n := notifier.notifications[0]
	assert.Equal(t, "receiver-1", n.UserID)
	assert.Equal(t, "message", n.Notification.Kind)
	assert.Equal(t, sender.ID.Hex(), n.Notification.ActorID)
	assert.Equal(t, "yash sent you a message", n.Notification.Message)
	require.NotNil(t, n.Notification.ActorDetails)
	assert.Equal(t, "yash", n.Notification.ActorDetails.Username)
}

func TestSendMessage_ReusesConversation(t *testing.T) {
	ctx := context.Background()
	sender := newTestUser("yash")
	messages := newFakeMessageRepo()
	svc := service.NewMessageService(messages, newFakeUserRepo(sender), newFakeNotifier(), zap.NewNop())

	_, err := svc.SendMessage(ctx, sender.ID.Hex(), "receiver-1", "first")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, "receiver-1", sender.ID.Hex(), "second")
	require.NoError(t, err)

	assert.Len(t, messages.conversations, 1, "unordered pair maps to one conversation")
	conv, err := messages.GetConversation(ctx, sender.ID.Hex(), "receiver-1")
	require.NoError(t, err)
	assert.Len(t, conv.Messages, 2)
}

func TestSendMessage_PersistenceFailureAborts(t *testing.T) {
	ctx := context.Background()
	messages := newFakeMessageRepo()
	messages.insertErr = errors.New("mongo unavailable")
	notifier := newFakeNotifier("receiver-1")
	svc := service.NewMessageService(messages, newFakeUserRepo(), notifier, zap.NewNop())

	_, err := svc.SendMessage(ctx, "u1", "receiver-1", "hello")
	require.Error(t, err)

	assert.Empty(t, notifier.messages, "no delivery after failed persistence")
	assert.Empty(t, notifier.notifications)
}

func TestGetMessages_NoConversationReturnsEmpty(t *testing.T) {
	svc := service.NewMessageService(newFakeMessageRepo(), newFakeUserRepo(), newFakeNotifier(), zap.NewNop())

	msgs, err := svc.GetMessages(context.Background(), "u1", "u2", 1)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

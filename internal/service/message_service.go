package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/YashRana52/INSTRAGRAM/internal/model"
	"github.com/YashRana52/INSTRAGRAM/internal/repo"
)

type MessageService interface {
	SendMessage(ctx context.Context, senderID, receiverID, body string) (*model.Message, error)
	GetMessages(ctx context.Context, userA, userB string, page int64) ([]model.Message, error)
}

type messageService struct {
	messages repo.MessageRepository
	users    repo.UserRepository
	notifier Notifier
	logger   *zap.Logger
}

func NewMessageService(messages repo.MessageRepository, users repo.UserRepository, notifier Notifier, logger *zap.Logger) MessageService {
	return &messageService{
		messages: messages,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// SendMessage persists a direct message and pushes it to the receiver's
// session when online. Persistence failures abort the operation; the
// real-time push is best-effort and never fails a persisted write.
func (s *messageService) SendMessage(ctx context.Context, senderID, receiverID, body string) (*model.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	conversation, err := s.messages.FindOrCreateConversation(ctx, senderID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	msg := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
		CreatedAt:  time.Now().UTC(),
	}

	msg, err = s.messages.InsertMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	if err := s.messages.AppendToConversation(ctx, conversation.ID, msg.ID, msg.CreatedAt); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	if s.notifier.IsOnline(receiverID) {
		s.notifier.DeliverMessage(receiverID, *msg)
		s.notifyMessageSent(ctx, senderID, receiverID)
	}

	return msg, nil
}

// notifyMessageSent pushes the human-readable companion notification.
// Failures here are logged and swallowed: the message is already persisted.
func (s *messageService) notifyMessageSent(ctx context.Context, senderID, receiverID string) {
	sender, err := s.users.GetUser(ctx, senderID)
	if err != nil || sender == nil {
		s.logger.Warn("skipping message notification, sender lookup failed",
			zap.String("sender_id", senderID),
			zap.Error(err),
		)
		return
	}

	s.notifier.NotifyUser(receiverID, model.Notification{
		Kind:    model.NotificationMessage,
		Action:  model.ActionAdd,
		ActorID: senderID,
		ActorDetails: &model.ActorDetails{
			Username:       sender.Username,
			ProfilePicture: sender.ProfilePicture,
		},
		Message:   fmt.Sprintf("%s sent you a message", sender.Username),
		Timestamp: time.Now().Unix(),
	})
}

// GetMessages returns the conversation history between two users, oldest
// first. No conversation yet means an empty list, not an error.
func (s *messageService) GetMessages(ctx context.Context, userA, userB string, page int64) ([]model.Message, error) {
	result, err := s.messages.GetConversationMessages(ctx, userA, userB, page)
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}
	if result == nil || result.Data == nil {
		return []model.Message{}, nil
	}
	return result.Data, nil
}

package repo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/YashRana52/INSTRAGRAM/internal/db"
	"github.com/YashRana52/INSTRAGRAM/internal/model"
)

type MessageRepository interface {
	FindOrCreateConversation(ctx context.Context, userA, userB string) (*model.Conversation, error)
	GetConversation(ctx context.Context, userA, userB string) (*model.Conversation, error)
	InsertMessage(ctx context.Context, msg *model.Message) (*model.Message, error)
	AppendToConversation(ctx context.Context, conversationID, messageID primitive.ObjectID, at time.Time) error
	GetConversationMessages(ctx context.Context, userA, userB string, page int64) (*db.PaginatedResult[model.Message], error)
}

type messageRepository struct {
	messages      *db.Repository[model.Message]
	conversations *db.Repository[model.Conversation]
	logger        *zap.Logger
}

func NewMessageRepository(messages *db.Repository[model.Message], conversations *db.Repository[model.Conversation], logger *zap.Logger) MessageRepository {
	return &messageRepository{
		messages:      messages,
		conversations: conversations,
		logger:        logger,
	}
}

// participantPair returns the two user IDs as a sorted pair, the canonical
// identity of a conversation.
func participantPair(userA, userB string) []string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return pair
}

// -----------------------------------------------------------------------------
// FindOrCreateConversation
// -----------------------------------------------------------------------------

// FindOrCreateConversation returns the conversation for the unordered user
// pair, creating it atomically on first use. Racing callers converge on
// one document because the upsert is keyed on the sorted pair.
func (m *messageRepository) FindOrCreateConversation(ctx context.Context, userA, userB string) (*model.Conversation, error) {
	if userA == "" || userB == "" {
		return nil, ErrInvalidUserID
	}

	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	pair := participantPair(userA, userB)
	filter := db.NewFilter().Eq("participants", pair).Build()

	conversation, err := m.conversations.FindOneAndUpsert(ctx, filter, bson.M{
		"messages":        []primitive.ObjectID{},
		"created_at":      time.Now().UTC(),
		"last_message_at": time.Now().UTC(),
	})
	if err != nil {
		m.logger.Error("failed to find or create conversation",
			zap.Strings("participants", pair),
			zap.Error(err),
		)
		return nil, fmt.Errorf("find or create conversation failed: %w", err)
	}

	return conversation, nil
}

// GetConversation returns the conversation for the pair, or nil when none
// exists yet.
func (m *messageRepository) GetConversation(ctx context.Context, userA, userB string) (*model.Conversation, error) {
	if userA == "" || userB == "" {
		return nil, ErrInvalidUserID
	}

	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().Eq("participants", participantPair(userA, userB)).Build()

	conversation, err := m.conversations.FindOne(ctx, filter)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch conversation: %w", err)
	}
	return conversation, nil
}

// -----------------------------------------------------------------------------
// InsertMessage
// -----------------------------------------------------------------------------

func (m *messageRepository) InsertMessage(ctx context.Context, msg *model.Message) (*model.Message, error) {
	if msg == nil {
		return nil, ErrInvalidMessage
	}

	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			if err := waitForRetry(ctx, attempt); err != nil {
				return nil, err
			}
		}

		result, err := m.messages.Create(ctx, *msg)
		if err == nil {
			if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
				msg.ID = oid
			}

			m.logger.Info("message inserted",
				zap.String("message_id", msg.ID.Hex()),
				zap.String("sender_id", msg.SenderID),
				zap.String("receiver_id", msg.ReceiverID),
				zap.Int("attempt", attempt+1),
			)
			return msg, nil
		}

		lastErr = err

		if !isRetryableError(err) {
			break
		}

		m.logger.Warn("insert attempt failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", maxRetries),
		)
	}

	m.logger.Error("failed to insert message after all retries",
		zap.Error(lastErr),
		zap.String("sender_id", msg.SenderID),
	)

	return nil, fmt.Errorf("insert message failed: %w", lastErr)
}

// AppendToConversation records the message ref on the conversation and
// bumps its last-message time.
func (m *messageRepository) AppendToConversation(ctx context.Context, conversationID, messageID primitive.ObjectID, at time.Time) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	filter := db.NewFilter().Eq("_id", conversationID).Build()
	_, err := m.conversations.UpdateRaw(ctx, filter, bson.M{
		"$push": bson.M{"messages": messageID},
		"$set":  bson.M{"last_message_at": at},
	})
	if err != nil {
		m.logger.Error("failed to append message to conversation",
			zap.String("conversation_id", conversationID.Hex()),
			zap.String("message_id", messageID.Hex()),
			zap.Error(err),
		)
		return fmt.Errorf("append to conversation failed: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// GetConversationMessages
// -----------------------------------------------------------------------------

func (m *messageRepository) GetConversationMessages(ctx context.Context, userA, userB string, page int64) (*db.PaginatedResult[model.Message], error) {
	if userA == "" || userB == "" {
		return nil, ErrInvalidUserID
	}

	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().Or(
		db.NewFilter().Eq("sender_id", userA).Eq("receiver_id", userB).Build(),
		db.NewFilter().Eq("sender_id", userB).Eq("receiver_id", userA).Build(),
	).Build()

	result, err := m.messages.FindWithPagination(ctx, filter, db.PaginationParams{
		Page:     page,
		PageSize: messagePageSize,
		SortBy:   "created_at",
		SortDesc: false,
	})
	if err != nil {
		m.logger.Error("failed to fetch conversation messages",
			zap.String("user_a", userA),
			zap.String("user_b", userB),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch messages failed: %w", err)
	}

	m.logger.Debug("messages fetched",
		zap.Int("count", len(result.Data)),
		zap.Int64("total", result.Total),
		zap.Int64("page", result.Page),
	)
	return result, nil
}

package chat

import (
	"context"

	"famchat/internal/domain"
)

type ChatStore interface {
	CreateConversation(ctx context.Context, conv *domain.Conversation) error
	GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error)
	GetConversationByParticipants(ctx context.Context, userA, userB int64) (*domain.Conversation, error)
	GetUserConversations(ctx context.Context, userID int64, limit, offset int) ([]domain.Conversation, error)
	UpdateLastMessageAt(ctx context.Context, conversationID int64) error
	CreateMessage(ctx context.Context, msg *domain.Message) error
	GetMessages(ctx context.Context, conversationID int64, limit int, beforeID *int64) ([]domain.Message, error)
	CountUnread(ctx context.Context, conversationID, userID int64) (int64, error)
	MarkMessagesAsRead(ctx context.Context, conversationID, userID int64) (int64, error)
	IsBlocked(ctx context.Context, userA, userB int64) (bool, error)
	BlockUser(ctx context.Context, blockerID, blockedID int64, reason string) error
	UnblockUser(ctx context.Context, blockerID, blockedID int64) error
}

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier stores a notification for a recipient who is offline.
type Notifier interface {
	Create(ctx context.Context, userID int64, typ domain.NotificationType, title, body string, data map[string]any) error
}

// Responder produces the helper bot's canned reply to a message.
type Responder interface {
	Reply(content string) string
}

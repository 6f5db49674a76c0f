package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"famchat/internal/domain"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateConversation inserts a new thread. Callers must order the pair so
// participant_a < participant_b; the unique index depends on it.
func (r *ChatRepository) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

func (r *ChatRepository) GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.WithContext(ctx).First(&conv, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepository) GetConversationByParticipants(ctx context.Context, userA, userB int64) (*domain.Conversation, error) {
	if userA > userB {
		userA, userB = userB, userA
	}

	var conv domain.Conversation
	err := r.db.WithContext(ctx).
		Where("participant_a = ? AND participant_b = ?", userA, userB).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepository) GetUserConversations(ctx context.Context, userID int64, limit, offset int) ([]domain.Conversation, error) {
	var convs []domain.Conversation
	err := r.db.WithContext(ctx).
		Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("last_message_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&convs).Error
	return convs, err
}

func (r *ChatRepository) UpdateLastMessageAt(ctx context.Context, conversationID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ?", conversationID).
		Update("last_message_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// GetMessages returns messages newest first; beforeID pages backwards
// through history.
func (r *ChatRepository) GetMessages(ctx context.Context, conversationID int64, limit int, beforeID *int64) ([]domain.Message, error) {
	q := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("id DESC").
		Limit(limit)

	if beforeID != nil {
		q = q.Where("id < ?", *beforeID)
	}

	var msgs []domain.Message
	err := q.Find(&msgs).Error
	return msgs, err
}

func (r *ChatRepository) CountUnread(ctx context.Context, conversationID, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, userID, false).
		Count(&n).Error
	return n, err
}

// MarkMessagesAsRead flags every message addressed to userID as read and
// returns how many rows changed.
func (r *ChatRepository) MarkMessagesAsRead(ctx context.Context, conversationID, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *ChatRepository) IsBlocked(ctx context.Context, userA, userB int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.UserBlock{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userA, userB, userB, userA).
		Count(&n).Error
	return n > 0, err
}

func (r *ChatRepository) BlockUser(ctx context.Context, blockerID, blockedID int64, reason string) error {
	block := domain.UserBlock{
		BlockerID: blockerID,
		BlockedID: blockedID,
		Reason:    reason,
	}
	return r.db.WithContext(ctx).Create(&block).Error
}

func (r *ChatRepository) UnblockUser(ctx context.Context, blockerID, blockedID int64) error {
	return r.db.WithContext(ctx).
		Delete(&domain.UserBlock{}, "blocker_id = ? AND blocked_id = ?", blockerID, blockedID).Error
}

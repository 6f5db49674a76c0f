package chat

import (
	"time"

	"famchat/internal/domain"
)

type CreateConversationRequest struct {
	RecipientID    int64  `json:"recipient_id" binding:"required"`
	InitialMessage string `json:"initial_message"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}

// SendVoiceRequest references a voice note the client already uploaded to
// the media CDN.
type SendVoiceRequest struct {
	MediaExternalID string `json:"media_external_id" binding:"required"`
	DurationSeconds int    `json:"duration_seconds" binding:"required,min=1,max=600"`
}

type SendImageRequest struct {
	MediaExternalID string `json:"media_external_id" binding:"required"`
	Caption         string `json:"caption" binding:"max=1000"`
}

type BlockUserRequest struct {
	Reason string `json:"reason"`
}

type UserBrief struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	IsBot  bool   `json:"is_bot,omitempty"`
}

type MessageResponse struct {
	ID              int64              `json:"id"`
	ConversationID  int64              `json:"conversation_id"`
	SenderID        int64              `json:"sender_id"`
	Content         string             `json:"content"`
	MessageType     domain.MessageType `json:"message_type"`
	MediaExternalID *string            `json:"media_external_id,omitempty"`
	VoiceDuration   *int               `json:"voice_duration,omitempty"`
	IsRead          bool               `json:"is_read"`
	CreatedAt       time.Time          `json:"created_at"`
	Sender          *UserBrief         `json:"sender,omitempty"`
}

type ConversationResponse struct {
	ID            int64            `json:"id"`
	OtherUser     *UserBrief       `json:"other_user,omitempty"`
	LastMessage   *MessageResponse `json:"last_message,omitempty"`
	UnreadCount   int              `json:"unread_count"`
	LastMessageAt time.Time        `json:"last_message_at"`
	CreatedAt     time.Time        `json:"created_at"`
}

func toUserBrief(u *domain.User) *UserBrief {
	if u == nil {
		return nil
	}
	return &UserBrief{ID: u.ID, Name: u.Name, Avatar: u.AvatarURL, IsBot: u.IsBot}
}

func ToMessageResponse(m *domain.Message) *MessageResponse {
	if m == nil {
		return nil
	}
	return &MessageResponse{
		ID:              m.ID,
		ConversationID:  m.ConversationID,
		SenderID:        m.SenderID,
		Content:         m.Content,
		MessageType:     m.MessageType,
		MediaExternalID: m.MediaExternalID,
		VoiceDuration:   m.VoiceDuration,
		IsRead:          m.IsRead,
		CreatedAt:       m.CreatedAt,
		Sender:          toUserBrief(m.Sender),
	}
}

func ToConversationResponse(conv *domain.Conversation) *ConversationResponse {
	return &ConversationResponse{
		ID:            conv.ID,
		OtherUser:     toUserBrief(conv.OtherUser),
		LastMessage:   ToMessageResponse(conv.LastMessage),
		UnreadCount:   conv.UnreadCount,
		LastMessageAt: conv.LastMessageAt,
		CreatedAt:     conv.CreatedAt,
	}
}

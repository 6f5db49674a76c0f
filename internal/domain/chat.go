package domain

import "time"

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeVoice MessageType = "voice"
	// MessageTypeSystem marks service notices rendered inline.
	MessageTypeSystem MessageType = "system"
)

// Conversation is a one-to-one thread between two family members.
// ParticipantA is always the smaller user ID; this makes the
// (participant_a, participant_b) pair unique and lookups cheap.
type Conversation struct {
	ID           int64 `json:"id" gorm:"primaryKey"`
	ParticipantA int64 `json:"participant_a" gorm:"not null;uniqueIndex:idx_conv_pair"`
	ParticipantB int64 `json:"participant_b" gorm:"not null;uniqueIndex:idx_conv_pair"`

	// Sort key for the conversation list.
	LastMessageAt time.Time `json:"last_message_at" gorm:"default:CURRENT_TIMESTAMP"`
	CreatedAt     time.Time `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`

	// Filled by the service, not stored.
	OtherUser   *User    `json:"other_user,omitempty" gorm:"-"`
	LastMessage *Message `json:"last_message,omitempty" gorm:"-"`
	UnreadCount int      `json:"unread_count" gorm:"-"`
}

func (Conversation) TableName() string {
	return "conversations"
}

type Message struct {
	ID             int64       `json:"id" gorm:"primaryKey"`
	ConversationID int64       `json:"conversation_id" gorm:"not null;index"`
	SenderID       int64       `json:"sender_id" gorm:"not null"`
	Content        string      `json:"content" gorm:"not null"`
	MessageType    MessageType `json:"message_type" gorm:"default:text"`

	// Media columns, set for image and voice messages.
	MediaExternalID *string    `json:"media_external_id,omitempty"`
	MediaKind       *MediaKind `json:"media_kind,omitempty"`

	// Length of a voice note in seconds; nil for other types.
	VoiceDuration *int `json:"voice_duration,omitempty"`

	IsRead    bool      `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`

	Sender *User `json:"sender,omitempty" gorm:"-"`
}

func (Message) TableName() string {
	return "messages"
}

// UserBlock records that blocker does not want messages from blocked.
type UserBlock struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	BlockerID int64     `json:"blocker_id" gorm:"not null;uniqueIndex:idx_block_pair"`
	BlockedID int64     `json:"blocked_id" gorm:"not null;uniqueIndex:idx_block_pair"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserBlock) TableName() string {
	return "user_blocks"
}

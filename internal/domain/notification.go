package domain

import "time"

type NotificationType string

const (
	NotifNewMessage NotificationType = "new_message"
	NotifMissedCall NotificationType = "missed_call"
)

// Notification is stored for recipients who were offline when an event
// happened; the websocket hub delivers directly to online users instead.
type Notification struct {
	ID        int64            `json:"id" gorm:"primaryKey"`
	UserID    int64            `json:"user_id" gorm:"not null;index"`
	Type      NotificationType `json:"type" gorm:"not null"`
	Title     string           `json:"title" gorm:"not null"`
	Body      string           `json:"body"`
	Data      string           `json:"data,omitempty" gorm:"type:json"`
	Seen      bool             `json:"seen" gorm:"default:false"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
